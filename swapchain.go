package main

import (
	"math"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/ibd1279/vks"
	"github.com/ibd1279/vks-examples/tutorial-camera/vkobj"
	"go.uber.org/zap"
)

// closeSwapchainResources closes everything built on top of the current
// swapchain, but not the swapchain itself.
func (app *CameraApplication) closeSwapchainResources() {
	app.commandBuffers = closeAll(app.commandBuffers)
	app.pipeline.Close()
	app.framebuffers = closeAll(app.framebuffers)
	app.renderPass.Close()
	app.swapchainImgViews = closeAll(app.swapchainImgViews)
	app.swapchainImgs = closeAll(app.swapchainImgs)
	app.imagesInFlight = nil
}

// recreateSwapchain builds the swapchain and everything sized by it. The
// previous swapchain is handed to the new one and replaced through Assign.
func (app *CameraApplication) recreateSwapchain() error {
	arp := vks.NewAutoReleaser()
	defer arp.Release()

	width, height := app.window.GetFramebufferSize()
	for width == 0 || height == 0 {
		if app.Stopped() {
			return errStopped
		}
		glfw.WaitEventsTimeout(0.1)
		width, height = app.window.GetFramebufferSize()
	}
	app.framebufferResize = false

	app.vkDevice.DeviceWaitIdle()

	createSwapchain := func() error {
		surface := app.surface.Handle().H
		deviceInfo := app.device.Info()

		var capabilities vks.SurfaceCapabilitiesKHR
		app.physicalDevice.GetPhysicalDeviceSurfaceCapabilitiesKHR(surface, &capabilities)

		var count uint32
		app.physicalDevice.GetPhysicalDeviceSurfaceFormatsKHR(surface, &count, nil)
		formats := make([]vks.SurfaceFormatKHR, count)
		app.physicalDevice.GetPhysicalDeviceSurfaceFormatsKHR(surface, &count, formats)
		if len(formats) == 0 {
			return errors.New("surface reports no formats")
		}

		app.physicalDevice.GetPhysicalDeviceSurfacePresentModesKHR(surface, &count, nil)
		presentModes := make([]vks.PresentModeKHR, count)
		app.physicalDevice.GetPhysicalDeviceSurfacePresentModesKHR(surface, &count, presentModes)

		selectedFormat := formats[0]
		for _, v := range formats {
			if v.Format() == vks.VK_FORMAT_B8G8R8A8_SRGB &&
				v.ColorSpace() == vks.VK_COLOR_SPACE_SRGB_NONLINEAR_KHR {
				selectedFormat = v
			}
		}

		selectedMode := vks.VK_PRESENT_MODE_FIFO_KHR
		for _, v := range presentModes {
			if v == vks.VK_PRESENT_MODE_MAILBOX_KHR {
				selectedMode = v
			}
		}

		selectedExtent := capabilities.CurrentExtent()
		if selectedExtent.Width() == math.MaxUint32 {
			selectedExtent = clampExtent(width, height,
				capabilities.MinImageExtent(), capabilities.MaxImageExtent())
		}

		queueFamilyIndices := []uint32{deviceInfo.GraphicQueueIndex, deviceInfo.PresentQueueIndex}
		shareMode := vks.VK_SHARING_MODE_CONCURRENT
		if queueFamilyIndices[0] == queueFamilyIndices[1] {
			queueFamilyIndices = queueFamilyIndices[:1]
			shareMode = vks.VK_SHARING_MODE_EXCLUSIVE
		}

		info := SwapchainInfo{
			Format:      selectedFormat.Format(),
			ColorSpace:  selectedFormat.ColorSpace(),
			Extent:      selectedExtent,
			PresentMode: selectedMode,
			ImageCount:  swapchainImageCount(capabilities.MinImageCount(), capabilities.MaxImageCount()),
		}

		swapchainCreateInfo := vks.CPtr(arp, &vks.SwapchainCreateInfoKHR{},
			vks.SetDefaultSType,
			func(in *vks.SwapchainCreateInfoKHR) {
				in.SetSurface(surface)
				in.SetMinImageCount(info.ImageCount)
				in.SetImageFormat(info.Format)
				in.SetImageColorSpace(info.ColorSpace)
				in.SetImageExtent(info.Extent)
				in.SetImageArrayLayers(1)
				in.SetImageUsage(vks.ImageUsageFlags(vks.VK_IMAGE_USAGE_COLOR_ATTACHMENT_BIT))
				in.SetImageSharingMode(shareMode)
				in.SetQueueFamilyIndexCount(uint32(len(queueFamilyIndices)))
				in.SetPQueueFamilyIndices(queueFamilyIndices)
				in.SetPreTransform(capabilities.CurrentTransform())
				in.SetCompositeAlpha(vks.VK_COMPOSITE_ALPHA_OPAQUE_BIT_KHR)
				in.SetPresentMode(info.PresentMode)
				in.SetClipped(vks.VK_TRUE)
				in.SetOldSwapchain(app.swapchain.Handle().H)
			},
		)

		var swapchain vks.SwapchainKHR
		if err := check(app.vkDevice.CreateSwapchainKHR(swapchainCreateInfo, nil, &swapchain), "create swapchain"); err != nil {
			return err
		}
		next := vkobj.NewOwned(info, vkobj.SwapchainKHR{H: swapchain}, app.device, nil)

		app.closeSwapchainResources()
		app.swapchain.Assign(next)

		app.vkDevice.GetSwapchainImagesKHR(swapchain, &count, nil)
		images := make([]vks.Image, count)
		app.vkDevice.GetSwapchainImagesKHR(swapchain, &count, images)

		// The swapchain owns its images.
		app.swapchainImgs = vkobj.Transform[[]*vkobj.Object[vkobj.Image, struct{}]](images,
			func(h vks.Image) *vkobj.Object[vkobj.Image, struct{}] {
				return vkobj.NewObject(struct{}{}, vkobj.Image{H: h}, nil)
			})

		for _, img := range images {
			imgViewCreateInfo := vks.CPtr(arp, &vks.ImageViewCreateInfo{},
				vks.SetDefaultSType,
				func(in *vks.ImageViewCreateInfo) {
					in.SetImage(img)
					in.SetViewType(vks.VK_IMAGE_VIEW_TYPE_2D)
					in.SetFormat(info.Format)
					in.SetSubresourceRange(vks.ImageSubresourceRange{}.
						WithAspectMask(vks.ImageAspectFlags(vks.VK_IMAGE_ASPECT_COLOR_BIT)).
						WithLevelCount(1).
						WithLayerCount(1))
				},
			)
			var view vks.ImageView
			if err := check(app.vkDevice.CreateImageView(imgViewCreateInfo, nil, &view), "create image view"); err != nil {
				return err
			}
			app.swapchainImgViews = append(app.swapchainImgViews,
				vkobj.NewOwned(struct{}{}, vkobj.ImageView{H: view}, app.device, nil))
		}

		app.log.Debug("swapchain created",
			zap.Uint32("width", info.Extent.Width()),
			zap.Uint32("height", info.Extent.Height()),
			zap.Int("images", len(images)))
		return nil
	}

	if err := createSwapchain(); err != nil {
		return err
	}

	info := app.swapchain.Info()

	createRenderPass := func() error {
		attachments := vks.AttachmentDescriptionCSlice(arp,
			vks.AttachmentDescription{}.
				WithFormat(info.Format).
				WithSamples(vks.VK_SAMPLE_COUNT_1_BIT).
				WithLoadOp(vks.VK_ATTACHMENT_LOAD_OP_CLEAR).
				WithStoreOp(vks.VK_ATTACHMENT_STORE_OP_STORE).
				WithStencilLoadOp(vks.VK_ATTACHMENT_LOAD_OP_DONT_CARE).
				WithStencilStoreOp(vks.VK_ATTACHMENT_STORE_OP_DONT_CARE).
				WithInitialLayout(vks.VK_IMAGE_LAYOUT_UNDEFINED).
				WithFinalLayout(vks.VK_IMAGE_LAYOUT_PRESENT_SRC_KHR),
		)
		colorAttachments := vks.AttachmentReferenceCSlice(arp,
			vks.AttachmentReference{}.
				WithAttachment(0).
				WithLayout(vks.VK_IMAGE_LAYOUT_COLOR_ATTACHMENT_OPTIMAL),
		)
		subpasses := vks.SubpassDescriptionCSlice(arp,
			vks.SubpassDescription{}.
				WithPipelineBindPoint(vks.VK_PIPELINE_BIND_POINT_GRAPHICS).
				WithPColorAttachments(colorAttachments),
		)
		dependencies := vks.SubpassDependencyCSlice(arp,
			vks.SubpassDependency{}.
				WithSrcSubpass(vks.VK_SUBPASS_EXTERNAL).
				WithSrcStageMask(vks.PipelineStageFlags(vks.VK_PIPELINE_STAGE_COLOR_ATTACHMENT_OUTPUT_BIT)).
				WithDstStageMask(vks.PipelineStageFlags(vks.VK_PIPELINE_STAGE_COLOR_ATTACHMENT_OUTPUT_BIT)).
				WithDstAccessMask(vks.AccessFlags(vks.VK_ACCESS_COLOR_ATTACHMENT_WRITE_BIT)),
		)

		renderPassCreateInfo := vks.CPtr(arp, &vks.RenderPassCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.RenderPassCreateInfo) {
				in.SetPAttachments(attachments)
				in.SetPSubpasses(subpasses)
				in.SetPDependencies(dependencies)
			},
		)

		var renderPass vks.RenderPass
		if err := check(app.vkDevice.CreateRenderPass(renderPassCreateInfo, nil, &renderPass), "create render pass"); err != nil {
			return err
		}
		app.renderPass = vkobj.NewOwned(struct{}{}, vkobj.RenderPass{H: renderPass}, app.device, nil)
		return nil
	}

	if err := createRenderPass(); err != nil {
		return err
	}

	createFramebuffers := func() error {
		for _, view := range app.swapchainImgViews {
			bufferCreateInfo := vks.CPtr(arp, &vks.FramebufferCreateInfo{},
				vks.SetDefaultSType,
				func(in *vks.FramebufferCreateInfo) {
					in.SetRenderPass(app.renderPass.Handle().H)
					in.SetPAttachments([]vks.ImageView{view.Handle().H})
					in.SetWidth(info.Extent.Width())
					in.SetHeight(info.Extent.Height())
					in.SetLayers(1)
				},
			)

			var framebuffer vks.Framebuffer
			if err := check(app.vkDevice.CreateFramebuffer(bufferCreateInfo, nil, &framebuffer), "create framebuffer"); err != nil {
				return err
			}
			app.framebuffers = append(app.framebuffers,
				vkobj.NewOwned(struct{}{}, vkobj.Framebuffer{H: framebuffer}, app.device, nil))
		}
		return nil
	}

	if err := createFramebuffers(); err != nil {
		return err
	}

	loadShader := func(name string) (*vkobj.Object[vkobj.ShaderModule, struct{}], error) {
		path := app.ShaderPath(name)
		code, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read shader %s", path)
		}
		words, err := NewWordsUint32(code)
		if err != nil {
			return nil, errors.Wrapf(err, "shader %s", path)
		}
		createInfo := vks.CPtr(arp, &vks.ShaderModuleCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.ShaderModuleCreateInfo) {
				in.SetCodeSize(words.Sizeof())
				in.SetPCode(words)
			},
		)

		var module vks.ShaderModule
		if err := check(app.vkDevice.CreateShaderModule(createInfo, nil, &module), "create shader module "+name); err != nil {
			return nil, err
		}
		return vkobj.NewOwned(struct{}{}, vkobj.ShaderModule{H: module}, app.device, nil), nil
	}

	createPipeline := func() error {
		vert, err := loadShader("cube.vert")
		if err != nil {
			return err
		}
		defer vert.Close()

		frag, err := loadShader("cube.frag")
		if err != nil {
			return err
		}
		defer frag.Close()

		name := vks.NewCStr(arp, "main")
		stages := vks.PipelineShaderStageCreateInfoCSlice(arp,
			vks.PipelineShaderStageCreateInfo{}.
				WithDefaultSType().
				WithStage(vks.VK_SHADER_STAGE_VERTEX_BIT).
				WithModule(vert.Handle().H).
				WithPName(name),
			vks.PipelineShaderStageCreateInfo{}.
				WithDefaultSType().
				WithStage(vks.VK_SHADER_STAGE_FRAGMENT_BIT).
				WithModule(frag.Handle().H).
				WithPName(name),
		)

		bindings := vks.VertexInputBindingDescriptionCSlice(arp, vertexBindings()...)
		attributes := vks.VertexInputAttributeDescriptionCSlice(arp, vertexAttributes()...)
		vertexInputState := vks.CPtr(arp, &vks.PipelineVertexInputStateCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.PipelineVertexInputStateCreateInfo) {
				in.SetPVertexBindingDescriptions(bindings)
				in.SetPVertexAttributeDescriptions(attributes)
			},
		)

		inputAssemblyState := vks.CPtr(arp, &vks.PipelineInputAssemblyStateCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.PipelineInputAssemblyStateCreateInfo) {
				in.SetTopology(vks.VK_PRIMITIVE_TOPOLOGY_TRIANGLE_LIST)
				in.SetPrimitiveRestartEnable(vks.VK_FALSE)
			},
		)

		viewports := vks.ViewportCSlice(arp,
			vks.Viewport{}.
				WithWidth(float32(info.Extent.Width())).
				WithHeight(float32(info.Extent.Height())).
				WithMaxDepth(1.0),
		)
		scissors := vks.Rect2DCSlice(arp,
			vks.Rect2D{}.
				WithExtent(info.Extent),
		)
		viewportState := vks.CPtr(arp, &vks.PipelineViewportStateCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.PipelineViewportStateCreateInfo) {
				in.SetPViewports(viewports)
				in.SetPScissors(scissors)
			},
		)

		// The projection flips y, so faces wound counter-clockwise in model
		// space stay counter-clockwise on screen.
		rasterizationState := vks.CPtr(arp, &vks.PipelineRasterizationStateCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.PipelineRasterizationStateCreateInfo) {
				in.SetDepthClampEnable(vks.VK_FALSE)
				in.SetRasterizerDiscardEnable(vks.VK_FALSE)
				in.SetPolygonMode(vks.VK_POLYGON_MODE_FILL)
				in.SetLineWidth(1.0)
				in.SetCullMode(vks.CullModeFlags(vks.VK_CULL_MODE_BACK_BIT))
				in.SetFrontFace(vks.VK_FRONT_FACE_COUNTER_CLOCKWISE)
				in.SetDepthBiasEnable(vks.VK_FALSE)
			},
		)

		multisampleState := vks.CPtr(arp, &vks.PipelineMultisampleStateCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.PipelineMultisampleStateCreateInfo) {
				in.SetSampleShadingEnable(vks.VK_FALSE)
				in.SetRasterizationSamples(vks.VK_SAMPLE_COUNT_1_BIT)
			},
		)

		colorBlendAttachmentState := vks.PipelineColorBlendAttachmentStateCSlice(arp,
			vks.PipelineColorBlendAttachmentState{}.
				WithColorWriteMask(vks.ColorComponentFlags(vks.VK_COLOR_COMPONENT_R_BIT|vks.VK_COLOR_COMPONENT_G_BIT|vks.VK_COLOR_COMPONENT_B_BIT|vks.VK_COLOR_COMPONENT_A_BIT)).
				WithBlendEnable(vks.VK_FALSE),
		)
		colorBlendState := vks.CPtr(arp, &vks.PipelineColorBlendStateCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.PipelineColorBlendStateCreateInfo) {
				in.SetLogicOpEnable(vks.VK_FALSE)
				in.SetLogicOp(vks.VK_LOGIC_OP_COPY)
				in.SetPAttachments(colorBlendAttachmentState)
			},
		)

		pipelineCreateInfos := vks.GraphicsPipelineCreateInfoCSlice(arp,
			vks.GraphicsPipelineCreateInfo{}.
				WithDefaultSType().
				WithPStages(stages).
				WithPVertexInputState(vertexInputState).
				WithPInputAssemblyState(inputAssemblyState).
				WithPViewportState(viewportState).
				WithPRasterizationState(rasterizationState).
				WithPMultisampleState(multisampleState).
				WithPColorBlendState(colorBlendState).
				WithLayout(app.pipelineLayout.Handle().H).
				WithRenderPass(app.renderPass.Handle().H),
		)

		pipelines := make([]vks.Pipeline, len(pipelineCreateInfos))
		result := app.vkDevice.CreateGraphicsPipelines(
			vks.NullPipelineCache,
			uint32(len(pipelineCreateInfos)),
			pipelineCreateInfos,
			nil,
			pipelines)
		if err := check(result, "create graphics pipeline"); err != nil {
			return err
		}
		app.pipeline = vkobj.NewOwned(struct{}{}, vkobj.Pipeline{H: pipelines[0]}, app.device, nil)
		return nil
	}

	if err := createPipeline(); err != nil {
		return err
	}

	createCommandBuffers := func() error {
		pool := app.commandPool.Handle()
		bufferAllocInfo := vks.CPtr(arp, &vks.CommandBufferAllocateInfo{},
			vks.SetDefaultSType,
			func(in *vks.CommandBufferAllocateInfo) {
				in.SetCommandPool(pool.H)
				in.SetLevel(vks.VK_COMMAND_BUFFER_LEVEL_PRIMARY)
				in.SetCommandBufferCount(uint32(len(app.framebuffers)))
			},
		)

		cmdBuffers := make([]vks.CommandBuffer, len(app.framebuffers))
		if err := check(app.vkDevice.AllocateCommandBuffers(bufferAllocInfo, cmdBuffers), "allocate command buffers"); err != nil {
			return err
		}
		app.commandBuffers = vkobj.Transform[[]*vkobj.Object[vkobj.CommandBuffer, struct{}]](cmdBuffers,
			func(h vks.CommandBuffer) *vkobj.Object[vkobj.CommandBuffer, struct{}] {
				return vkobj.NewPooled(struct{}{}, vkobj.CommandBuffer{H: h}, app.device, pool)
			})

		poolFacade := app.vkDevice.MakeCommandPoolFacade(pool.H)
		beginInfo := vks.CPtr(arp, &vks.CommandBufferBeginInfo{},
			vks.SetDefaultSType,
		)
		clearValues := []vks.ClearValue{
			vks.MakeClearColorValueFloat32(0.1, 0.1, 0.1, 1.).AsClearValue(),
		}
		vertexBuffers := []vks.Buffer{app.vertexBuffer.Handle().H}
		vertexOffsets := []vks.DeviceSize{0}
		descriptorSets := []vks.DescriptorSet{app.descriptorSet.Handle().H}
		vertexCount := uint32(len(CubeVertices()))

		for k, b := range cmdBuffers {
			buffer := poolFacade.MakeCommandBufferFacade(b)

			if err := check(buffer.BeginCommandBuffer(beginInfo), "begin command buffer"); err != nil {
				return err
			}

			renderPassBeginInfo := vks.CPtr(arp, &vks.RenderPassBeginInfo{},
				vks.SetDefaultSType,
				func(in *vks.RenderPassBeginInfo) {
					in.SetRenderPass(app.renderPass.Handle().H)
					in.SetFramebuffer(app.framebuffers[k].Handle().H)
					in.SetRenderArea(vks.Rect2D{}.WithExtent(info.Extent))
					in.SetPClearValues(clearValues)
				},
			)

			buffer.CmdBeginRenderPass(renderPassBeginInfo, vks.VK_SUBPASS_CONTENTS_INLINE)
			buffer.CmdBindPipeline(vks.VK_PIPELINE_BIND_POINT_GRAPHICS, app.pipeline.Handle().H)
			buffer.CmdBindVertexBuffers(0, uint32(len(vertexBuffers)), vertexBuffers, vertexOffsets)
			buffer.CmdBindDescriptorSets(vks.VK_PIPELINE_BIND_POINT_GRAPHICS,
				app.pipelineLayout.Handle().H,
				0, uint32(len(descriptorSets)), descriptorSets,
				0, nil)
			buffer.CmdDraw(vertexCount, 1, 0, 0)
			buffer.CmdEndRenderPass()

			if err := check(buffer.EndCommandBuffer(), "end command buffer"); err != nil {
				return err
			}
		}
		return nil
	}

	if err := createCommandBuffers(); err != nil {
		return err
	}

	app.imagesInFlight = make([]vks.Fence, len(app.swapchainImgs))

	extent := info.Extent
	app.controller.Camera.Aspect = float32(extent.Width()) / float32(extent.Height())
	app.updateTransform()
	return nil
}
