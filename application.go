package main

import (
	"fmt"
	"slices"
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ibd1279/vks"
	"github.com/ibd1279/vks-examples/tutorial-camera/camera"
	"github.com/ibd1279/vks-examples/tutorial-camera/vkobj"
	"go.uber.org/zap"
)

// InstanceInfo records what the instance was created with.
type InstanceInfo struct {
	Layers     []string
	Extensions []string
	Portable   bool
}

// DeviceInfo records what the device was created with.
type DeviceInfo struct {
	Extensions        []string
	GraphicQueueIndex uint32
	PresentQueueIndex uint32
}

// SwapchainInfo records the surface format and size the swapchain was
// created with.
type SwapchainInfo struct {
	Format      vks.Format
	ColorSpace  vks.ColorSpaceKHR
	Extent      vks.Extent2D
	PresentMode vks.PresentModeKHR
	ImageCount  uint32
}

type BufferInfo struct {
	Size  vks.DeviceSize
	Usage vks.BufferUsageFlags
}

type MemoryInfo struct {
	Size      vks.DeviceSize
	TypeIndex uint32
	Flags     vks.MemoryPropertyFlags
}

// CameraApplication renders a cube seen through a camera driven by the
// keyboard and mouse.
type CameraApplication struct {
	Config

	log        *zap.Logger
	window     *glfw.Window
	controller *camera.Controller
	transform  mgl32.Mat4

	instance   *vkobj.RootObject[vkobj.Instance, InstanceInfo]
	vkInstance vks.InstanceFacade
	surface    *vkobj.Object[vkobj.SurfaceKHR, struct{}]

	physicalDevice vks.PhysicalDeviceFacade
	memoryTypes    []vks.MemoryPropertyFlags
	device         *vkobj.RootObject[vkobj.Device, DeviceInfo]
	vkDevice       vks.DeviceFacade
	graphicQueue   vks.QueueFacade
	presentQueue   vks.QueueFacade

	swapchain           *vkobj.Object[vkobj.SwapchainKHR, SwapchainInfo]
	swapchainImgs       []*vkobj.Object[vkobj.Image, struct{}]
	swapchainImgViews   []*vkobj.Object[vkobj.ImageView, struct{}]
	renderPass          *vkobj.Object[vkobj.RenderPass, struct{}]
	framebuffers        []*vkobj.Object[vkobj.Framebuffer, struct{}]
	descriptorSetLayout *vkobj.Object[vkobj.DescriptorSetLayout, struct{}]
	pipelineLayout      *vkobj.Object[vkobj.PipelineLayout, struct{}]
	pipeline            *vkobj.Object[vkobj.Pipeline, struct{}]

	commandPool    *vkobj.Object[vkobj.CommandPool, uint32]
	commandBuffers []*vkobj.Object[vkobj.CommandBuffer, struct{}]

	vertexBuffer  *vkobj.Object[vkobj.Buffer, BufferInfo]
	vertexMemory  *vkobj.Object[vkobj.DeviceMemory, MemoryInfo]
	uniformBuffer *vkobj.Object[vkobj.Buffer, BufferInfo]
	uniformMemory *vkobj.Object[vkobj.DeviceMemory, MemoryInfo]
	uniformMapped unsafe.Pointer

	descriptorPool *vkobj.Object[vkobj.DescriptorPool, struct{}]
	descriptorSet  *vkobj.Object[vkobj.DescriptorSet, struct{}]

	imageAvailableSemaphores []*vkobj.Object[vkobj.Semaphore, struct{}]
	renderFinishedSemaphores []*vkobj.Object[vkobj.Semaphore, struct{}]
	inFlightFences           []*vkobj.Object[vkobj.Fence, struct{}]
	// Borrowed from inFlightFences, indexed by swapchain image.
	imagesInFlight []vks.Fence
	currentFrame   uint

	framebufferResize bool
	// Set from other goroutines; everything else belongs to the main thread.
	stop atomic.Bool
}

// NewCameraApplication returns an application that has not touched glfw or
// Vulkan yet.
func NewCameraApplication(cfg Config, log *zap.Logger) *CameraApplication {
	cam := camera.New(float32(cfg.Width) / float32(cfg.Height))
	return &CameraApplication{
		Config:     cfg,
		log:        log,
		controller: camera.NewController(cam, cfg.Width, cfg.Height),
		transform:  mgl32.Ident4(),
		swapchain:  vkobj.Empty[vkobj.SwapchainKHR, SwapchainInfo](),
	}
}

// Stop asks the render loop to return. It is safe to call from any
// goroutine; glfw and Vulkan are left to the main thread.
func (app *CameraApplication) Stop() {
	app.stop.Store(true)
}

// Stopped reports whether Stop has been called.
func (app *CameraApplication) Stopped() bool {
	return app.stop.Load()
}

// interruptHandler returns a cleanup for closer. It stops the render loop
// and blocks until done is closed, so the process does not exit before the
// main thread has torn everything down.
func (app *CameraApplication) interruptHandler(done <-chan struct{}) func() {
	return func() {
		app.Stop()
		<-done
	}
}

// Setup opens the window and creates every Vulkan object the first frame
// needs.
func (app *CameraApplication) Setup() error {
	if err := app.glfwSetup(); err != nil {
		return errors.Wrap(err, "glfw setup")
	}
	if err := app.vulkanSetup(); err != nil {
		return errors.Wrap(err, "vulkan setup")
	}
	app.controller.Key(camera.KeyHome, camera.Press)
	app.updateTransform()
	return nil
}

func (app *CameraApplication) glfwSetup() error {
	if err := glfw.Init(); err != nil {
		return err
	}

	// Tell GLFW we aren't using OpenGL.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(app.Width, app.Height, app.Title, nil, nil)
	if err != nil {
		return err
	}
	app.window = window

	app.window.SetFramebufferSizeCallback(func(*glfw.Window, int, int) {
		app.framebufferResize = true
	})
	app.bindInput()
	return nil
}

func (app *CameraApplication) vulkanSetup() error {
	arp := vks.NewAutoReleaser()
	defer arp.Release()

	createInstance := func() error {
		var count uint32
		if err := check(vks.EnumerateInstanceLayerProperties(&count, nil), "enumerate layers"); err != nil {
			return err
		}
		layerProperties := make([]vks.LayerProperties, count)
		if err := check(vks.EnumerateInstanceLayerProperties(&count, layerProperties), "enumerate layers"); err != nil {
			return err
		}
		layers, err := selectNames("instance layers", app.SelectInstanceLayers, nil, layerNames(layerProperties))
		if err != nil {
			return err
		}

		global := vks.NewCStr(arp, "")
		if err := check(vks.EnumerateInstanceExtensionProperties(global, &count, nil), "enumerate instance extensions"); err != nil {
			return err
		}
		extensionProperties := make([]vks.ExtensionProperties, count)
		if err := check(vks.EnumerateInstanceExtensionProperties(global, &count, extensionProperties), "enumerate instance extensions"); err != nil {
			return err
		}
		available := extensionNames(extensionProperties)
		app.log.Debug("instance extensions", zap.Strings("available", available))

		required := append(slices.Clone(app.SelectInstanceExtensions),
			app.window.GetRequiredInstanceExtensions()...)
		extensions, err := selectNames("instance extensions", required, []string{
			vks.VK_KHR_PORTABILITY_ENUMERATION_EXTENSION_NAME,
			vks.VK_KHR_GET_SURFACE_CAPABILITIES_2_EXTENSION_NAME,
		}, available)
		if err != nil {
			return err
		}
		portable := slices.Contains(extensions, vks.VK_KHR_PORTABILITY_ENUMERATION_EXTENSION_NAME)

		appInfo := vks.CPtr(arp, &vks.ApplicationInfo{},
			vks.SetEngine(arp, "NoEngine", vks.MakeApiVersion(0, 1, 0, 0)),
			vks.SetApplication(arp, app.Title, vks.MakeApiVersion(0, 0, 1, 0)),
			vks.SetDefaultSType,
			func(in *vks.ApplicationInfo) {
				in.SetApiVersion(uint32(vks.VK_API_VERSION_1_3))
			},
		)
		createInfo := vks.CPtr(arp, &vks.InstanceCreateInfo{},
			vks.SetInstanceLayers(arp, layers),
			vks.SetInstanceExtensions(arp, extensions),
			vks.SetDefaultSType,
			func(in *vks.InstanceCreateInfo) {
				in.SetPApplicationInfo(appInfo)
				if portable {
					in.SetFlags(vks.InstanceCreateFlags(vks.VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR))
				}
			},
		)

		var vkInstance vks.Instance
		if err := check(vks.CreateInstance(createInfo, nil, &vkInstance), "create instance"); err != nil {
			return err
		}

		info := InstanceInfo{Layers: layers, Extensions: extensions, Portable: portable}
		instance, err := vkobj.NewInstance(info, vkobj.Instance{H: vkInstance}, nil)
		if err != nil {
			return err
		}
		app.instance = instance
		app.vkInstance, err = instance.Dispatch().InstanceFacade()
		return err
	}

	if err := createInstance(); err != nil {
		return err
	}

	createSurface := func() error {
		surface, err := app.window.CreateWindowSurface(app.vkInstance.H, nil)
		if err != nil {
			return errors.Wrap(err, "create surface")
		}
		// glfw hands back a pointer to the handle.
		handle := *(*vks.SurfaceKHR)(unsafe.Pointer(surface))
		app.surface = vkobj.NewOwned(struct{}{}, vkobj.SurfaceKHR{H: handle}, app.instance, nil)
		return nil
	}

	if err := createSurface(); err != nil {
		return err
	}

	var (
		graphicQueueIndex uint32
		presentQueueIndex uint32
		deviceExtensions  []string
	)

	// Picks the first device with graphics and present queues and the
	// required extensions.
	selectPhysicalDevice := func() error {
		var count uint32
		if err := check(app.vkInstance.EnumeratePhysicalDevices(&count, nil), "enumerate physical devices"); err != nil {
			return err
		}
		physicalDevices := make([]vks.PhysicalDevice, count)
		if err := check(app.vkInstance.EnumeratePhysicalDevices(&count, physicalDevices), "enumerate physical devices"); err != nil {
			return err
		}

		global := vks.NewCStr(arp, "")
		for k, handle := range physicalDevices {
			phyDev := app.vkInstance.MakePhysicalDeviceFacade(handle)

			driverProps := vks.CPtr(arp, &vks.PhysicalDeviceDriverProperties{},
				vks.SetDefaultSType,
			)
			props := vks.CPtr(arp, &vks.PhysicalDeviceProperties2{},
				vks.SetDefaultSType,
				vks.SetPNext[*vks.PhysicalDeviceProperties2](driverProps),
			)
			phyDev.GetPhysicalDeviceProperties2(props)
			log := app.log.With(
				zap.Int("index", k),
				zap.String("name", vks.ToString(props.Properties().DeviceName())),
				zap.String("type", fmt.Sprint(props.Properties().DeviceType())),
				zap.String("api", fmt.Sprint(vks.ApiVersion(props.Properties().ApiVersion()))),
				zap.String("driver", vks.ToString(driverProps.DriverName())),
			)

			phyDev.GetPhysicalDeviceQueueFamilyProperties2(&count, nil)
			queueFamProps := make([]vks.QueueFamilyProperties2, count)
			for h, v := range queueFamProps {
				queueFamProps[h] = v.WithDefaultSType()
			}
			phyDev.GetPhysicalDeviceQueueFamilyProperties2(&count, queueFamProps)

			var grfxIndex, prntIndex Option[uint32]
			for h, v := range queueFamProps {
				index := uint32(h)
				if v.QueueFamilyProperties().QueueFlags()&vks.QueueFlags(vks.VK_QUEUE_GRAPHICS_BIT) != 0 {
					grfxIndex = Some(index)
				}
				var presentSupport vks.Bool32
				phyDev.GetPhysicalDeviceSurfaceSupportKHR(index, app.surface.Handle().H, &presentSupport)
				if presentSupport.IsTrue() {
					prntIndex = Some(index)
				}
				if grfxIndex.IsSet() && prntIndex.IsSet() {
					break
				}
			}
			if !grfxIndex.IsSet() || !prntIndex.IsSet() {
				log.Info("skipping device without graphics and present queues")
				continue
			}

			if err := check(phyDev.EnumerateDeviceExtensionProperties(global, &count, nil), "enumerate device extensions"); err != nil {
				return err
			}
			extensionProperties := make([]vks.ExtensionProperties, count)
			if err := check(phyDev.EnumerateDeviceExtensionProperties(global, &count, extensionProperties), "enumerate device extensions"); err != nil {
				return err
			}
			extensions, err := selectNames("device extensions", app.SelectDeviceExtensions,
				[]string{vks.VK_KHR_PORTABILITY_SUBSET_EXTENSION_NAME},
				extensionNames(extensionProperties))
			if err != nil {
				log.Info("skipping device", zap.Error(err))
				continue
			}

			var memProps vks.PhysicalDeviceMemoryProperties
			phyDev.GetPhysicalDeviceMemoryProperties(&memProps)
			memoryTypes := memProps.MemoryTypes()
			app.memoryTypes, err = vkobj.TransformRange[[]vks.MemoryPropertyFlags](
				memoryTypes[:], 0, int(memProps.MemoryTypeCount()),
				func(t vks.MemoryType) vks.MemoryPropertyFlags { return t.PropertyFlags() },
			)
			if err != nil {
				return errors.Wrap(err, "memory types")
			}

			log.Info("selected physical device",
				zap.Uint32("graphics", grfxIndex.Some()),
				zap.Uint32("present", prntIndex.Some()))
			app.physicalDevice = phyDev
			graphicQueueIndex = grfxIndex.Some()
			presentQueueIndex = prntIndex.Some()
			deviceExtensions = extensions
			return nil
		}
		return errors.Newf("none of %d physical devices is usable", len(physicalDevices))
	}

	if err := selectPhysicalDevice(); err != nil {
		return err
	}

	createDevice := func() error {
		familyIndices := []uint32{graphicQueueIndex, presentQueueIndex}
		if familyIndices[0] == familyIndices[1] {
			familyIndices = familyIndices[:1]
		}
		priorities := []float32{1.0}
		queueCreateInfos := vkobj.Transform[[]vks.DeviceQueueCreateInfo](familyIndices,
			func(idx uint32) vks.DeviceQueueCreateInfo {
				return vks.DeviceQueueCreateInfo{}.
					WithDefaultSType().
					WithQueueFamilyIndex(idx).
					WithPQueuePriorities(priorities)
			})
		queueCreateInfos = vks.DeviceQueueCreateInfoCSlice(arp, queueCreateInfos...)

		deviceCreateInfo := vks.CPtr(arp, &vks.DeviceCreateInfo{},
			vks.SetDefaultSType,
			vks.SetDeviceExtensions(arp, deviceExtensions),
			func(in *vks.DeviceCreateInfo) {
				in.SetPQueueCreateInfos(queueCreateInfos)
			},
		)

		var vkDevice vks.Device
		if err := check(app.physicalDevice.CreateDevice(deviceCreateInfo, nil, &vkDevice), "create device"); err != nil {
			return err
		}

		info := DeviceInfo{
			Extensions:        deviceExtensions,
			GraphicQueueIndex: graphicQueueIndex,
			PresentQueueIndex: presentQueueIndex,
		}
		device, err := vkobj.NewDevice(info, vkobj.Device{H: vkDevice}, app.instance, app.physicalDevice.H, nil)
		if err != nil {
			return err
		}
		app.device = device
		if app.vkDevice, err = device.Dispatch().DeviceFacade(); err != nil {
			return err
		}

		var queue vks.Queue
		app.vkDevice.GetDeviceQueue(graphicQueueIndex, 0, &queue)
		app.graphicQueue = app.vkDevice.MakeQueueFacade(queue)
		app.vkDevice.GetDeviceQueue(presentQueueIndex, 0, &queue)
		app.presentQueue = app.vkDevice.MakeQueueFacade(queue)
		return nil
	}

	if err := createDevice(); err != nil {
		return err
	}

	createCommandPool := func() error {
		poolCreateInfo := vks.CPtr(arp, &vks.CommandPoolCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.CommandPoolCreateInfo) {
				in.SetQueueFamilyIndex(graphicQueueIndex)
			},
		)

		var commandPool vks.CommandPool
		if err := check(app.vkDevice.CreateCommandPool(poolCreateInfo, nil, &commandPool), "create command pool"); err != nil {
			return err
		}
		app.commandPool = vkobj.NewOwned(graphicQueueIndex, vkobj.CommandPool{H: commandPool}, app.device, nil)
		return nil
	}

	if err := createCommandPool(); err != nil {
		return err
	}

	createSemaphoresAndFences := func() error {
		semaphoreCreateInfo := vks.CPtr(arp, &vks.SemaphoreCreateInfo{},
			vks.SetDefaultSType,
		)
		fenceCreateInfo := vks.CPtr(arp, &vks.FenceCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.FenceCreateInfo) {
				in.SetFlags(vks.FenceCreateFlags(vks.VK_FENCE_CREATE_SIGNALED_BIT))
			},
		)

		for h := uint(0); h < app.FramesInFlight; h++ {
			var imgAvail, renderDone vks.Semaphore
			if err := check(app.vkDevice.CreateSemaphore(semaphoreCreateInfo, nil, &imgAvail), "create semaphore"); err != nil {
				return err
			}
			app.imageAvailableSemaphores = append(app.imageAvailableSemaphores,
				vkobj.NewOwned(struct{}{}, vkobj.Semaphore{H: imgAvail}, app.device, nil))

			if err := check(app.vkDevice.CreateSemaphore(semaphoreCreateInfo, nil, &renderDone), "create semaphore"); err != nil {
				return err
			}
			app.renderFinishedSemaphores = append(app.renderFinishedSemaphores,
				vkobj.NewOwned(struct{}{}, vkobj.Semaphore{H: renderDone}, app.device, nil))

			var fence vks.Fence
			if err := check(app.vkDevice.CreateFence(fenceCreateInfo, nil, &fence), "create fence"); err != nil {
				return err
			}
			app.inFlightFences = append(app.inFlightFences,
				vkobj.NewOwned(struct{}{}, vkobj.Fence{H: fence}, app.device, nil))
		}
		return nil
	}

	if err := createSemaphoresAndFences(); err != nil {
		return err
	}

	createLayouts := func() error {
		bindings := vks.DescriptorSetLayoutBindingCSlice(arp,
			vks.DescriptorSetLayoutBinding{}.
				WithBinding(0).
				WithDescriptorType(vks.VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER).
				WithDescriptorCount(1).
				WithStageFlags(vks.ShaderStageFlags(vks.VK_SHADER_STAGE_VERTEX_BIT)),
		)
		setLayoutInfo := vks.CPtr(arp, &vks.DescriptorSetLayoutCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.DescriptorSetLayoutCreateInfo) {
				in.SetPBindings(bindings)
			},
		)
		var setLayout vks.DescriptorSetLayout
		if err := check(app.vkDevice.CreateDescriptorSetLayout(setLayoutInfo, nil, &setLayout), "create descriptor set layout"); err != nil {
			return err
		}
		app.descriptorSetLayout = vkobj.NewOwned(struct{}{}, vkobj.DescriptorSetLayout{H: setLayout}, app.device, nil)

		layoutInfo := vks.CPtr(arp, &vks.PipelineLayoutCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.PipelineLayoutCreateInfo) {
				in.SetPSetLayouts([]vks.DescriptorSetLayout{setLayout})
			},
		)
		var layout vks.PipelineLayout
		if err := check(app.vkDevice.CreatePipelineLayout(layoutInfo, nil, &layout), "create pipeline layout"); err != nil {
			return err
		}
		app.pipelineLayout = vkobj.NewOwned(struct{}{}, vkobj.PipelineLayout{H: layout}, app.device, nil)
		return nil
	}

	if err := createLayouts(); err != nil {
		return err
	}

	createVertexBuffer := func() error {
		vertices := CubeVertices()
		size := vks.DeviceSize(len(vertices)) * vks.DeviceSize(vertexStride)
		buffer, memory, err := app.createBuffer(size,
			vks.BufferUsageFlags(vks.VK_BUFFER_USAGE_VERTEX_BUFFER_BIT),
			vks.MemoryPropertyFlags(vks.VK_MEMORY_PROPERTY_HOST_VISIBLE_BIT|vks.VK_MEMORY_PROPERTY_HOST_COHERENT_BIT))
		if err != nil {
			return errors.Wrap(err, "vertex buffer")
		}
		app.vertexBuffer, app.vertexMemory = buffer, memory

		var data unsafe.Pointer
		if err := check(app.vkDevice.MapMemory(memory.Handle().H, 0, size, 0, &data), "map vertex memory"); err != nil {
			return err
		}
		copy(unsafe.Slice((*Vertex)(data), len(vertices)), vertices)
		app.vkDevice.UnmapMemory(memory.Handle().H)
		return nil
	}

	if err := createVertexBuffer(); err != nil {
		return err
	}

	createUniformBuffer := func() error {
		size := vks.DeviceSize(unsafe.Sizeof(mgl32.Mat4{}))
		buffer, memory, err := app.createBuffer(size,
			vks.BufferUsageFlags(vks.VK_BUFFER_USAGE_UNIFORM_BUFFER_BIT),
			vks.MemoryPropertyFlags(vks.VK_MEMORY_PROPERTY_HOST_VISIBLE_BIT|vks.VK_MEMORY_PROPERTY_HOST_COHERENT_BIT))
		if err != nil {
			return errors.Wrap(err, "uniform buffer")
		}
		app.uniformBuffer, app.uniformMemory = buffer, memory

		// Coherent memory stays mapped until cleanup, so transforms are
		// visible without a flush.
		var data unsafe.Pointer
		if err := check(app.vkDevice.MapMemory(memory.Handle().H, 0, size, 0, &data), "map uniform memory"); err != nil {
			return err
		}
		app.uniformMapped = data
		return nil
	}

	if err := createUniformBuffer(); err != nil {
		return err
	}

	createDescriptorSet := func() error {
		poolSizes := vks.DescriptorPoolSizeCSlice(arp,
			vks.DescriptorPoolSize{}.
				WithType(vks.VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER).
				WithDescriptorCount(1),
		)
		poolInfo := vks.CPtr(arp, &vks.DescriptorPoolCreateInfo{},
			vks.SetDefaultSType,
			func(in *vks.DescriptorPoolCreateInfo) {
				in.SetFlags(vks.DescriptorPoolCreateFlags(vks.VK_DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT))
				in.SetMaxSets(1)
				in.SetPPoolSizes(poolSizes)
			},
		)
		var pool vks.DescriptorPool
		if err := check(app.vkDevice.CreateDescriptorPool(poolInfo, nil, &pool), "create descriptor pool"); err != nil {
			return err
		}
		app.descriptorPool = vkobj.NewOwned(struct{}{}, vkobj.DescriptorPool{H: pool}, app.device, nil)

		allocInfo := vks.CPtr(arp, &vks.DescriptorSetAllocateInfo{},
			vks.SetDefaultSType,
			func(in *vks.DescriptorSetAllocateInfo) {
				in.SetDescriptorPool(pool)
				in.SetPSetLayouts([]vks.DescriptorSetLayout{app.descriptorSetLayout.Handle().H})
			},
		)
		sets := make([]vks.DescriptorSet, 1)
		if err := check(app.vkDevice.AllocateDescriptorSets(allocInfo, sets), "allocate descriptor set"); err != nil {
			return err
		}
		app.descriptorSet = vkobj.NewPooled(struct{}{}, vkobj.DescriptorSet{H: sets[0]}, app.device, app.descriptorPool.Handle())

		bufferInfos := vks.DescriptorBufferInfoCSlice(arp,
			vks.DescriptorBufferInfo{}.
				WithBuffer(app.uniformBuffer.Handle().H).
				WithOffset(0).
				WithRange(app.uniformBuffer.Info().Size),
		)
		writes := vks.WriteDescriptorSetCSlice(arp,
			vks.WriteDescriptorSet{}.
				WithDefaultSType().
				WithDstSet(sets[0]).
				WithDstBinding(0).
				WithDescriptorType(vks.VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER).
				WithDescriptorCount(1).
				WithPBufferInfo(bufferInfos),
		)
		app.vkDevice.UpdateDescriptorSets(uint32(len(writes)), writes, 0, nil)
		return nil
	}

	if err := createDescriptorSet(); err != nil {
		return err
	}

	return app.recreateSwapchain()
}

// createBuffer creates a buffer bound to fresh memory with the wanted
// properties. Nothing is left behind on failure.
func (app *CameraApplication) createBuffer(size vks.DeviceSize, usage vks.BufferUsageFlags, want vks.MemoryPropertyFlags) (*vkobj.Object[vkobj.Buffer, BufferInfo], *vkobj.Object[vkobj.DeviceMemory, MemoryInfo], error) {
	arp := vks.NewAutoReleaser()
	defer arp.Release()

	bufferInfo := vks.CPtr(arp, &vks.BufferCreateInfo{},
		vks.SetDefaultSType,
		func(in *vks.BufferCreateInfo) {
			in.SetSize(size)
			in.SetUsage(usage)
			in.SetSharingMode(vks.VK_SHARING_MODE_EXCLUSIVE)
		},
	)
	var vkBuffer vks.Buffer
	if err := check(app.vkDevice.CreateBuffer(bufferInfo, nil, &vkBuffer), "create buffer"); err != nil {
		return nil, nil, err
	}
	buffer := vkobj.NewOwned(BufferInfo{Size: size, Usage: usage}, vkobj.Buffer{H: vkBuffer}, app.device, nil)

	var requirements vks.MemoryRequirements
	app.vkDevice.GetBufferMemoryRequirements(vkBuffer, &requirements)
	typeIndex, err := findMemoryType(requirements.MemoryTypeBits(), app.memoryTypes, want)
	if err != nil {
		buffer.Close()
		return nil, nil, err
	}

	allocInfo := vks.CPtr(arp, &vks.MemoryAllocateInfo{},
		vks.SetDefaultSType,
		func(in *vks.MemoryAllocateInfo) {
			in.SetAllocationSize(requirements.Size())
			in.SetMemoryTypeIndex(typeIndex)
		},
	)
	var vkMemory vks.DeviceMemory
	if err := check(app.vkDevice.AllocateMemory(allocInfo, nil, &vkMemory), "allocate memory"); err != nil {
		buffer.Close()
		return nil, nil, err
	}
	memInfo := MemoryInfo{Size: requirements.Size(), TypeIndex: typeIndex, Flags: app.memoryTypes[typeIndex]}
	memory := vkobj.NewOwned(memInfo, vkobj.DeviceMemory{H: vkMemory}, app.device, nil)

	if err := check(app.vkDevice.BindBufferMemory(vkBuffer, vkMemory, 0), "bind buffer memory"); err != nil {
		buffer.Close()
		memory.Close()
		return nil, nil, err
	}
	return buffer, memory, nil
}

// Close releases everything in reverse creation order. It is safe to call
// after a failed Setup.
func (app *CameraApplication) Close() {
	if !app.device.IsNull() {
		app.vkDevice.DeviceWaitIdle()
	}

	app.closeSwapchainResources()
	app.swapchain.Close()

	app.descriptorSet.Close()
	app.descriptorPool.Close()
	if app.uniformMapped != nil {
		app.vkDevice.UnmapMemory(app.uniformMemory.Handle().H)
		app.uniformMapped = nil
	}
	app.uniformBuffer.Close()
	app.uniformMemory.Close()
	app.vertexBuffer.Close()
	app.vertexMemory.Close()
	app.pipelineLayout.Close()
	app.descriptorSetLayout.Close()

	app.inFlightFences = closeAll(app.inFlightFences)
	app.renderFinishedSemaphores = closeAll(app.renderFinishedSemaphores)
	app.imageAvailableSemaphores = closeAll(app.imageAvailableSemaphores)
	app.commandPool.Close()

	app.device.Close()
	app.surface.Close()
	app.instance.Close()

	if app.window != nil {
		app.window.Destroy()
		app.window = nil
	}
	glfw.Terminate()
}
