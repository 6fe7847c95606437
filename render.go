package main

import (
	"math"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ibd1279/vks"
	"github.com/ibd1279/vks-examples/tutorial-camera/vkobj"
)

func semaphoreHandle(o *vkobj.Object[vkobj.Semaphore, struct{}]) vks.Semaphore {
	return o.Handle().H
}

var errStopped = errors.New("render loop stopped")

func commandBufferHandle(o *vkobj.Object[vkobj.CommandBuffer, struct{}]) vks.CommandBuffer {
	return o.Handle().H
}

// Render processes pending window events and draws one frame. It returns
// false once the window has been asked to close or Stop was called.
func (app *CameraApplication) Render() (bool, error) {
	if app.Stopped() {
		return false, nil
	}
	glfw.PollEvents()
	if app.window.ShouldClose() {
		return false, nil
	}
	if err := app.drawFrame(); err != nil {
		if errors.Is(err, errStopped) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SetTransform stores the model-view-projection matrix and writes it into
// the mapped uniform buffer once there is one.
func (app *CameraApplication) SetTransform(m mgl32.Mat4) {
	app.transform = m
	if app.uniformMapped == nil {
		return
	}
	copy(unsafe.Slice((*float32)(app.uniformMapped), len(m)), m[:])
}

func (app *CameraApplication) updateTransform() {
	app.SetTransform(app.controller.Camera.Transform(mgl32.Ident4()))
}

func (app *CameraApplication) drawFrame() error {
	arp := vks.NewAutoReleaser()
	defer arp.Release()

	frame := int(app.currentFrame)
	inFlight := []vks.Fence{app.inFlightFences[frame].Handle().H}

	// Wait for Vulkan to finish with this frame.
	app.vkDevice.WaitForFences(1, inFlight, vks.VK_TRUE, math.MaxUint64)

	var imageIndex uint32
	result := app.vkDevice.AcquireNextImageKHR(
		app.swapchain.Handle().H,
		math.MaxUint64,
		semaphoreHandle(app.imageAvailableSemaphores[frame]),
		vks.NullFence,
		&imageIndex,
	)
	if result == vks.VK_ERROR_OUT_OF_DATE_KHR {
		return app.recreateSwapchain()
	} else if result != vks.VK_SUCCESS && result != vks.VK_SUBOPTIMAL_KHR {
		return errors.Wrap(result.AsErr(), "acquire next image")
	}

	// Wait for Vulkan to finish with this image.
	if app.imagesInFlight[imageIndex] != vks.NullFence {
		app.vkDevice.WaitForFences(1, app.imagesInFlight[imageIndex:], vks.VK_TRUE, math.MaxUint64)
	}
	app.imagesInFlight[imageIndex] = inFlight[0]

	waits, err := vkobj.TransformRange[[]vks.Semaphore](app.imageAvailableSemaphores, frame, frame+1, semaphoreHandle)
	if err != nil {
		return err
	}
	signals, err := vkobj.TransformRange[[]vks.Semaphore](app.renderFinishedSemaphores, frame, frame+1, semaphoreHandle)
	if err != nil {
		return err
	}
	commands, err := vkobj.TransformRange[[]vks.CommandBuffer](app.commandBuffers, int(imageIndex), int(imageIndex)+1, commandBufferHandle)
	if err != nil {
		return err
	}

	submitInfos := vks.SubmitInfoCSlice(arp,
		vks.SubmitInfo{}.
			WithDefaultSType().
			WithPWaitSemaphores(waits).
			WithPWaitDstStageMask([]vks.PipelineStageFlags{
				vks.PipelineStageFlags(vks.VK_PIPELINE_STAGE_COLOR_ATTACHMENT_OUTPUT_BIT),
			}).
			WithPCommandBuffers(commands).
			WithPSignalSemaphores(signals),
	)

	app.vkDevice.ResetFences(1, inFlight)

	if err := check(app.graphicQueue.QueueSubmit(1, submitInfos, inFlight[0]), "queue submit"); err != nil {
		return err
	}

	presentInfo := vks.CPtr(arp, &vks.PresentInfoKHR{},
		vks.SetDefaultSType,
		func(in *vks.PresentInfoKHR) {
			in.SetPWaitSemaphores(signals)
			in.SetPSwapchains([]vks.SwapchainKHR{app.swapchain.Handle().H})
			in.SetPImageIndices([]uint32{imageIndex})
		},
	)

	result = app.presentQueue.QueuePresentKHR(presentInfo)
	if result == vks.VK_ERROR_OUT_OF_DATE_KHR || result == vks.VK_SUBOPTIMAL_KHR || app.framebufferResize {
		if err := app.recreateSwapchain(); err != nil {
			return err
		}
	} else if err := check(result, "queue present"); err != nil {
		return err
	}

	app.currentFrame = (app.currentFrame + 1) % app.FramesInFlight
	return nil
}
