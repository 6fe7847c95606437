package vkobj

import (
	"github.com/ibd1279/vks"
)

// DispatchKind identifies a dispatch table variant.
type DispatchKind int

const (
	DispatchUnknown DispatchKind = iota
	// DispatchStatic is the process-wide table used by root handles.
	DispatchStatic
	// DispatchDynamic is a table loaded for a specific instance or device.
	DispatchDynamic
)

func (k DispatchKind) String() string {
	switch k {
	case DispatchStatic:
		return "static"
	case DispatchDynamic:
		return "dynamic"
	}
	return "unknown"
}

// InstanceTable holds the instance level entry points used by deleters. A
// table is bound to one instance.
type InstanceTable interface {
	DestroySurfaceKHR(surface vks.SurfaceKHR, allocator *vks.AllocationCallbacks)
}

// DeviceTable holds the device level entry points used by deleters. A table
// is bound to one device.
type DeviceTable interface {
	DestroySwapchainKHR(swapchain vks.SwapchainKHR, allocator *vks.AllocationCallbacks)
	DestroyImage(image vks.Image, allocator *vks.AllocationCallbacks)
	DestroyImageView(imageView vks.ImageView, allocator *vks.AllocationCallbacks)
	DestroyRenderPass(renderPass vks.RenderPass, allocator *vks.AllocationCallbacks)
	DestroyFramebuffer(framebuffer vks.Framebuffer, allocator *vks.AllocationCallbacks)
	DestroyShaderModule(shaderModule vks.ShaderModule, allocator *vks.AllocationCallbacks)
	DestroyPipelineLayout(pipelineLayout vks.PipelineLayout, allocator *vks.AllocationCallbacks)
	DestroyPipeline(pipeline vks.Pipeline, allocator *vks.AllocationCallbacks)
	DestroyBuffer(buffer vks.Buffer, allocator *vks.AllocationCallbacks)
	FreeMemory(memory vks.DeviceMemory, allocator *vks.AllocationCallbacks)
	DestroyCommandPool(commandPool vks.CommandPool, allocator *vks.AllocationCallbacks)
	DestroySemaphore(semaphore vks.Semaphore, allocator *vks.AllocationCallbacks)
	DestroyFence(fence vks.Fence, allocator *vks.AllocationCallbacks)
	DestroyDescriptorSetLayout(layout vks.DescriptorSetLayout, allocator *vks.AllocationCallbacks)
	DestroyDescriptorPool(pool vks.DescriptorPool, allocator *vks.AllocationCallbacks)
	FreeCommandBuffers(commandPool vks.CommandPool, commandBuffers []vks.CommandBuffer)
	FreeDescriptorSets(pool vks.DescriptorPool, sets []vks.DescriptorSet) error
}

// Loader binds dispatch tables to handles and destroys root handles.
type Loader interface {
	LoadInstance(instance vks.Instance) (InstanceTable, error)
	LoadDevice(instance InstanceTable, physicalDevice vks.PhysicalDevice, device vks.Device) (DeviceTable, error)
	DestroyInstance(instance vks.Instance, allocator *vks.AllocationCallbacks)
	DestroyDevice(device vks.Device, allocator *vks.AllocationCallbacks)
}

var loader Loader = NewVksLoader()

// SetLoader replaces the process-wide loader. It must be called before any
// root object is created.
func SetLoader(l Loader) {
	loader = l
}

// CurrentLoader returns the process-wide loader.
func CurrentLoader() Loader {
	return loader
}

// StaticDispatch is the dispatch used by root handles. It has no state;
// calls go through the process-wide loader.
type StaticDispatch struct{}

func (StaticDispatch) Kind() DispatchKind { return DispatchStatic }

func (StaticDispatch) DestroyInstance(instance vks.Instance, allocator *vks.AllocationCallbacks) {
	loader.DestroyInstance(instance, allocator)
}

func (StaticDispatch) DestroyDevice(device vks.Device, allocator *vks.AllocationCallbacks) {
	loader.DestroyDevice(device, allocator)
}

// DynamicDispatch is a dispatch table loaded for an instance, or for a
// device chained through the dispatch of its instance.
type DynamicDispatch struct {
	instance      vks.Instance
	device        vks.Device
	instanceTable InstanceTable
	deviceTable   DeviceTable
	parent        *DynamicDispatch
}

func (d *DynamicDispatch) Kind() DispatchKind { return DispatchDynamic }

// Instance returns the instance the table was loaded for.
func (d *DynamicDispatch) Instance() vks.Instance { return d.instance }

// Device returns the device the table was loaded for, or the null device
// for an instance table.
func (d *DynamicDispatch) Device() vks.Device { return d.device }

func (d *DynamicDispatch) InstanceTable() InstanceTable { return d.instanceTable }

// DeviceTable is nil for an instance table.
func (d *DynamicDispatch) DeviceTable() DeviceTable { return d.deviceTable }

// Parent returns the instance dispatch a device dispatch was chained from.
func (d *DynamicDispatch) Parent() *DynamicDispatch { return d.parent }
