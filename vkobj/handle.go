package vkobj

import (
	"fmt"

	"github.com/ibd1279/vks"
)

// RootHandle is implemented by handles without an owner. Their deleters
// use the StaticDispatch.
type RootHandle interface {
	destroyRoot(d StaticDispatch, allocator *vks.AllocationCallbacks)
}

// OwnedHandle is implemented by handles that are destroyed by their owner O.
type OwnedHandle[O RootHandle] interface {
	destroy(owner O, d *DynamicDispatch, allocator *vks.AllocationCallbacks)
}

// PooledHandle is implemented by handles that are allocated from, and
// freed back to, a pool P created by the owner O.
type PooledHandle[O RootHandle, P any] interface {
	free(owner O, pool P, d *DynamicDispatch) error
}

// RootType is the constraint for wrapped root handles.
type RootType interface {
	comparable
	RootHandle
}

// OwnedType is the constraint for wrapped owner-destroyed handles.
type OwnedType[O RootHandle] interface {
	comparable
	OwnedHandle[O]
}

// PooledType is the constraint for wrapped pool-freed handles.
type PooledType[O RootHandle, P any] interface {
	comparable
	PooledHandle[O, P]
}

// Root handles.
type (
	Instance struct{ H vks.Instance }
	Device   struct{ H vks.Device }
)

func (h Instance) destroyRoot(d StaticDispatch, a *vks.AllocationCallbacks) {
	d.DestroyInstance(h.H, a)
}

func (h Device) destroyRoot(d StaticDispatch, a *vks.AllocationCallbacks) {
	d.DestroyDevice(h.H, a)
}

// SurfaceKHR is owned by an Instance.
type SurfaceKHR struct{ H vks.SurfaceKHR }

func (h SurfaceKHR) destroy(_ Instance, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.instanceTable.DestroySurfaceKHR(h.H, a)
}

// Handles owned by a Device.
type (
	SwapchainKHR        struct{ H vks.SwapchainKHR }
	Image               struct{ H vks.Image }
	ImageView           struct{ H vks.ImageView }
	RenderPass          struct{ H vks.RenderPass }
	Framebuffer         struct{ H vks.Framebuffer }
	ShaderModule        struct{ H vks.ShaderModule }
	PipelineLayout      struct{ H vks.PipelineLayout }
	Pipeline            struct{ H vks.Pipeline }
	Buffer              struct{ H vks.Buffer }
	DeviceMemory        struct{ H vks.DeviceMemory }
	CommandPool         struct{ H vks.CommandPool }
	Semaphore           struct{ H vks.Semaphore }
	Fence               struct{ H vks.Fence }
	DescriptorSetLayout struct{ H vks.DescriptorSetLayout }
	DescriptorPool      struct{ H vks.DescriptorPool }
)

func (h SwapchainKHR) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroySwapchainKHR(h.H, a)
}

func (h Image) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyImage(h.H, a)
}

func (h ImageView) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyImageView(h.H, a)
}

func (h RenderPass) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyRenderPass(h.H, a)
}

func (h Framebuffer) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyFramebuffer(h.H, a)
}

func (h ShaderModule) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyShaderModule(h.H, a)
}

func (h PipelineLayout) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyPipelineLayout(h.H, a)
}

func (h Pipeline) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyPipeline(h.H, a)
}

func (h Buffer) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyBuffer(h.H, a)
}

// DeviceMemory is freed, not destroyed, but by its owner rather than a pool.
func (h DeviceMemory) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.FreeMemory(h.H, a)
}

func (h CommandPool) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyCommandPool(h.H, a)
}

func (h Semaphore) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroySemaphore(h.H, a)
}

func (h Fence) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyFence(h.H, a)
}

func (h DescriptorSetLayout) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyDescriptorSetLayout(h.H, a)
}

func (h DescriptorPool) destroy(_ Device, d *DynamicDispatch, a *vks.AllocationCallbacks) {
	d.deviceTable.DestroyDescriptorPool(h.H, a)
}

// Pool allocated handles. In core Vulkan only command buffers and
// descriptor sets are returned to a pool.
type (
	CommandBuffer struct{ H vks.CommandBuffer }
	DescriptorSet struct{ H vks.DescriptorSet }
)

func (h CommandBuffer) free(_ Device, pool CommandPool, d *DynamicDispatch) error {
	d.deviceTable.FreeCommandBuffers(pool.H, []vks.CommandBuffer{h.H})
	return nil
}

func (h DescriptorSet) free(_ Device, pool DescriptorPool, d *DynamicDispatch) error {
	return d.deviceTable.FreeDescriptorSets(pool.H, []vks.DescriptorSet{h.H})
}

// Shape is the kind of deleter a handle type is paired with.
type Shape int

const (
	ShapeUnknown Shape = iota
	// ShapeRoot handles are destroyed through the static dispatch.
	ShapeRoot
	// ShapeDestroy handles are destroyed by their owner.
	ShapeDestroy
	// ShapeFree handles are freed back to a pool.
	ShapeFree
)

func (s Shape) String() string {
	switch s {
	case ShapeRoot:
		return "root"
	case ShapeDestroy:
		return "destroy"
	case ShapeFree:
		return "free"
	}
	return "unknown"
}

// Class is the classification of a handle type.
type Class struct {
	Owner    string
	Dispatch DispatchKind
	Shape    Shape
}

// Handle is the closed set of registered handle types.
type Handle interface {
	Instance | Device |
		SurfaceKHR |
		SwapchainKHR | Image | ImageView | RenderPass | Framebuffer |
		ShaderModule | PipelineLayout | Pipeline | Buffer | DeviceMemory |
		CommandPool | Semaphore | Fence | DescriptorSetLayout | DescriptorPool |
		CommandBuffer | DescriptorSet
}

// Classify reports the classification of H. Owner is empty for root
// handles.
func Classify[H Handle]() Class {
	var h H
	switch any(h).(type) {
	case RootHandle:
		return Class{Dispatch: DispatchStatic, Shape: ShapeRoot}
	case OwnedHandle[Instance]:
		return Class{Owner: "Instance", Dispatch: DispatchDynamic, Shape: ShapeDestroy}
	case OwnedHandle[Device]:
		return Class{Owner: "Device", Dispatch: DispatchDynamic, Shape: ShapeDestroy}
	case PooledHandle[Device, CommandPool], PooledHandle[Device, DescriptorPool]:
		return Class{Owner: "Device", Dispatch: DispatchDynamic, Shape: ShapeFree}
	}
	panic(fmt.Sprintf("vkobj: %T has no deleter", h))
}

// DispatchKindOf reports which dispatch variant deleters of H are bound to.
func DispatchKindOf[H Handle]() DispatchKind {
	return Classify[H]().Dispatch
}
