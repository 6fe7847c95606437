package vkobj

import (
	"github.com/cockroachdb/errors"
	"github.com/ibd1279/vks"
	"go.uber.org/zap"
)

// VksLoader loads dispatch tables from vks facades. It remembers the
// facades it loaded so root handles can be destroyed without an owner.
type VksLoader struct {
	instances map[vks.Instance]vks.InstanceFacade
	devices   map[vks.Device]vks.DeviceFacade
}

// NewVksLoader returns the default loader.
func NewVksLoader() *VksLoader {
	return &VksLoader{
		instances: map[vks.Instance]vks.InstanceFacade{},
		devices:   map[vks.Device]vks.DeviceFacade{},
	}
}

func (l *VksLoader) LoadInstance(instance vks.Instance) (InstanceTable, error) {
	facade := vks.MakeInstanceFacade(instance)
	l.instances[instance] = facade
	return &vksInstanceTable{f: facade}, nil
}

func (l *VksLoader) LoadDevice(instance InstanceTable, physicalDevice vks.PhysicalDevice, device vks.Device) (DeviceTable, error) {
	it, ok := instance.(*vksInstanceTable)
	if !ok {
		return nil, errors.Wrapf(ErrNotVks, "load device: instance table is %T", instance)
	}
	physical := it.f.MakePhysicalDeviceFacade(physicalDevice)
	facade := physical.MakeDeviceFacade(device)
	l.devices[device] = facade
	return &vksDeviceTable{f: facade}, nil
}

func (l *VksLoader) DestroyInstance(instance vks.Instance, allocator *vks.AllocationCallbacks) {
	facade, ok := l.instances[instance]
	if !ok {
		facade = vks.MakeInstanceFacade(instance)
	}
	delete(l.instances, instance)
	facade.DestroyInstance(allocator)
}

func (l *VksLoader) DestroyDevice(device vks.Device, allocator *vks.AllocationCallbacks) {
	facade, ok := l.devices[device]
	if !ok {
		Logger().Warn("destroy of a device that was never loaded", zap.Any("device", device))
		return
	}
	delete(l.devices, device)
	facade.DestroyDevice(allocator)
}

type vksInstanceTable struct {
	f vks.InstanceFacade
}

func (t *vksInstanceTable) DestroySurfaceKHR(surface vks.SurfaceKHR, allocator *vks.AllocationCallbacks) {
	t.f.DestroySurfaceKHR(surface, allocator)
}

type vksDeviceTable struct {
	f vks.DeviceFacade
}

func (t *vksDeviceTable) DestroySwapchainKHR(swapchain vks.SwapchainKHR, allocator *vks.AllocationCallbacks) {
	t.f.DestroySwapchainKHR(swapchain, allocator)
}

func (t *vksDeviceTable) DestroyImage(image vks.Image, allocator *vks.AllocationCallbacks) {
	t.f.DestroyImage(image, allocator)
}

func (t *vksDeviceTable) DestroyImageView(imageView vks.ImageView, allocator *vks.AllocationCallbacks) {
	t.f.DestroyImageView(imageView, allocator)
}

func (t *vksDeviceTable) DestroyRenderPass(renderPass vks.RenderPass, allocator *vks.AllocationCallbacks) {
	t.f.DestroyRenderPass(renderPass, allocator)
}

func (t *vksDeviceTable) DestroyFramebuffer(framebuffer vks.Framebuffer, allocator *vks.AllocationCallbacks) {
	t.f.DestroyFramebuffer(framebuffer, allocator)
}

func (t *vksDeviceTable) DestroyShaderModule(shaderModule vks.ShaderModule, allocator *vks.AllocationCallbacks) {
	t.f.DestroyShaderModule(shaderModule, allocator)
}

func (t *vksDeviceTable) DestroyPipelineLayout(pipelineLayout vks.PipelineLayout, allocator *vks.AllocationCallbacks) {
	t.f.DestroyPipelineLayout(pipelineLayout, allocator)
}

func (t *vksDeviceTable) DestroyPipeline(pipeline vks.Pipeline, allocator *vks.AllocationCallbacks) {
	t.f.DestroyPipeline(pipeline, allocator)
}

func (t *vksDeviceTable) DestroyBuffer(buffer vks.Buffer, allocator *vks.AllocationCallbacks) {
	t.f.DestroyBuffer(buffer, allocator)
}

func (t *vksDeviceTable) FreeMemory(memory vks.DeviceMemory, allocator *vks.AllocationCallbacks) {
	t.f.FreeMemory(memory, allocator)
}

func (t *vksDeviceTable) DestroyCommandPool(commandPool vks.CommandPool, allocator *vks.AllocationCallbacks) {
	t.f.DestroyCommandPool(commandPool, allocator)
}

func (t *vksDeviceTable) DestroySemaphore(semaphore vks.Semaphore, allocator *vks.AllocationCallbacks) {
	t.f.DestroySemaphore(semaphore, allocator)
}

func (t *vksDeviceTable) DestroyFence(fence vks.Fence, allocator *vks.AllocationCallbacks) {
	t.f.DestroyFence(fence, allocator)
}

func (t *vksDeviceTable) DestroyDescriptorSetLayout(layout vks.DescriptorSetLayout, allocator *vks.AllocationCallbacks) {
	t.f.DestroyDescriptorSetLayout(layout, allocator)
}

func (t *vksDeviceTable) DestroyDescriptorPool(pool vks.DescriptorPool, allocator *vks.AllocationCallbacks) {
	t.f.DestroyDescriptorPool(pool, allocator)
}

func (t *vksDeviceTable) FreeCommandBuffers(commandPool vks.CommandPool, commandBuffers []vks.CommandBuffer) {
	t.f.FreeCommandBuffers(commandPool, uint32(len(commandBuffers)), commandBuffers)
}

func (t *vksDeviceTable) FreeDescriptorSets(pool vks.DescriptorPool, sets []vks.DescriptorSet) error {
	result := t.f.FreeDescriptorSets(pool, uint32(len(sets)), sets)
	if result.IsError() {
		return errors.Wrap(result.AsErr(), "free descriptor sets")
	}
	return nil
}

// InstanceFacade returns the vks facade behind an instance dispatch loaded
// by a VksLoader.
func (d *DynamicDispatch) InstanceFacade() (vks.InstanceFacade, error) {
	if d == nil {
		return vks.InstanceFacade{}, ErrNoDispatch
	}
	it, ok := d.instanceTable.(*vksInstanceTable)
	if !ok {
		return vks.InstanceFacade{}, errors.Wrapf(ErrNotVks, "instance table is %T", d.instanceTable)
	}
	return it.f, nil
}

// DeviceFacade returns the vks facade behind a device dispatch loaded by a
// VksLoader.
func (d *DynamicDispatch) DeviceFacade() (vks.DeviceFacade, error) {
	if d == nil || d.deviceTable == nil {
		return vks.DeviceFacade{}, ErrNoDispatch
	}
	dt, ok := d.deviceTable.(*vksDeviceTable)
	if !ok {
		return vks.DeviceFacade{}, errors.Wrapf(ErrNotVks, "device table is %T", d.deviceTable)
	}
	return dt.f, nil
}
