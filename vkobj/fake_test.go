package vkobj

import (
	"testing"
	"unsafe"

	"github.com/ibd1279/vks"
)

// fakeHandle builds a non-null vks handle for tests, whether vks represents
// the handle as an integer or as a pointer.
func fakeHandle[T any](v uintptr) T {
	var h T
	if unsafe.Sizeof(h) != unsafe.Sizeof(v) {
		panic("fakeHandle: unexpected handle size")
	}
	*(*uintptr)(unsafe.Pointer(&h)) = v
	return h
}

type call struct {
	name   string
	handle any
}

type recorder struct {
	calls []call
}

func (r *recorder) add(name string, handle any) {
	r.calls = append(r.calls, call{name: name, handle: handle})
}

func (r *recorder) names() []string {
	names := make([]string, len(r.calls))
	for k, c := range r.calls {
		names[k] = c.name
	}
	return names
}

func (r *recorder) reset() {
	r.calls = nil
}

type fakeLoader struct {
	rec          *recorder
	failInstance error
	failDevice   error
	device       *fakeDeviceTable
}

func useFakeLoader(t *testing.T) (*fakeLoader, *recorder) {
	t.Helper()
	prev := CurrentLoader()
	rec := &recorder{}
	l := &fakeLoader{rec: rec}
	SetLoader(l)
	t.Cleanup(func() { SetLoader(prev) })
	return l, rec
}

func (l *fakeLoader) LoadInstance(instance vks.Instance) (InstanceTable, error) {
	if l.failInstance != nil {
		return nil, l.failInstance
	}
	l.rec.add("LoadInstance", instance)
	return &fakeInstanceTable{rec: l.rec, instance: instance}, nil
}

func (l *fakeLoader) LoadDevice(instance InstanceTable, physicalDevice vks.PhysicalDevice, device vks.Device) (DeviceTable, error) {
	if l.failDevice != nil {
		return nil, l.failDevice
	}
	l.rec.add("LoadDevice", device)
	l.device = &fakeDeviceTable{rec: l.rec, device: device, instance: instance}
	return l.device, nil
}

func (l *fakeLoader) DestroyInstance(instance vks.Instance, allocator *vks.AllocationCallbacks) {
	l.rec.add("DestroyInstance", instance)
}

func (l *fakeLoader) DestroyDevice(device vks.Device, allocator *vks.AllocationCallbacks) {
	l.rec.add("DestroyDevice", device)
}

type fakeInstanceTable struct {
	rec      *recorder
	instance vks.Instance
}

func (t *fakeInstanceTable) DestroySurfaceKHR(surface vks.SurfaceKHR, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroySurfaceKHR", surface)
}

type fakeDeviceTable struct {
	rec      *recorder
	device   vks.Device
	instance InstanceTable
	freeErr  error
}

func (t *fakeDeviceTable) DestroySwapchainKHR(swapchain vks.SwapchainKHR, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroySwapchainKHR", swapchain)
}

func (t *fakeDeviceTable) DestroyImage(image vks.Image, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyImage", image)
}

func (t *fakeDeviceTable) DestroyImageView(imageView vks.ImageView, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyImageView", imageView)
}

func (t *fakeDeviceTable) DestroyRenderPass(renderPass vks.RenderPass, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyRenderPass", renderPass)
}

func (t *fakeDeviceTable) DestroyFramebuffer(framebuffer vks.Framebuffer, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyFramebuffer", framebuffer)
}

func (t *fakeDeviceTable) DestroyShaderModule(shaderModule vks.ShaderModule, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyShaderModule", shaderModule)
}

func (t *fakeDeviceTable) DestroyPipelineLayout(pipelineLayout vks.PipelineLayout, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyPipelineLayout", pipelineLayout)
}

func (t *fakeDeviceTable) DestroyPipeline(pipeline vks.Pipeline, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyPipeline", pipeline)
}

func (t *fakeDeviceTable) DestroyBuffer(buffer vks.Buffer, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyBuffer", buffer)
}

func (t *fakeDeviceTable) FreeMemory(memory vks.DeviceMemory, allocator *vks.AllocationCallbacks) {
	t.rec.add("FreeMemory", memory)
}

func (t *fakeDeviceTable) DestroyCommandPool(commandPool vks.CommandPool, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyCommandPool", commandPool)
}

func (t *fakeDeviceTable) DestroySemaphore(semaphore vks.Semaphore, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroySemaphore", semaphore)
}

func (t *fakeDeviceTable) DestroyFence(fence vks.Fence, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyFence", fence)
}

func (t *fakeDeviceTable) DestroyDescriptorSetLayout(layout vks.DescriptorSetLayout, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyDescriptorSetLayout", layout)
}

func (t *fakeDeviceTable) DestroyDescriptorPool(pool vks.DescriptorPool, allocator *vks.AllocationCallbacks) {
	t.rec.add("DestroyDescriptorPool", pool)
}

func (t *fakeDeviceTable) FreeCommandBuffers(commandPool vks.CommandPool, commandBuffers []vks.CommandBuffer) {
	for _, b := range commandBuffers {
		t.rec.add("FreeCommandBuffers", b)
	}
}

func (t *fakeDeviceTable) FreeDescriptorSets(pool vks.DescriptorPool, sets []vks.DescriptorSet) error {
	for _, s := range sets {
		t.rec.add("FreeDescriptorSets", s)
	}
	return t.freeErr
}

// newTestRoots creates an instance and a device through the fake loader and
// clears the recorded load calls.
func newTestRoots(t *testing.T) (*RootObject[Instance, string], *RootObject[Device, string], *fakeLoader, *recorder) {
	t.Helper()
	l, rec := useFakeLoader(t)
	instance, err := NewInstance("instance", Instance{H: fakeHandle[vks.Instance](0x100)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	device, err := NewDevice("device", Device{H: fakeHandle[vks.Device](0x200)}, instance, fakeHandle[vks.PhysicalDevice](0x150), nil)
	if err != nil {
		t.Fatal(err)
	}
	rec.reset()
	return instance, device, l, rec
}
