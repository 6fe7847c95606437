package vkobj

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ibd1279/vks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectObject(t *testing.T) {
	_, device, _, rec := newTestRoots(t)
	allocator := &vks.AllocationCallbacks{}

	c := CollectObject[Buffer](device, allocator)
	d, ok := c.Deleter().(ObjectDestroy[Device, Buffer])
	require.True(t, ok)
	assert.Equal(t, device.Handle(), d.Owner())
	assert.Same(t, device.Dispatch(), d.Dispatch())
	assert.Same(t, allocator, d.Allocator())

	h := fakeHandle[vks.Buffer](0x60)
	obj := NewObject(struct{}{}, Buffer{H: h}, c.Deleter())
	obj.Close()
	assert.Equal(t, []call{{"DestroyBuffer", h}}, rec.calls)
}

func TestCollectObjectOnInstance(t *testing.T) {
	instance, _, _, rec := newTestRoots(t)

	h := fakeHandle[vks.SurfaceKHR](0x61)
	surface := NewOwned(struct{}{}, SurfaceKHR{H: h}, instance, nil)
	d, ok := surface.Deleter().(ObjectDestroy[Instance, SurfaceKHR])
	require.True(t, ok)
	assert.Equal(t, instance.Handle(), d.Owner())

	surface.Close()
	assert.Equal(t, []call{{"DestroySurfaceKHR", h}}, rec.calls)
}

func TestCollectPoolObject(t *testing.T) {
	_, device, _, rec := newTestRoots(t)

	pool := CommandPool{H: fakeHandle[vks.CommandPool](0x70)}
	c := CollectPoolObject[CommandBuffer](device, pool)
	d, ok := c.Deleter().(PoolFree[Device, CommandPool, CommandBuffer])
	require.True(t, ok)
	assert.Equal(t, device.Handle(), d.Owner())
	assert.Equal(t, pool, d.Pool())
	assert.Same(t, device.Dispatch(), d.Dispatch())

	h := fakeHandle[vks.CommandBuffer](0x71)
	buffer := NewPooled(struct{}{}, CommandBuffer{H: h}, device, pool)
	require.False(t, buffer.IsNull())
	buffer.Close()
	assert.Equal(t, []call{{"FreeCommandBuffers", h}}, rec.calls)
}

func TestPooledDescriptorSet(t *testing.T) {
	_, device, l, rec := newTestRoots(t)

	pool := DescriptorPool{H: fakeHandle[vks.DescriptorPool](0x80)}
	h := fakeHandle[vks.DescriptorSet](0x81)
	set := NewPooled("ubo", DescriptorSet{H: h}, device, pool)
	assert.Equal(t, "ubo", set.Info())

	l.device.freeErr = errors.New("pool was not created with the free bit")
	assert.NotPanics(t, set.Close)
	assert.True(t, set.IsNull())
	assert.Equal(t, []call{{"FreeDescriptorSets", h}}, rec.calls)
}

func TestDeleterWithoutDispatch(t *testing.T) {
	var destroy ObjectDestroy[Device, Buffer]
	assert.ErrorIs(t, destroy.Delete(Buffer{H: fakeHandle[vks.Buffer](0x90)}), ErrNoDispatch)

	var free PoolFree[Device, CommandPool, CommandBuffer]
	assert.ErrorIs(t, free.Delete(CommandBuffer{H: fakeHandle[vks.CommandBuffer](0x91)}), ErrNoDispatch)
}

func TestDispatchFacadeFromFake(t *testing.T) {
	instance, device, _, _ := newTestRoots(t)

	_, err := instance.Dispatch().InstanceFacade()
	assert.ErrorIs(t, err, ErrNotVks)
	_, err = device.Dispatch().DeviceFacade()
	assert.ErrorIs(t, err, ErrNotVks)
	_, err = instance.Dispatch().DeviceFacade()
	assert.ErrorIs(t, err, ErrNoDispatch)

	var empty *DynamicDispatch
	_, err = empty.InstanceFacade()
	assert.ErrorIs(t, err, ErrNoDispatch)
}
