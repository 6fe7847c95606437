package main

import (
	"testing"

	"github.com/ibd1279/vks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOption(t *testing.T) {
	some := Some(uint32(3))
	assert.True(t, some.IsSet())
	assert.Equal(t, uint32(3), some.Some())

	none := None[uint32]()
	assert.False(t, none.IsSet())
	assert.Equal(t, uint32(7), none.SomeOr(func() uint32 { return 7 }))
	assert.Panics(t, func() { none.Some() })
}

func TestNewWordsUint32(t *testing.T) {
	words, err := NewWordsUint32([]byte{0x03, 0x02, 0x23, 0x07, 0x01, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	assert.Equal(t, WordsUint32{0x07230203, 1}, words)
	assert.Equal(t, uint64(8), words.Sizeof())

	_, err = NewWordsUint32([]byte{1, 2, 3})
	assert.Error(t, err)
	_, err = NewWordsUint32(nil)
	assert.Error(t, err)
}

func TestSelectNames(t *testing.T) {
	available := []string{"VK_KHR_surface", "VK_KHR_xcb_surface", "VK_KHR_portability_enumeration"}

	got, err := selectNames("instance extensions",
		[]string{"VK_KHR_surface", "VK_KHR_xcb_surface", "VK_KHR_surface"},
		[]string{"VK_KHR_portability_enumeration", "VK_KHR_get_surface_capabilities2"},
		available)
	require.NoError(t, err)
	assert.Equal(t, []string{"VK_KHR_surface", "VK_KHR_xcb_surface", "VK_KHR_portability_enumeration"}, got)

	_, err = selectNames("instance layers", []string{"VK_LAYER_KHRONOS_validation"}, nil, available)
	assert.ErrorContains(t, err, "missing instance layers: VK_LAYER_KHRONOS_validation")

	got, err = selectNames("device extensions", nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindMemoryType(t *testing.T) {
	local := vks.MemoryPropertyFlags(vks.VK_MEMORY_PROPERTY_DEVICE_LOCAL_BIT)
	visible := vks.MemoryPropertyFlags(vks.VK_MEMORY_PROPERTY_HOST_VISIBLE_BIT)
	coherent := vks.MemoryPropertyFlags(vks.VK_MEMORY_PROPERTY_HOST_COHERENT_BIT)
	types := []vks.MemoryPropertyFlags{local, visible, visible | coherent, local | visible | coherent}

	idx, err := findMemoryType(0xf, types, visible|coherent)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), idx)

	idx, err = findMemoryType(0x8, types, visible|coherent)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), idx)

	_, err = findMemoryType(0x3, types, visible|coherent)
	assert.Error(t, err)
}

func TestClampExtent(t *testing.T) {
	lo := vks.Extent2D{}.WithWidth(100).WithHeight(100)
	hi := vks.Extent2D{}.WithWidth(1000).WithHeight(500)

	e := clampExtent(1920, 50, lo, hi)
	assert.Equal(t, uint32(1000), e.Width())
	assert.Equal(t, uint32(100), e.Height())

	e = clampExtent(800, 300, lo, hi)
	assert.Equal(t, uint32(800), e.Width())
	assert.Equal(t, uint32(300), e.Height())
}

func TestSwapchainImageCount(t *testing.T) {
	assert.Equal(t, uint32(3), swapchainImageCount(2, 0))
	assert.Equal(t, uint32(3), swapchainImageCount(2, 8))
	assert.Equal(t, uint32(2), swapchainImageCount(2, 2))
}

type closeRecorder struct {
	id     int
	closed *[]int
}

func (c closeRecorder) Close() { *c.closed = append(*c.closed, c.id) }

func TestCloseAll(t *testing.T) {
	var closed []int
	objs := []closeRecorder{{1, &closed}, {2, &closed}, {3, &closed}}

	objs = closeAll(objs)
	assert.Nil(t, objs)
	assert.Equal(t, []int{3, 2, 1}, closed)
}
