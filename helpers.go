package main

import (
	"bytes"
	"encoding/binary"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ibd1279/vks"
	"github.com/ibd1279/vks-examples/tutorial-camera/vkobj"
)

// Option type, for tracking queue family selection.
type Option[T any] struct {
	v   T
	set bool
}

func Some[T any](value T) Option[T] {
	return Option[T]{v: value, set: true}
}
func None[T any]() Option[T] {
	return Option[T]{set: false}
}
func (option Option[T]) IsSet() bool { return option.set }
func (option Option[T]) Some() T {
	return option.SomeOr(func() T { panic("attempt to get from None") })
}
func (option Option[T]) SomeOr(callback func() T) T {
	if option.set {
		return option.v
	}
	return callback()
}

// WordsUint32 is SPIR-V code as 32-bit words.
type WordsUint32 []uint32

// NewWordsUint32 decodes little endian SPIR-V bytes.
func NewWordsUint32(b []byte) (WordsUint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, errors.Newf("spir-v size %d is not a positive multiple of 4", len(b))
	}
	words := make([]uint32, len(b)/4)
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, words); err != nil {
		return nil, errors.Wrap(err, "decode spir-v")
	}
	return WordsUint32(words), nil
}

func (words WordsUint32) Sizeof() uint64 {
	return uint64(len(words) * 4)
}

// check turns a failed result into an error naming the stage.
func check(result vks.Result, stage string) error {
	if result.IsError() {
		return errors.Wrap(result.AsErr(), stage)
	}
	return nil
}

func sameName(a, b string) bool { return a == b }

// selectNames returns the required names followed by the optional names
// that are available. Duplicates are dropped. Any required name that is
// not available is an error.
func selectNames(kind string, required, optional, available []string) ([]string, error) {
	if !vkobj.IsIncluded(required, available) {
		missing := vkobj.Missing(required, available, sameName)
		return nil, errors.Newf("missing %s: %s", kind, strings.Join(missing, ", "))
	}
	selected := make([]string, 0, len(required)+len(optional))
	for _, name := range required {
		if !slices.Contains(selected, name) {
			selected = append(selected, name)
		}
	}
	for _, name := range optional {
		if slices.Contains(available, name) && !slices.Contains(selected, name) {
			selected = append(selected, name)
		}
	}
	return selected, nil
}

func extensionNames(props []vks.ExtensionProperties) []string {
	return vkobj.Transform[[]string](props, func(p vks.ExtensionProperties) string {
		return vks.ToString(p.ExtensionName())
	})
}

func layerNames(props []vks.LayerProperties) []string {
	return vkobj.Transform[[]string](props, func(p vks.LayerProperties) string {
		return vks.ToString(p.LayerName())
	})
}

// findMemoryType returns the first memory type allowed by typeBits whose
// flags include want.
func findMemoryType(typeBits uint32, types []vks.MemoryPropertyFlags, want vks.MemoryPropertyFlags) (uint32, error) {
	for k, flags := range types {
		if typeBits&(1<<uint(k)) != 0 && flags&want == want {
			return uint32(k), nil
		}
	}
	return 0, errors.Newf("no memory type in %#x with flags %#x", typeBits, uint32(want))
}

// clampExtent fits the framebuffer size inside the surface limits.
func clampExtent(width, height int, lo, hi vks.Extent2D) vks.Extent2D {
	w := clamp(uint32(width), lo.Width(), hi.Width())
	h := clamp(uint32(height), lo.Height(), hi.Height())
	return vks.Extent2D{}.WithWidth(w).WithHeight(h)
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// swapchainImageCount asks for one image more than the minimum, capped by
// the maximum when the surface has one.
func swapchainImageCount(minCount, maxCount uint32) uint32 {
	count := minCount + 1
	if maxCount > 0 && count > maxCount {
		count = maxCount
	}
	return count
}

// closeAll closes objects in reverse order.
func closeAll[T interface{ Close() }](objs []T) []T {
	for k := len(objs) - 1; k >= 0; k-- {
		objs[k].Close()
	}
	return nil
}
