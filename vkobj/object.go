package vkobj

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ibd1279/vks"
	"go.uber.org/zap"
)

// noCopy makes go vet's copylocks check reject copies of an owner.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Object exclusively owns a handle, the info it was created with, and the
// deleter that releases it. The zero Object is empty.
//
// Objects must not be copied; use Move to transfer ownership.
type Object[H comparable, I any] struct {
	noCopy noCopy

	handle  H
	info    I
	deleter Deleter[H]
}

// NewObject wraps handle. A nil deleter makes the object hold the handle
// without ever releasing it, as for swapchain images.
func NewObject[H comparable, I any](info I, handle H, deleter Deleter[H]) *Object[H, I] {
	return &Object[H, I]{handle: handle, info: info, deleter: deleter}
}

// Empty returns an object that holds nothing.
func Empty[H comparable, I any]() *Object[H, I] {
	return &Object[H, I]{}
}

func (o *Object[H, I]) Handle() H {
	if o == nil {
		var zero H
		return zero
	}
	return o.handle
}

func (o *Object[H, I]) Info() I {
	if o == nil {
		var zero I
		return zero
	}
	return o.info
}

func (o *Object[H, I]) Deleter() Deleter[H] {
	if o == nil {
		return nil
	}
	return o.deleter
}

// IsNull reports whether the object holds no handle.
func (o *Object[H, I]) IsNull() bool {
	var zero H
	return o == nil || o.handle == zero
}

// Move returns a new object owning everything o owned. o is left empty.
func (o *Object[H, I]) Move() *Object[H, I] {
	m := &Object[H, I]{}
	if o != nil {
		m.take(o)
	}
	return m
}

// Assign releases the handle held by o and takes ownership of src. src is
// left empty.
func (o *Object[H, I]) Assign(src *Object[H, I]) {
	if o == src {
		return
	}
	o.Close()
	if src != nil {
		o.take(src)
	}
}

// Reset releases the handle held by o and keeps handle with the same
// deleter and info.
func (o *Object[H, I]) Reset(handle H) {
	o.Close()
	o.handle = handle
}

// Release gives up ownership of the handle without releasing it.
func (o *Object[H, I]) Release() H {
	var zero H
	h := o.handle
	o.handle = zero
	return h
}

// Close releases the handle if there is one. The handle is cleared before
// the deleter runs, so Close releases a handle at most once. Failures and
// panics in the deleter are logged and swallowed.
func (o *Object[H, I]) Close() {
	if o == nil || o.IsNull() {
		return
	}
	h := o.Release()
	if o.deleter == nil {
		return
	}
	release(o.deleter, h)
}

func (o *Object[H, I]) take(src *Object[H, I]) {
	var zeroH H
	var zeroI I
	o.handle, o.info, o.deleter = src.handle, src.info, src.deleter
	src.handle, src.info, src.deleter = zeroH, zeroI, nil
}

func release[H any](d Deleter[H], h H) {
	name := fmt.Sprintf("%T", h)
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("deleter panicked",
				zap.String("handle", name),
				zap.Any("panic", r))
		}
	}()
	if err := d.Delete(h); err != nil {
		Logger().Error("release failed",
			zap.String("handle", name),
			zap.Error(err))
		return
	}
	Logger().Debug("released", zap.String("handle", name))
}

// RootObject owns a root handle together with the dynamic dispatch loaded
// for it. Objects owned by the root borrow that dispatch.
type RootObject[H RootType, I any] struct {
	obj      Object[H, I]
	dispatch *DynamicDispatch
}

// NewInstance wraps an instance and loads its dispatch. A null handle gives
// an object that only holds info. If loading fails the instance is
// destroyed.
func NewInstance[I any](info I, handle Instance, allocator *vks.AllocationCallbacks) (*RootObject[Instance, I], error) {
	o := &RootObject[Instance, I]{
		obj: Object[Instance, I]{
			handle:  handle,
			info:    info,
			deleter: RootDestroy[Instance]{allocator: allocator},
		},
	}
	if o.obj.IsNull() {
		return o, nil
	}
	table, err := loader.LoadInstance(handle.H)
	if err != nil {
		o.Close()
		return nil, errors.Wrap(err, "load instance dispatch")
	}
	o.dispatch = &DynamicDispatch{
		instance:      handle.H,
		instanceTable: table,
	}
	return o, nil
}

// NewDevice wraps a device and loads its dispatch, chained through the
// dispatch of instance. A null handle gives an object that only holds info.
// If loading fails the device is destroyed.
func NewDevice[I, J any](info I, handle Device, instance *RootObject[Instance, J], physicalDevice vks.PhysicalDevice, allocator *vks.AllocationCallbacks) (*RootObject[Device, I], error) {
	o := &RootObject[Device, I]{
		obj: Object[Device, I]{
			handle:  handle,
			info:    info,
			deleter: RootDestroy[Device]{allocator: allocator},
		},
	}
	if o.obj.IsNull() {
		return o, nil
	}
	parent := instance.Dispatch()
	if parent == nil {
		o.Close()
		return nil, errors.Wrap(ErrNoDispatch, "load device dispatch: instance")
	}
	table, err := loader.LoadDevice(parent.instanceTable, physicalDevice, handle.H)
	if err != nil {
		o.Close()
		return nil, errors.Wrap(err, "load device dispatch")
	}
	o.dispatch = &DynamicDispatch{
		instance:      parent.instance,
		device:        handle.H,
		instanceTable: parent.instanceTable,
		deviceTable:   table,
		parent:        parent,
	}
	return o, nil
}

func (o *RootObject[H, I]) Handle() H {
	if o == nil {
		var zero H
		return zero
	}
	return o.obj.Handle()
}

func (o *RootObject[H, I]) Info() I {
	if o == nil {
		var zero I
		return zero
	}
	return o.obj.Info()
}

func (o *RootObject[H, I]) Deleter() Deleter[H] {
	if o == nil {
		return nil
	}
	return o.obj.Deleter()
}

func (o *RootObject[H, I]) IsNull() bool {
	return o == nil || o.obj.IsNull()
}

// Dispatch returns the dispatch loaded for the handle, or nil when the
// object is empty.
func (o *RootObject[H, I]) Dispatch() *DynamicDispatch {
	if o == nil {
		return nil
	}
	return o.dispatch
}

// Move returns a new object owning the handle and dispatch of o. o is left
// empty.
func (o *RootObject[H, I]) Move() *RootObject[H, I] {
	m := &RootObject[H, I]{}
	if o != nil {
		m.take(o)
	}
	return m
}

// Assign releases the handle held by o and takes ownership of src.
func (o *RootObject[H, I]) Assign(src *RootObject[H, I]) {
	if o == src {
		return
	}
	o.Close()
	if src != nil {
		o.take(src)
	}
}

// Close releases the handle and drops the dispatch. Objects that borrowed
// the dispatch must be closed first.
func (o *RootObject[H, I]) Close() {
	if o == nil {
		return
	}
	o.obj.Close()
	o.dispatch = nil
}

func (o *RootObject[H, I]) take(src *RootObject[H, I]) {
	o.obj.take(&src.obj)
	o.dispatch, src.dispatch = src.dispatch, nil
}
