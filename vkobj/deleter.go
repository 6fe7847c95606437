package vkobj

import (
	"github.com/ibd1279/vks"
)

// Deleter releases one handle of type H.
type Deleter[H any] interface {
	Delete(handle H) error
}

// RootDestroy destroys a root handle through the static dispatch.
type RootDestroy[H RootHandle] struct {
	allocator *vks.AllocationCallbacks
	dispatch  StaticDispatch
}

func (d RootDestroy[H]) Delete(handle H) error {
	handle.destroyRoot(d.dispatch, d.allocator)
	return nil
}

func (d RootDestroy[H]) Allocator() *vks.AllocationCallbacks { return d.allocator }
func (d RootDestroy[H]) Dispatch() StaticDispatch             { return d.dispatch }

// ObjectDestroy destroys a handle through its owner.
type ObjectDestroy[O RootHandle, H OwnedHandle[O]] struct {
	owner     O
	allocator *vks.AllocationCallbacks
	dispatch  *DynamicDispatch
}

func (d ObjectDestroy[O, H]) Delete(handle H) error {
	if d.dispatch == nil {
		return ErrNoDispatch
	}
	handle.destroy(d.owner, d.dispatch, d.allocator)
	return nil
}

func (d ObjectDestroy[O, H]) Owner() O                            { return d.owner }
func (d ObjectDestroy[O, H]) Allocator() *vks.AllocationCallbacks { return d.allocator }
func (d ObjectDestroy[O, H]) Dispatch() *DynamicDispatch          { return d.dispatch }

// PoolFree frees a handle back to the pool it was allocated from.
type PoolFree[O RootHandle, P any, H PooledHandle[O, P]] struct {
	owner    O
	pool     P
	dispatch *DynamicDispatch
}

func (d PoolFree[O, P, H]) Delete(handle H) error {
	if d.dispatch == nil {
		return ErrNoDispatch
	}
	return handle.free(d.owner, d.pool, d.dispatch)
}

func (d PoolFree[O, P, H]) Owner() O                   { return d.owner }
func (d PoolFree[O, P, H]) Pool() P                    { return d.pool }
func (d PoolFree[O, P, H]) Dispatch() *DynamicDispatch { return d.dispatch }
