package vkobj

import (
	"github.com/ibd1279/vks"
)

// Collector holds a deleter bound to an owner and its dispatch, ready to be
// placed in an Object.
type Collector[H any] struct {
	deleter Deleter[H]
}

func (c Collector[H]) Deleter() Deleter[H] {
	return c.deleter
}

// CollectObject binds a deleter for a handle that owner destroys. Handles
// freed through a pool do not satisfy the constraint.
func CollectObject[H OwnedHandle[O], O RootType, I any](owner *RootObject[O, I], allocator *vks.AllocationCallbacks) Collector[H] {
	return Collector[H]{
		deleter: ObjectDestroy[O, H]{
			owner:     owner.Handle(),
			allocator: allocator,
			dispatch:  owner.Dispatch(),
		},
	}
}

// CollectPoolObject binds a deleter for a handle that is freed back to pool.
func CollectPoolObject[H PooledHandle[O, P], O RootType, P any, I any](owner *RootObject[O, I], pool P) Collector[H] {
	return Collector[H]{
		deleter: PoolFree[O, P, H]{
			owner:    owner.Handle(),
			pool:     pool,
			dispatch: owner.Dispatch(),
		},
	}
}

// NewOwned wraps a handle destroyed by owner.
func NewOwned[H OwnedType[O], O RootType, I, J any](info I, handle H, owner *RootObject[O, J], allocator *vks.AllocationCallbacks) *Object[H, I] {
	return NewObject(info, handle, CollectObject[H](owner, allocator).Deleter())
}

// NewPooled wraps a handle allocated from pool.
func NewPooled[H PooledType[O, P], O RootType, P any, I, J any](info I, handle H, owner *RootObject[O, J], pool P) *Object[H, I] {
	return NewObject(info, handle, CollectPoolObject[H](owner, pool).Deleter())
}
