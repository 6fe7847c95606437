// Package vkobj wraps vks handles in owning values.
//
// Every handle type in this package carries its classification in its
// method set: a RootHandle has no owner and is destroyed through the
// process-wide StaticDispatch, an OwnedHandle[O] is destroyed by its owner
// O through the owner's DynamicDispatch, and a PooledHandle[O, P] is freed
// back to a pool P that O created. The collectors only accept handles of
// the matching shape, so pairing a handle with the wrong deleter does not
// compile.
//
// Wrappers are created after the native create call succeeds:
//
//	var buf vks.Buffer
//	if result := device.CreateBuffer(info, nil, &buf); result.IsError() {
//		return result.AsErr()
//	}
//	buffer := vkobj.NewOwned(bufferInfo, vkobj.Buffer{H: buf}, deviceObj, nil)
//	defer buffer.Close()
//
// A wrapper must be closed before the wrapper it borrowed its dispatch from.
// None of the types in this package are safe for concurrent use.
package vkobj
