package capi

import "C"
import (
	"runtime/cgo"
	"unsafe"
)

// NewPointerHandle wraps an arbitrary Go value in a cgo handle suitable
// for Stmt.BindPointer. The engine owns the handle from the moment it is
// bound and releases it through sqwrapHandleDestroy when the binding is
// replaced or the statement is finalized.
func NewPointerHandle(value any) uintptr {
	return uintptr(cgo.NewHandle(value))
}

// PointerHandleValue resolves a handle previously created by
// NewPointerHandle. It returns nil for the zero handle.
func PointerHandleValue(handle uintptr) any {
	if handle == 0 {
		return nil
	}
	return cgo.Handle(handle).Value()
}

//export sqwrapHandleDestroy
func sqwrapHandleDestroy(p unsafe.Pointer) {
	if p == nil {
		return
	}
	cgo.Handle(uintptr(p)).Delete()
}
