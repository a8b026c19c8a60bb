package alloc

import (
	"reflect"
	"unsafe"

	"github.com/moontrade/smartptr/pkg/pmath"
)

// Heap allocates from the Go heap. Any layout is accepted and Deallocate
// leaves reclamation to the garbage collector.
var Heap Allocator = heap{}

type heap struct{}

func (heap) Allocate(l Layout) (unsafe.Pointer, error) {
	if l.Type != nil && l.Size > 0 {
		return reflect.New(l.Type).UnsafePointer(), nil
	}
	if l.Align <= 8 {
		b := make([]byte, l.allocSize())
		return unsafe.Pointer(&b[0]), nil
	}
	b := make([]byte, l.allocSize()+l.Align-1)
	base := uintptr(unsafe.Pointer(&b[0]))
	return unsafe.Add(unsafe.Pointer(&b[0]), pmath.AlignUp(base, l.Align)-base), nil
}

func (heap) Deallocate(unsafe.Pointer, Layout) {}
