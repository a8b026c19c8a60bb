package alloc

import (
	"unsafe"

	"github.com/moontrade/unsafe/memory"
)

// OffHeap allocates with malloc outside the Go heap. Only pointer-free
// layouts are accepted.
var OffHeap Allocator = offHeap{}

type offHeap struct{}

func (offHeap) Allocate(l Layout) (unsafe.Pointer, error) {
	if err := checkOffHeap(l); err != nil {
		return nil, err
	}
	p := memory.Alloc(l.allocSize())
	if uintptr(p) == 0 {
		return nil, ErrOutOfMemory
	}
	ptr := unsafe.Pointer(uintptr(p))
	if !aligned(ptr, l.Align) {
		memory.Free(p)
		return nil, ErrAlignment
	}
	return ptr, nil
}

func (offHeap) Deallocate(p unsafe.Pointer, l Layout) {
	if p == nil {
		return
	}
	poison(p, l.allocSize())
	memory.Free(memory.Pointer(p))
}
