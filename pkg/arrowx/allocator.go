package arrowx

import (
	"unsafe"

	"github.com/apache/arrow/go/v13/arrow/memory"
	mem "github.com/moontrade/unsafe/memory"
)

// OffHeap is an arrow memory.Allocator backed by malloc'd memory outside
// the Go heap. Buffers must be freed explicitly.
var OffHeap memory.Allocator = offHeap{}

type offHeap struct{}

func (offHeap) Allocate(size int) []byte {
	if size < 1 {
		return nil
	}
	p := mem.Alloc(uintptr(size))
	if uintptr(p) == 0 {
		panic("arrowx: out of memory")
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(p))), size)
}

func (a offHeap) Reallocate(size int, b []byte) []byte {
	if len(b) < 1 {
		return a.Allocate(size)
	}
	if size < 1 {
		a.Free(b)
		return nil
	}
	p := mem.Realloc(mem.Pointer(unsafe.Pointer(&b[0])), uintptr(size))
	if uintptr(p) == 0 {
		panic("arrowx: out of memory")
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(p))), size)
}

func (offHeap) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	mem.Free(mem.Pointer(unsafe.Pointer(&b[0])))
}
