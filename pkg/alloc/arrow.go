package alloc

import (
	"fmt"
	"unsafe"

	"github.com/apache/arrow/go/v13/arrow/memory"

	"github.com/moontrade/smartptr/pkg/util"
)

type arrowAllocator struct {
	mem memory.Allocator
}

// Arrow adapts an arrow memory.Allocator. Arrow buffers are plain bytes, so
// only pointer-free layouts are accepted.
func Arrow(mem memory.Allocator) Allocator {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return arrowAllocator{mem: mem}
}

func (a arrowAllocator) Allocate(l Layout) (unsafe.Pointer, error) {
	if err := checkOffHeap(l); err != nil {
		return nil, err
	}
	size := int(l.allocSize())
	var b []byte
	err := util.Try(func() error {
		b = a.mem.Allocate(size)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}
	if len(b) < size {
		if cap(b) > 0 {
			a.mem.Free(b)
		}
		return nil, ErrOutOfMemory
	}
	p := unsafe.Pointer(&b[0])
	if !aligned(p, l.Align) {
		a.mem.Free(b)
		return nil, ErrAlignment
	}
	return p, nil
}

func (a arrowAllocator) Deallocate(p unsafe.Pointer, l Layout) {
	if p == nil {
		return
	}
	size := l.allocSize()
	poison(p, size)
	a.mem.Free(unsafe.Slice((*byte)(p), size))
}
