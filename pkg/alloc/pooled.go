package alloc

import (
	"unsafe"

	"github.com/bytedance/gopkg/lang/mcache"

	"github.com/moontrade/smartptr/pkg/pmath"
)

// Pooled allocates from power of 2 byte slabs recycled through mcache.
// The slabs are []byte so only pointer-free layouts are accepted.
var Pooled Allocator = pooled{}

type pooled struct{}

func (pooled) Allocate(l Layout) (unsafe.Pointer, error) {
	if err := checkOffHeap(l); err != nil {
		return nil, err
	}
	b := mcache.Malloc(int(l.allocSize()))
	if len(b) == 0 {
		return nil, ErrOutOfMemory
	}
	p := unsafe.Pointer(&b[0])
	if !aligned(p, l.Align) {
		mcache.Free(b)
		return nil, ErrAlignment
	}
	return p, nil
}

func (pooled) Deallocate(p unsafe.Pointer, l Layout) {
	if p == nil {
		return
	}
	size := l.allocSize()
	poison(p, size)
	// mcache keys its pools by capacity.
	b := unsafe.Slice((*byte)(p), pmath.CeilToPowerOf2(int(size)))
	mcache.Free(b[:size])
}
