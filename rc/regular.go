package rc

import (
	"unsafe"

	"github.com/moontrade/smartptr/pkg/alloc"
)

type regularRecord struct {
	counts Counts
}

// regularBlock manages an object allocated separately from the block. Only
// the counters live in allocator storage; the deleter owns the object.
type regularBlock[T any] struct {
	rec     *regularRecord
	ptr     *T
	deleter Deleter[T]
	alloc   alloc.Allocator
}

func newRegularBlock[T any](p *T, d Deleter[T], a alloc.Allocator) (*regularBlock[T], error) {
	rec, err := alloc.New[regularRecord](a)
	if err != nil {
		return nil, allocationError("control block for "+typeName[T](), err)
	}
	rec.counts.Shared = 1
	return &regularBlock[T]{
		rec:     rec,
		ptr:     p,
		deleter: d,
		alloc:   a,
	}, nil
}

func (b *regularBlock[T]) Counts() *Counts {
	return &b.rec.counts
}

func (b *regularBlock[T]) Pointer() unsafe.Pointer {
	return unsafe.Pointer(b.ptr)
}

func (b *regularBlock[T]) Destroy() {
	p := b.ptr
	b.ptr = nil
	if p != nil {
		b.deleter(p)
	}
}

func (b *regularBlock[T]) Deallocate() {
	rec := b.rec
	b.rec = nil
	alloc.Free(b.alloc, rec)
}
