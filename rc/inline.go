package rc

import (
	"unsafe"

	"github.com/moontrade/smartptr/pkg/alloc"
)

type inlineRecord[T any] struct {
	counts Counts
	value  T
}

// inlineBlock embeds the managed object next to its counters so a single
// allocation serves both.
type inlineBlock[T any] struct {
	rec         *inlineRecord[T]
	alloc       alloc.ObjectAllocator
	valueLayout alloc.Layout
	recLayout   alloc.Layout
}

// newInlineBlock allocates the record and constructs an empty value slot.
// The shared count starts at zero.
func newInlineBlock[T any](a alloc.ObjectAllocator) (*inlineBlock[T], error) {
	b := &inlineBlock[T]{
		alloc:       a,
		valueLayout: alloc.LayoutOf[T](),
		recLayout:   alloc.LayoutOf[inlineRecord[T]](),
	}
	p, err := a.Allocate(b.recLayout)
	if err != nil {
		return nil, allocationError("inline block for "+typeName[T](), err)
	}
	b.rec = (*inlineRecord[T])(p)
	b.rec.counts = Counts{}
	a.Construct(unsafe.Pointer(&b.rec.value), b.valueLayout)
	return b, nil
}

func (b *inlineBlock[T]) value() *T {
	return &b.rec.value
}

func (b *inlineBlock[T]) Counts() *Counts {
	return &b.rec.counts
}

func (b *inlineBlock[T]) Pointer() unsafe.Pointer {
	return unsafe.Pointer(&b.rec.value)
}

func (b *inlineBlock[T]) Destroy() {
	b.alloc.Destroy(unsafe.Pointer(&b.rec.value), b.valueLayout)
}

func (b *inlineBlock[T]) Deallocate() {
	p := unsafe.Pointer(b.rec)
	b.rec = nil
	b.alloc.Deallocate(p, b.recLayout)
}
