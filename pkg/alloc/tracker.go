package alloc

import (
	"unsafe"

	"github.com/moontrade/smartptr/pkg/counter"
)

type Stats struct {
	Allocs   counter.Counter
	Deallocs counter.Counter
	Bytes    counter.Counter
}

// Tracker wraps an Allocator and records every allocation it hands out.
// Returning memory that is not live panics, which makes it a double free
// detector in tests.
type Tracker struct {
	Stats
	a    Allocator
	live map[unsafe.Pointer]Layout
}

func Track(a Allocator) *Tracker {
	if a == nil {
		a = Heap
	}
	return &Tracker{a: a, live: make(map[unsafe.Pointer]Layout)}
}

func (t *Tracker) Allocate(l Layout) (unsafe.Pointer, error) {
	p, err := t.a.Allocate(l)
	if err != nil {
		return nil, err
	}
	t.live[p] = l
	t.Allocs.Incr()
	t.Bytes.Add(int64(l.Size))
	return p, nil
}

func (t *Tracker) Deallocate(p unsafe.Pointer, l Layout) {
	if _, ok := t.live[p]; !ok {
		panic("alloc: double free or foreign pointer")
	}
	delete(t.live, p)
	t.Deallocs.Incr()
	t.Bytes.Sub(int64(l.Size))
	t.a.Deallocate(p, l)
}

// Outstanding is the number of allocations not yet returned.
func (t *Tracker) Outstanding() int {
	return len(t.live)
}

func (t *Tracker) Live(p unsafe.Pointer) bool {
	_, ok := t.live[p]
	return ok
}
