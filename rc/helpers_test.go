package rc

import (
	"errors"
	"unsafe"

	"github.com/moontrade/smartptr/pkg/alloc"
)

// teardowns counts Destroy calls per quote ID. Quotes are pointer-free so
// they can live off heap, which is why the count is kept outside them.
var teardowns = map[int64]int{}

func resetTeardowns() {
	teardowns = map[int64]int{}
}

type quote struct {
	ID  int64
	Bid float64
	Ask float64
}

func (q *quote) Destroy() {
	teardowns[q.ID]++
}

type header struct {
	Symbol [8]byte
	Venue  int32
}

// order embeds header at a non-zero offset.
type order struct {
	Seq int64
	header
	Qty   float64
	Price float64
}

func (o *order) Destroy() {
	teardowns[o.Seq]++
}

func orderHeader(o *order) *header { return &o.header }

// node holds a weak reference to itself.
type node struct {
	self      Weak[node]
	destroyed *int
}

func (n *node) Destroy() {
	*n.destroyed++
	n.self.Release()
}

var errNoMemory = errors.New("no memory")

// failing rejects every allocation.
type failing struct{}

func (failing) Allocate(alloc.Layout) (unsafe.Pointer, error) {
	return nil, errNoMemory
}

func (failing) Deallocate(unsafe.Pointer, alloc.Layout) {
	panic("nothing to free")
}

// recording wraps a Tracker and logs each allocator call in order.
type recording struct {
	*alloc.Tracker
	calls []string
}

func newRecording() *recording {
	return &recording{Tracker: alloc.Track(nil)}
}

func (r *recording) Allocate(l alloc.Layout) (unsafe.Pointer, error) {
	r.calls = append(r.calls, "allocate")
	return r.Tracker.Allocate(l)
}

func (r *recording) Deallocate(p unsafe.Pointer, l alloc.Layout) {
	r.calls = append(r.calls, "deallocate")
	r.Tracker.Deallocate(p, l)
}

func (r *recording) Construct(p unsafe.Pointer, l alloc.Layout) {
	r.calls = append(r.calls, "construct")
	alloc.Objects(r.Tracker).Construct(p, l)
}

func (r *recording) Destroy(p unsafe.Pointer, l alloc.Layout) {
	r.calls = append(r.calls, "destroy")
	alloc.Objects(r.Tracker).Destroy(p, l)
}
