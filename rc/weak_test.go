package rc

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moontrade/smartptr/pkg/alloc"
)

func TestWeakExpires(t *testing.T) {
	resetTeardowns()
	tr := alloc.Track(nil)
	s := newTrackedQuote(t, tr, 1)
	c := s.Clone()

	w := s.Weak()
	assert.False(t, w.Expired())
	assert.Equal(t, 2, w.UseCount())
	assert.Equal(t, "Weak[rc.quote]{use=2 weak=1}", w.String())

	locked := w.Lock()
	assert.Equal(t, 3, locked.UseCount())
	assert.Same(t, s.Get(), locked.Get())
	locked.Release()

	s.Release()
	assert.False(t, w.Expired())
	c.Release()
	assert.True(t, w.Expired())
	assert.Equal(t, 0, w.UseCount())
	assert.Equal(t, 1, teardowns[1])

	l := w.Lock()
	assert.True(t, l.Empty())

	// object storage is gone, the block waits for the weak handle
	assert.Equal(t, 1, tr.Outstanding())
	w.Release()
	assert.Equal(t, 0, tr.Outstanding())
	assert.True(t, w.Expired())
}

func TestWeakDoesNotExtendLifetime(t *testing.T) {
	resetTeardowns()
	s, err := MakeSharedValue(quote{ID: 5})
	require.NoError(t, err)
	w1 := NewWeak(&s)
	w2 := w1.Clone()
	w3 := w2.Move()
	assert.True(t, w2.Expired())
	assert.Equal(t, 1, s.UseCount())
	assert.Equal(t, uint64(2), s.Owner().Counts().Weak)

	s.Release()
	assert.Equal(t, 1, teardowns[5])
	assert.True(t, w1.Expired())
	assert.True(t, w3.Expired())
	w1.Release()
	w3.Release()
}

type blob struct {
	data [1 << 20]byte
}

// ownBlob hands a new blob to a Shared and returns a weak handle to it. No
// other reference to the blob outlives the call.
func ownBlob(t *testing.T, collected *atomic.Bool) (Shared[blob], Weak[blob]) {
	b := &blob{}
	runtime.SetFinalizer(b, func(*blob) { collected.Store(true) })
	s, err := NewShared(b)
	require.NoError(t, err)
	return s, s.Weak()
}

func TestWeakDoesNotRetainCollectedObject(t *testing.T) {
	var collected atomic.Bool
	s, w := ownBlob(t, &collected)
	s.Release()
	require.True(t, w.Expired())

	for i := 0; i < 20 && !collected.Load(); i++ {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, collected.Load(), "object is collected while a weak handle remains")
	assert.NotNil(t, w.Owner(), "the weak handle is still held")
	l := w.Lock()
	assert.True(t, l.Empty())
	w.Release()
}

func TestWeakAssign(t *testing.T) {
	tr := alloc.Track(nil)
	a := newTrackedQuote(t, tr, 1)
	b := newTrackedQuote(t, tr, 2)

	w := a.Weak()
	a.Release()
	assert.True(t, w.Expired())
	assert.Equal(t, 3, tr.Outstanding(), "a's block is held by w")

	w.AssignShared(&b)
	assert.Equal(t, 2, tr.Outstanding(), "a's block freed on reassignment")
	assert.False(t, w.Expired())
	assert.Equal(t, uint64(1), b.Owner().Counts().Weak)

	w.Assign(&w)
	assert.Equal(t, uint64(1), b.Owner().Counts().Weak)
	assert.False(t, w.Expired())

	other := b.Weak()
	w.Assign(&other)
	assert.Equal(t, uint64(2), b.Owner().Counts().Weak)

	var empty Weak[quote]
	other.Assign(&empty)
	assert.True(t, other.Expired())
	assert.Equal(t, uint64(1), b.Owner().Counts().Weak)

	b.Release()
	w.Release()
	assert.Equal(t, 0, tr.Outstanding())
}

func TestWeakSwap(t *testing.T) {
	a, err := NewShared(&quote{ID: 1})
	require.NoError(t, err)
	wa := a.Weak()
	var wb Weak[quote]

	wa.Swap(&wb)
	assert.True(t, wa.Expired())
	assert.False(t, wb.Expired())
	assert.True(t, SameOwner(&a, &wb))

	a.Release()
	wb.Release()
}

func TestWeakSelfReferenceDuringTeardown(t *testing.T) {
	tr := alloc.Track(nil)
	destroyed := 0
	s, err := AllocateShared(tr, func(n *node) error {
		n.destroyed = &destroyed
		return nil
	})
	require.NoError(t, err)
	s.Get().self = s.Weak()
	assert.Equal(t, uint64(1), s.Owner().Counts().Weak)

	// node.Destroy releases the last weak handle while the block tears down
	s.Release()
	assert.Equal(t, 1, destroyed)
	assert.Equal(t, 0, tr.Outstanding())
	assert.Equal(t, int64(1), tr.Deallocs.Load())
}

func TestWeakLockDuringTeardown(t *testing.T) {
	var (
		w      Weak[quote]
		locked Shared[quote]
	)
	// a deleter observing its own object through a weak handle sees it expired
	s, err := NewSharedWith(&quote{}, func(*quote) {
		locked = w.Lock()
	}, nil)
	require.NoError(t, err)
	w = s.Weak()

	s.Release()
	assert.True(t, locked.Empty())
	assert.True(t, w.Expired())
	w.Release()
}
