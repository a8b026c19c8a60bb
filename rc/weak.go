package rc

import (
	"fmt"
	"unsafe"
)

// noView marks a handle whose typed view is nil.
const noView = ^uintptr(0)

// Weak observes an object without keeping it alive. The zero value is empty.
//
// Only the control block and the view's byte offset from cb.Pointer() are
// held. A *T would keep a garbage collected object reachable after teardown,
// so the pointer is rebuilt by Lock while the object is live.
type Weak[T any] struct {
	cb  ControlBlock
	off uintptr
}

// viewOffset is p's distance from the object cb manages. cb must be live.
func viewOffset[T any](cb ControlBlock, p *T) uintptr {
	if p == nil {
		return noView
	}
	return uintptr(unsafe.Pointer(p)) - uintptr(cb.Pointer())
}

// view rebuilds the typed pointer. The object must be live.
func (w *Weak[T]) view() *T {
	if w.off == noView {
		return nil
	}
	return (*T)(unsafe.Add(w.cb.Pointer(), int(w.off)))
}

// NewWeak returns a weak handle to s's object.
func NewWeak[T any](s *Shared[T]) Weak[T] {
	if s.cb == nil {
		return Weak[T]{}
	}
	s.cb.Counts().Weak++
	return Weak[T]{cb: s.cb, off: viewOffset(s.cb, s.ptr)}
}

func (w *Weak[T]) Clone() Weak[T] {
	if w.cb == nil {
		return Weak[T]{}
	}
	w.cb.Counts().Weak++
	return Weak[T]{cb: w.cb, off: w.off}
}

// Move transfers the observation to the returned handle and empties w.
func (w *Weak[T]) Move() Weak[T] {
	out := *w
	w.cb, w.off = nil, 0
	return out
}

// Assign makes w observe other's object.
func (w *Weak[T]) Assign(other *Weak[T]) {
	w.assign(other.cb, other.off)
}

// AssignShared makes w observe s's object.
func (w *Weak[T]) AssignShared(s *Shared[T]) {
	var off uintptr
	if s.cb != nil {
		off = viewOffset(s.cb, s.ptr)
	}
	w.assign(s.cb, off)
}

func (w *Weak[T]) assign(cb ControlBlock, off uintptr) {
	if cb != nil {
		cb.Counts().Weak++
	}
	old := w.cb
	w.cb, w.off = cb, off
	if old != nil {
		releaseWeak(old)
	}
}

// Expired reports whether the object has been torn down or w is empty.
func (w *Weak[T]) Expired() bool {
	return w.cb == nil || w.cb.Counts().Shared == 0
}

// Lock returns a new owner of the object, or an empty handle if it has expired.
func (w *Weak[T]) Lock() Shared[T] {
	if w.Expired() {
		return Shared[T]{}
	}
	return fromBlock(w.cb, w.view())
}

// UseCount is the number of owners, or 0 when expired.
func (w *Weak[T]) UseCount() int {
	if w.Expired() {
		return 0
	}
	return int(w.cb.Counts().Shared)
}

func (w *Weak[T]) Owner() ControlBlock {
	return w.cb
}

func (w *Weak[T]) Swap(other *Weak[T]) {
	w.cb, other.cb = other.cb, w.cb
	w.off, other.off = other.off, w.off
}

// Release stops observing and empties w. The last handle of any kind frees
// the control block.
func (w *Weak[T]) Release() {
	cb := w.cb
	w.cb, w.off = nil, 0
	if cb != nil {
		releaseWeak(cb)
	}
}

// Reset is Release.
func (w *Weak[T]) Reset() {
	w.Release()
}

func (w *Weak[T]) String() string {
	if w.cb == nil {
		return fmt.Sprintf("Weak[%s]{empty}", typeName[T]())
	}
	return fmt.Sprintf("Weak[%s]{use=%d weak=%d}", typeName[T](), w.cb.Counts().Shared, w.cb.Counts().Weak)
}
