package rc

import (
	"fmt"

	"github.com/moontrade/smartptr/pkg/alloc"
)

// DefaultAllocator backs NewShared and MakeShared.
var DefaultAllocator = alloc.Heap

// Shared is an owning handle. The zero value is empty.
type Shared[T any] struct {
	cb  ControlBlock
	ptr *T
}

// NewShared takes ownership of p using DefaultDeleter and DefaultAllocator.
func NewShared[T any](p *T) (Shared[T], error) {
	return NewSharedWith(p, nil, nil)
}

// NewSharedWith takes ownership of p. d tears p down once the last owner
// releases it and a supplies the control block's storage; nil selects the
// defaults. On error the caller still owns p.
func NewSharedWith[T any](p *T, d Deleter[T], a alloc.Allocator) (Shared[T], error) {
	if p == nil {
		return Shared[T]{}, ErrNilPointer
	}
	if d == nil {
		d = DefaultDeleter[T]
	}
	if a == nil {
		a = DefaultAllocator
	}
	cb, err := newRegularBlock(p, d, a)
	if err != nil {
		return Shared[T]{}, err
	}
	return Shared[T]{cb: cb, ptr: p}, nil
}

// fromBlock adds a shared reference to an existing block.
func fromBlock[T any](cb ControlBlock, p *T) Shared[T] {
	cb.Counts().Shared++
	return Shared[T]{cb: cb, ptr: p}
}

// Clone returns another owner of the same object.
func (s *Shared[T]) Clone() Shared[T] {
	if s.cb == nil {
		return Shared[T]{}
	}
	return fromBlock(s.cb, s.ptr)
}

// Move transfers ownership to the returned handle and empties s.
func (s *Shared[T]) Move() Shared[T] {
	out := *s
	s.cb, s.ptr = nil, nil
	return out
}

// Assign makes s another owner of other's object, releasing what s held.
func (s *Shared[T]) Assign(other *Shared[T]) {
	cb, p := other.cb, other.ptr
	// Retain before release: both may reference the same block.
	if cb != nil {
		cb.Counts().Shared++
	}
	old := s.cb
	s.cb, s.ptr = cb, p
	if old != nil {
		releaseShared(old)
	}
}

// MoveAssign moves other into s, releasing what s held.
func (s *Shared[T]) MoveAssign(other *Shared[T]) {
	if s == other {
		return
	}
	cb, p := other.cb, other.ptr
	other.cb, other.ptr = nil, nil
	old := s.cb
	s.cb, s.ptr = cb, p
	if old != nil {
		releaseShared(old)
	}
}

// Release gives up ownership and empties s. The last owner tears the object
// down. Releasing an empty handle does nothing.
func (s *Shared[T]) Release() {
	cb := s.cb
	s.cb, s.ptr = nil, nil
	if cb != nil {
		releaseShared(cb)
	}
}

// Reset is Release.
func (s *Shared[T]) Reset() {
	s.Release()
}

// ResetTo releases s and takes ownership of p. A nil p leaves s empty.
func (s *Shared[T]) ResetTo(p *T) error {
	return s.ResetWith(p, nil, nil)
}

// ResetWith releases s and takes ownership of p with a custom deleter and
// allocator. The new block is allocated first; on error s is unchanged.
func (s *Shared[T]) ResetWith(p *T, d Deleter[T], a alloc.Allocator) error {
	if p == nil {
		s.Release()
		return nil
	}
	n, err := NewSharedWith(p, d, a)
	if err != nil {
		return err
	}
	s.MoveAssign(&n)
	return nil
}

func (s *Shared[T]) Swap(other *Shared[T]) {
	s.cb, other.cb = other.cb, s.cb
	s.ptr, other.ptr = other.ptr, s.ptr
}

// Get returns the managed object, or nil when s is empty.
func (s *Shared[T]) Get() *T {
	return s.ptr
}

// Value returns a copy of the managed object. s must not be empty.
func (s *Shared[T]) Value() T {
	return *s.ptr
}

func (s *Shared[T]) Empty() bool {
	return s.cb == nil
}

// UseCount is the number of owners, or 0 when s is empty.
func (s *Shared[T]) UseCount() int {
	if s.cb == nil {
		return 0
	}
	return int(s.cb.Counts().Shared)
}

// Owner returns the control block, or nil when s is empty.
func (s *Shared[T]) Owner() ControlBlock {
	return s.cb
}

// Weak returns a weak handle to s's object.
func (s *Shared[T]) Weak() Weak[T] {
	return NewWeak(s)
}

func (s *Shared[T]) String() string {
	if s.cb == nil {
		return fmt.Sprintf("Shared[%s]{empty}", typeName[T]())
	}
	return fmt.Sprintf("Shared[%s]{use=%d weak=%d}", typeName[T](), s.cb.Counts().Shared, s.cb.Counts().Weak)
}

// SameOwner reports whether two handles share a control block, whatever
// their types.
func SameOwner(a, b interface{ Owner() ControlBlock }) bool {
	x, y := a.Owner(), b.Owner()
	return x != nil && x == y
}
