package rc

import (
	"fmt"

	"github.com/moontrade/smartptr/pkg/alloc"
	"github.com/moontrade/smartptr/pkg/util"
)

// AllocateShared places a new T and its control block in a single allocation
// from a. The slot is constructed by a and then init runs on it in place.
// If init fails or panics the storage is returned to a before the error,
// which wraps ErrConstruction, is returned. A nil init leaves the zero value.
//
// When a is an alloc.ObjectAllocator its Construct runs once per call. Its
// Destroy runs once at teardown, before Deallocate, and only for a value
// that was fully built: a failed init goes straight to Deallocate, so the
// value's Destroy hook never sees a partial object.
func AllocateShared[T any](a alloc.Allocator, init func(*T) error) (Shared[T], error) {
	if a == nil {
		a = DefaultAllocator
	}
	b, err := newInlineBlock[T](alloc.Objects(a))
	if err != nil {
		return Shared[T]{}, err
	}
	if init != nil {
		if err = util.Try(func() error { return init(b.value()) }); err != nil {
			b.Deallocate()
			return Shared[T]{}, fmt.Errorf("%w: %s: %w", ErrConstruction, typeName[T](), err)
		}
	}
	return fromBlock[T](b, b.value()), nil
}

// MakeShared is AllocateShared with DefaultAllocator.
func MakeShared[T any](init func(*T) error) (Shared[T], error) {
	return AllocateShared(DefaultAllocator, init)
}

// MakeSharedValue is MakeShared initialized with a copy of v.
func MakeSharedValue[T any](v T) (Shared[T], error) {
	return AllocateShared(DefaultAllocator, func(p *T) error {
		*p = v
		return nil
	})
}
