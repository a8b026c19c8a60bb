package rc

import (
	"github.com/moontrade/smartptr/pkg/alloc"
)

// Deleter tears down an object handed to NewSharedWith.
type Deleter[T any] func(p *T)

// DefaultDeleter calls Destroy when *T implements alloc.Destroyer. The
// memory itself belongs to the Go heap.
func DefaultDeleter[T any](p *T) {
	if d, ok := any(p).(alloc.Destroyer); ok {
		d.Destroy()
	}
}

// FreeDeleter tears down p and returns it to a. Use it for objects obtained
// from alloc.New.
func FreeDeleter[T any](a alloc.Allocator) Deleter[T] {
	return func(p *T) {
		defer alloc.Free(a, p)
		DefaultDeleter(p)
	}
}
