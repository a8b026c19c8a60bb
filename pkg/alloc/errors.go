package alloc

import "errors"

var (
	// ErrOutOfMemory indicates the allocator could not supply the requested storage.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrPointerLayout indicates a layout holding Go pointers was requested from an
	// allocator whose memory is not scanned by the garbage collector.
	ErrPointerLayout = errors.New("alloc: layout contains Go pointers")

	// ErrAlignment indicates the allocator returned memory that does not satisfy the layout's alignment.
	ErrAlignment = errors.New("alloc: misaligned memory")

	// ErrClosed indicates the allocator has been closed.
	ErrClosed = errors.New("alloc: allocator closed")
)
