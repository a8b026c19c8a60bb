package mmap

import (
	"errors"
	"os"
)

var ErrLength = errors.New("mmap: length must be positive")

const (
	// RDONLY maps the memory read-only.
	RDONLY = 0
	// RDWR maps the memory as read-write.
	RDWR = 1 << iota
	// COPY maps the memory as copy-on-write.
	COPY
	// EXEC marks the mapped memory as executable.
	EXEC
)

const (
	// ANON maps memory not backed by a file.
	ANON = 1 << iota
)

// MMap is a mapped region. It is not scanned by the garbage collector, so it
// must never hold Go pointers.
type MMap []byte

// Anonymous maps length bytes of zeroed read-write memory.
func Anonymous(length int) (MMap, error) {
	if length < 1 {
		return nil, ErrLength
	}
	pageSize := os.Getpagesize()
	length = (length + pageSize - 1) &^ (pageSize - 1)
	b, err := mmap(length, RDWR, ANON, ^uintptr(0), 0)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Unmap releases the region. m must not be used afterwards.
func (m *MMap) Unmap() error {
	if len(*m) == 0 {
		return nil
	}
	err := m.unmap()
	*m = nil
	return err
}
