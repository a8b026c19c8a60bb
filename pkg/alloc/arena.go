package alloc

import (
	"os"
	"unsafe"

	logger "github.com/moontrade/log"

	"github.com/moontrade/smartptr/config"
	"github.com/moontrade/smartptr/pkg/mmap"
	"github.com/moontrade/smartptr/pkg/pmath"
)

// Arena carves power of 2 size classes out of one anonymous mapping. Freed
// slots go onto a per-class free list linked through the slots themselves and
// are reused before the bump offset advances. Arena is not safe for
// concurrent use.
type Arena struct {
	Stats
	region   mmap.MMap
	base     uintptr
	offset   uintptr
	free     []uintptr
	minClass int
	pageSize uintptr
	live     int
}

// NewArena maps size bytes. A size below 1 uses config.ArenaSize.
func NewArena(size int) (*Arena, error) {
	if size < 1 {
		size = config.ArenaSize
	}
	region, err := mmap.Anonymous(size)
	if err != nil {
		return nil, err
	}
	minClass := config.ArenaMinClass
	if minClass < 8 || !pmath.IsPowerOf2(minClass) {
		minClass = 16
	}
	return &Arena{
		region:   region,
		base:     uintptr(unsafe.Pointer(&region[0])),
		free:     make([]uintptr, pmath.PowerOf2Index(len(region))+1),
		minClass: minClass,
		pageSize: uintptr(os.Getpagesize()),
	}, nil
}

func (a *Arena) class(l Layout) int {
	size := int(l.allocSize())
	if int(l.Align) > size {
		size = int(l.Align)
	}
	if size < a.minClass {
		size = a.minClass
	}
	return pmath.CeilToPowerOf2(size)
}

func (a *Arena) Allocate(l Layout) (unsafe.Pointer, error) {
	if a.region == nil {
		return nil, ErrClosed
	}
	if err := checkOffHeap(l); err != nil {
		return nil, err
	}
	class := a.class(l)
	idx := pmath.PowerOf2Index(class)
	if idx >= len(a.free) {
		return nil, ErrOutOfMemory
	}
	if head := a.free[idx]; head != 0 {
		p := unsafe.Pointer(head)
		a.free[idx] = *(*uintptr)(p)
		a.live++
		a.Allocs.Incr()
		a.Bytes.Add(int64(class))
		return p, nil
	}
	align := uintptr(class)
	if align > a.pageSize {
		align = a.pageSize
	}
	start := pmath.AlignUp(a.offset, align)
	if start+uintptr(class) > uintptr(len(a.region)) {
		return nil, ErrOutOfMemory
	}
	a.offset = start + uintptr(class)
	a.live++
	a.Allocs.Incr()
	a.Bytes.Add(int64(class))
	return unsafe.Pointer(&a.region[start]), nil
}

func (a *Arena) Deallocate(p unsafe.Pointer, l Layout) {
	if p == nil || a.region == nil {
		return
	}
	addr := uintptr(p)
	if addr < a.base || addr >= a.base+uintptr(len(a.region)) {
		panic("alloc: arena free of foreign pointer")
	}
	class := a.class(l)
	poison(p, uintptr(class))
	idx := pmath.PowerOf2Index(class)
	*(*uintptr)(p) = a.free[idx]
	a.free[idx] = addr
	a.live--
	a.Deallocs.Incr()
	a.Bytes.Sub(int64(class))
}

// Live is the number of allocations not yet returned.
func (a *Arena) Live() int { return a.live }

// Used is the high water mark of the bump offset in bytes.
func (a *Arena) Used() int { return int(a.offset) }

func (a *Arena) Cap() int { return len(a.region) }

// Close unmaps the arena. Memory still held by callers becomes invalid.
func (a *Arena) Close() error {
	if a.region == nil {
		return nil
	}
	if a.live > 0 {
		logger.Warn("arena closed with %d live allocations", a.live)
	}
	a.free = nil
	a.live = 0
	return a.region.Unmap()
}
