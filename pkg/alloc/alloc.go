// Package alloc provides the storage strategies used by reference-counted
// handles: the Go heap, malloc'd off-heap memory, pooled byte slabs, arrow
// allocators and mmap backed arenas.
//
// Allocators are untyped. A Layout describes the type being placed so one
// allocator value can serve any type, which is how a caller "rebinds" an
// allocator to its own record type. Allocators whose memory is invisible to
// the garbage collector refuse layouts containing Go pointers.
package alloc

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/moontrade/smartptr/config"
)

// Allocator is the storage role: it hands out and takes back memory.
type Allocator interface {
	Allocate(l Layout) (unsafe.Pointer, error)
	Deallocate(p unsafe.Pointer, l Layout)
}

// ObjectAllocator adds the object-construction role on top of storage.
// Construct prepares an allocated slot for a new value and Destroy tears the
// value down in place without releasing its storage. A slot whose value
// fails to initialize after Construct is deallocated without Destroy.
type ObjectAllocator interface {
	Allocator
	Construct(p unsafe.Pointer, l Layout)
	Destroy(p unsafe.Pointer, l Layout)
}

// Destroyer is implemented by values that need teardown before their storage
// goes away.
type Destroyer interface {
	Destroy()
}

// Layout describes a block of memory.
type Layout struct {
	// Type is nil for raw byte layouts.
	Type     reflect.Type
	Size     uintptr
	Align    uintptr
	Pointers bool
}

func LayoutOf[T any]() Layout {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return Layout{
		Type:     t,
		Size:     t.Size(),
		Align:    uintptr(t.Align()),
		Pointers: hasPointers(t),
	}
}

// Bytes is a raw layout of size bytes.
func Bytes(size, align uintptr) Layout {
	if align == 0 {
		align = 1
	}
	return Layout{Size: size, Align: align}
}

func (l Layout) String() string {
	if l.Type != nil {
		return fmt.Sprintf("%s(size=%d align=%d)", l.Type, l.Size, l.Align)
	}
	return fmt.Sprintf("bytes(size=%d align=%d)", l.Size, l.Align)
}

// allocSize never returns 0 so zero sized values still get a distinct address.
func (l Layout) allocSize() uintptr {
	if l.Size == 0 {
		return 1
	}
	return l.Size
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// checkOffHeap rejects layouts the garbage collector would need to see.
func checkOffHeap(l Layout) error {
	if l.Pointers {
		return fmt.Errorf("%w: %s", ErrPointerLayout, l)
	}
	return nil
}

func aligned(p unsafe.Pointer, align uintptr) bool {
	return align < 2 || uintptr(p)&(align-1) == 0
}

func poison(p unsafe.Pointer, size uintptr) {
	if !config.PoisonOnFree || p == nil {
		return
	}
	b := unsafe.Slice((*byte)(p), size)
	for i := range b {
		b[i] = config.PoisonByte
	}
}

func zero(p unsafe.Pointer, l Layout) {
	if l.Type != nil && l.Pointers {
		reflect.NewAt(l.Type, p).Elem().SetZero()
		return
	}
	b := unsafe.Slice((*byte)(p), l.Size)
	for i := range b {
		b[i] = 0
	}
}

// New allocates a zeroed T from a.
func New[T any](a Allocator) (*T, error) {
	l := LayoutOf[T]()
	p, err := a.Allocate(l)
	if err != nil {
		return nil, err
	}
	zero(p, l)
	return (*T)(p), nil
}

// Free returns p to a. It does not run Destroy.
func Free[T any](a Allocator, p *T) {
	if p == nil {
		return
	}
	a.Deallocate(unsafe.Pointer(p), LayoutOf[T]())
}

// Objects returns a with the object-construction role. If a already
// implements ObjectAllocator it is returned unchanged.
func Objects(a Allocator) ObjectAllocator {
	if oa, ok := a.(ObjectAllocator); ok {
		return oa
	}
	return objects{a}
}

type objects struct {
	Allocator
}

func (objects) Construct(p unsafe.Pointer, l Layout) {
	zero(p, l)
}

func (objects) Destroy(p unsafe.Pointer, l Layout) {
	defer zero(p, l)
	if l.Type == nil {
		return
	}
	if d, ok := reflect.NewAt(l.Type, p).Interface().(Destroyer); ok {
		d.Destroy()
	}
}
