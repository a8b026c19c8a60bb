package rc

import (
	"fmt"
	"reflect"
	"unsafe"

	logger "github.com/moontrade/log"

	"github.com/moontrade/smartptr/pkg/util"
)

// Counts are the two reference counters of a control block. They live in the
// block's own storage, so they stay valid after the managed object has been
// destroyed and until the block is deallocated.
type Counts struct {
	Shared uint64
	Weak   uint64
}

func (c *Counts) decShared() uint64 {
	if c.Shared == 0 {
		panic("rc: shared count underflow")
	}
	c.Shared--
	return c.Shared
}

func (c *Counts) decWeak() uint64 {
	if c.Weak == 0 {
		panic("rc: weak count underflow")
	}
	c.Weak--
	return c.Weak
}

// ControlBlock hides how a managed object was allocated and how it is torn
// down. Handles only ever go through this interface.
type ControlBlock interface {
	// Counts returns the block's counters.
	Counts() *Counts
	// Pointer returns the managed object. Only valid before Destroy.
	Pointer() unsafe.Pointer
	// Destroy tears down the managed object. Called once, when the shared
	// count reaches zero.
	Destroy()
	// Deallocate releases the block's storage. Called once, when both counts
	// are zero and after Destroy.
	Deallocate()
}

// releaseShared drops one shared reference.
func releaseShared(cb ControlBlock) {
	c := cb.Counts()
	if c.decShared() > 0 {
		return
	}
	// The owners keep one weak reference for the duration of Destroy so a weak
	// handle released by the object's own teardown can't free the block
	// underneath us.
	c.Weak++
	destroy(cb)
	releaseWeak(cb)
}

// releaseWeak drops one weak reference.
func releaseWeak(cb ControlBlock) {
	c := cb.Counts()
	if c.decWeak() > 0 || c.Shared > 0 {
		return
	}
	cb.Deallocate()
}

func destroy(cb ControlBlock) {
	defer func() {
		if e := recover(); e != nil {
			logger.Error(util.PanicToError(e), "rc: managed object teardown panic")
		}
	}()
	cb.Destroy()
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func allocationError(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrAllocation, what, err)
}
