package util

import (
	"errors"
	"fmt"
)

// PanicToError converts a recovered panic value into an error. Errors are
// returned as is so callers can still match them with errors.Is.
func PanicToError(e any) (err error) {
	switch v := e.(type) {
	case nil:
		err = errors.New("panic: nil")
	case error:
		err = v
	case string:
		err = errors.New(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		err = fmt.Errorf("panic code: %d", v)
	case uintptr:
		err = fmt.Errorf("panic uintptr: %d", v)
	case float32, float64:
		err = fmt.Errorf("panic code: %f", v)
	case fmt.Stringer:
		err = errors.New(v.String())
	default:
		err = fmt.Errorf("panic: %v", v)
	}
	return
}

// Try runs fn and converts a panic into an error.
func Try(fn func() error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = PanicToError(e)
		}
	}()
	return fn()
}
