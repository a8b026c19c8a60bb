package rc

import "errors"

var (
	// ErrAllocation indicates the control block storage could not be allocated.
	ErrAllocation = errors.New("rc: allocation failed")

	// ErrConstruction indicates the managed object's initializer failed.
	ErrConstruction = errors.New("rc: construction failed")

	ErrNilPointer = errors.New("rc: nil pointer")
)
