package core

import "errors"

// Usage errors.
var (
	// ErrNoSuchElement is the panic value (wrapped) when Next is called on an
	// exhausted iterator, and the error of Optional.OrError on an absent value.
	ErrNoSuchElement = errors.New("no such element")

	// ErrInvalidArgument reports an operation configured with arguments it
	// cannot work with, such as a non-positive window size.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrCapacity is returned when a sequence is materialized into a container
// that cannot hold it. The check happens before the container is allocated.
var ErrCapacity = errors.New("sequence size exceeds max array size")

// Type and ordering errors. They surface when the operation that needs the
// property runs, never when the pipeline is built.
var (
	ErrNotOrdered      = errors.New("elements have no natural ordering")
	ErrNotComparable   = errors.New("elements are not comparable")
	ErrCollectorFinish = errors.New("collector container is not the result type")
)
