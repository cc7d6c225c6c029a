package core

import "fmt"

type cursorState uint8

const (
	cursorUnknown cursorState = iota // next element not computed yet
	cursorReady                      // next element computed and cached
	cursorDone                       // exhausted or failed, permanently
)

// Advancer computes the next candidate element of a fused stage. It returns
// ok=false when there is none, and a non-nil error when computing it failed.
type Advancer[T any] func() (value T, ok bool, err error)

// Fused is an Iterator for stages that have to look ahead before they can
// answer HasNext, such as filter or flatMap, where the upstream having an
// element says nothing about this stage having one.
//
// HasNext runs the Advancer at most once per element and caches the result
// until Next consumes it. Once the Advancer reports exhaustion or an error,
// the cursor is done for good and the Advancer is never called again.
type Fused[T any] struct {
	advance Advancer[T]
	state   cursorState
	next    T
	err     error
}

// Fuse creates a fused Iterator from an Advancer.
func Fuse[T any](advance Advancer[T]) *Fused[T] {
	return &Fused[T]{advance: advance}
}

// HasNext implements Iterator.
func (f *Fused[T]) HasNext() bool {
	if f.state != cursorUnknown {
		return f.state == cursorReady
	}

	value, ok, err := f.advance()
	switch {
	case err != nil:
		f.err = err
		f.state = cursorDone
	case !ok:
		f.state = cursorDone
	default:
		f.next = value
		f.state = cursorReady
	}
	if f.state == cursorDone {
		// drop the closure and with it every upstream reference
		f.advance = nil
	}
	return f.state == cursorReady
}

// Next implements Iterator.
func (f *Fused[T]) Next() T {
	if !f.HasNext() {
		panic(noSuchElement("fused"))
	}
	value := f.next
	var zero T
	f.next = zero
	f.state = cursorUnknown
	return value
}

// Err implements Iterator.
func (f *Fused[T]) Err() error {
	return f.err
}

// pull takes one element from it. When it is exhausted, ok is false and err
// carries the reason it stopped, if any.
func pull[T any](it Iterator[T]) (value T, ok bool, err error) {
	if it.HasNext() {
		return it.Next(), true, nil
	}
	return value, false, it.Err()
}

// drain materializes every remaining element of it.
func drain[T any](it Iterator[T]) ([]T, error) {
	var items []T
	for it.HasNext() {
		items = append(items, it.Next())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func noSuchElement(stage string) error {
	return fmt.Errorf("%w: Next called on exhausted %s iterator", ErrNoSuchElement, stage)
}

type emptyIterator[T any] struct{}

func (emptyIterator[T]) HasNext() bool { return false }
func (emptyIterator[T]) Next() T       { panic(noSuchElement("empty")) }
func (emptyIterator[T]) Err() error    { return nil }
