package core

// Of creates a Sequence over the given elements.
func Of[T any](items ...T) Sequence[T] {
	return FromSlice(items)
}

// FromSlice creates a Sequence reading items in order. The slice is not
// copied; it is read as the sequence is pulled.
func FromSlice[T any](items []T) Sequence[T] {
	return New[T](&sliceIterator[T]{items: items})
}

// Empty returns a Sequence with no elements.
func Empty[T any]() Sequence[T] {
	return Sequence[T]{}
}

// Fail returns a Sequence that has no elements and reports err as soon as it
// is pulled.
func Fail[T any](err error) Sequence[T] {
	return New[T](Fuse(func() (T, bool, error) {
		var zero T
		return zero, false, err
	}))
}

type sliceIterator[T any] struct {
	items []T
	index int
}

func (s *sliceIterator[T]) HasNext() bool {
	return s.index < len(s.items)
}

func (s *sliceIterator[T]) Next() T {
	if s.index >= len(s.items) {
		panic(noSuchElement("slice"))
	}
	value := s.items[s.index]
	s.index++
	return value
}

func (s *sliceIterator[T]) Err() error {
	return nil
}
