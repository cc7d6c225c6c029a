package filter

import (
	"github.com/lguimbarda/min-seq/seq/core"
)

// FindIndex returns the zero-based index of the first element matching the
// predicate, or -1. Pulling stops at the match.
func FindIndex[T any](s core.Sequence[T], predicate func(T) bool) (int, error) {
	it := s.Iterator()
	for i := 0; it.HasNext(); i++ {
		if predicate(it.Next()) {
			return i, nil
		}
	}
	return -1, it.Err()
}

// FindLast returns the last element matching the predicate. A nil predicate
// matches every element. The whole sequence is consumed.
func FindLast[T any](s core.Sequence[T], predicate func(T) bool) (core.Optional[T], error) {
	last := core.None[T]()
	it := s.Iterator()
	for it.HasNext() {
		if v := it.Next(); predicate == nil || predicate(v) {
			last = core.Some(v)
		}
	}
	if err := it.Err(); err != nil {
		return core.None[T](), err
	}
	return last, nil
}

// Contains reports whether value occurs in the sequence.
func Contains[T comparable](s core.Sequence[T], value T) (bool, error) {
	return s.AnyMatch(core.Pred(func(v T) bool { return v == value }))
}
