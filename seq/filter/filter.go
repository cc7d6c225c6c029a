// Package filter provides operators that decide which elements of a sequence
// reach the downstream: predicates, positional selection, and de-duplication
// of runs.
package filter

import (
	"github.com/lguimbarda/min-seq/seq/core"
)

// Where creates a Stage that only passes through elements matching the predicate.
func Where[T any](predicate func(T) bool) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.Filter(core.Pred(predicate))
	}
}

// Exclude creates a Stage that drops elements matching the predicate.
// This is the inverse of Where.
func Exclude[T any](predicate func(T) bool) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.FilterNot(core.Pred(predicate))
	}
}

// MapWhere filters and maps in a single pass. fn returns (value, true) to
// keep the mapped value, or (_, false) to drop the element.
func MapWhere[IN, OUT any](fn func(IN) (OUT, bool)) core.Stage[IN, OUT] {
	return func(s core.Sequence[IN]) core.Sequence[OUT] {
		up := s.Iterator()
		return core.New[OUT](core.Fuse(func() (OUT, bool, error) {
			for up.HasNext() {
				if out, ok := fn(up.Next()); ok {
					return out, true, nil
				}
			}
			var zero OUT
			return zero, false, up.Err()
		}))
	}
}
