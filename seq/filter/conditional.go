package filter

import (
	"errors"
	"fmt"

	"github.com/lguimbarda/min-seq/seq/core"
)

// Common errors for conditional operators
var (
	ErrNoMatch       = errors.New("no element matches")
	ErrMultipleMatch = errors.New("more than one element matches")
)

// TakeWhileWithIndex creates a Stage that yields elements while the
// predicate, given the element and its zero-based index, holds.
func TakeWhileWithIndex[T any](predicate func(T, int) bool) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		index := 0
		return s.TakeWhile(func(v T) (bool, error) {
			ok := predicate(v, index)
			index++
			return ok, nil
		})
	}
}

// SkipWhileWithIndex creates a Stage that skips elements while the
// predicate, given the element and its zero-based index, holds.
func SkipWhileWithIndex[T any](predicate func(T, int) bool) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		index := 0
		return s.DropWhile(func(v T) (bool, error) {
			ok := predicate(v, index)
			index++
			return ok, nil
		})
	}
}

// TakeUntil creates a Stage that yields elements up to and including the
// first one matching the predicate.
func TakeUntil[T any](predicate func(T) bool) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		up := s.Iterator()
		stop := false
		return core.New[T](core.Fuse(func() (T, bool, error) {
			var zero T
			if stop || !up.HasNext() {
				return zero, false, up.Err()
			}
			v := up.Next()
			stop = predicate(v)
			return v, true, nil
		}))
	}
}

// ElementAt returns the element at the zero-based index, or None when the
// sequence is shorter. Elements after index are not pulled.
func ElementAt[T any](s core.Sequence[T], index int) (core.Optional[T], error) {
	if index < 0 {
		return core.None[T](), fmt.Errorf("%w: negative index %d", core.ErrInvalidArgument, index)
	}
	return s.Skip(index).FindFirst()
}

// ElementAtOrDefault is ElementAt falling back to defaultValue.
func ElementAtOrDefault[T any](s core.Sequence[T], index int, defaultValue T) (T, error) {
	found, err := ElementAt(s, index)
	if err != nil {
		return defaultValue, err
	}
	return found.OrElse(defaultValue), nil
}

// Single returns the only element matching the predicate. A nil predicate
// matches every element. It fails with ErrNoMatch or ErrMultipleMatch, and
// stops pulling as soon as a second match is seen.
func Single[T any](s core.Sequence[T], predicate func(T) bool) (T, error) {
	var (
		found T
		seen  bool
	)
	it := s.Iterator()
	for it.HasNext() {
		v := it.Next()
		if predicate != nil && !predicate(v) {
			continue
		}
		if seen {
			var zero T
			return zero, ErrMultipleMatch
		}
		found, seen = v, true
	}
	if err := it.Err(); err != nil {
		var zero T
		return zero, err
	}
	if !seen {
		return found, ErrNoMatch
	}
	return found, nil
}

// FirstOrDefault returns the first element matching the predicate, or
// defaultValue. A nil predicate matches every element.
func FirstOrDefault[T any](s core.Sequence[T], predicate func(T) bool, defaultValue T) (T, error) {
	if predicate != nil {
		s = s.Filter(core.Pred(predicate))
	}
	found, err := s.FindFirst()
	if err != nil {
		return defaultValue, err
	}
	return found.OrElse(defaultValue), nil
}

// LastOrDefault returns the last element matching the predicate, or
// defaultValue. A nil predicate matches every element.
func LastOrDefault[T any](s core.Sequence[T], predicate func(T) bool, defaultValue T) (T, error) {
	last, err := FindLast(s, predicate)
	if err != nil {
		return defaultValue, err
	}
	return last.OrElse(defaultValue), nil
}
