// Package transform provides element-reshaping operators: mapping stages,
// positional decoration, prefixes and suffixes, and replay.
package transform

import (
	"github.com/lguimbarda/min-seq/seq/core"
)

// Map creates a Stage applying fn to every element.
func Map[IN, OUT any](fn func(IN) (OUT, error)) core.Stage[IN, OUT] {
	return func(s core.Sequence[IN]) core.Sequence[OUT] {
		return core.Map(s, fn)
	}
}

// ConcatMap creates a Stage that projects each element to a sequence and
// yields the projected elements in order.
func ConcatMap[IN, OUT any](project func(IN) core.Sequence[OUT]) core.Stage[IN, OUT] {
	return func(s core.Sequence[IN]) core.Sequence[OUT] {
		return core.FlatMap(s, core.Fn(project))
	}
}

// FlatMapSlice creates a Stage that expands each element into the slice fn
// returns.
func FlatMapSlice[IN, OUT any](fn func(IN) ([]OUT, error)) core.Stage[IN, OUT] {
	return func(s core.Sequence[IN]) core.Sequence[OUT] {
		return core.FlatMap(s, func(v IN) (core.Sequence[OUT], error) {
			items, err := fn(v)
			if err != nil {
				return core.Sequence[OUT]{}, err
			}
			return core.FromSlice(items), nil
		})
	}
}

// Pairwise creates a Stage yielding each element together with its
// predecessor. The first element only opens the first pair, so n elements
// produce n-1 pairs.
func Pairwise[T any]() core.Stage[T, [2]T] {
	return func(s core.Sequence[T]) core.Sequence[[2]T] {
		up := s.Iterator()
		var prev T
		started := false
		return core.New[[2]T](core.Fuse(func() ([2]T, bool, error) {
			if !started {
				if !up.HasNext() {
					return [2]T{}, false, up.Err()
				}
				prev = up.Next()
				started = true
			}
			if !up.HasNext() {
				return [2]T{}, false, up.Err()
			}
			cur := up.Next()
			pair := [2]T{prev, cur}
			prev = cur
			return pair, true, nil
		}))
	}
}

// StartWith creates a Stage that yields values before the upstream elements.
func StartWith[T any](values ...T) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return concat(core.FromSlice(values), s)
	}
}

// EndWith creates a Stage that yields values after the upstream elements.
// Nothing is appended when the upstream fails.
func EndWith[T any](values ...T) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return concat(s, core.FromSlice(values))
	}
}

func concat[T any](first, second core.Sequence[T]) core.Sequence[T] {
	a, b := first.Iterator(), second.Iterator()
	return core.New[T](core.Fuse(func() (T, bool, error) {
		if a.HasNext() {
			return a.Next(), true, nil
		}
		if err := a.Err(); err != nil {
			var zero T
			return zero, false, err
		}
		if b.HasNext() {
			return b.Next(), true, nil
		}
		var zero T
		return zero, false, b.Err()
	}))
}

// DefaultIfEmpty creates a Stage that yields defaultValue when the upstream
// completes without elements.
func DefaultIfEmpty[T any](defaultValue T) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		up := s.Iterator()
		emitted := false
		return core.New[T](core.Fuse(func() (T, bool, error) {
			if up.HasNext() {
				emitted = true
				return up.Next(), true, nil
			}
			if err := up.Err(); err != nil || emitted {
				var zero T
				return zero, false, err
			}
			emitted = true
			return defaultValue, true, nil
		}))
	}
}

// Repeat creates a Stage that yields the upstream elements count times. The
// first pass is recorded so later passes replay it without pulling again.
func Repeat[T any](count int) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		if count <= 0 {
			return core.Empty[T]()
		}
		up := s.Iterator()
		var recorded []T
		pass, index := 0, 0
		return core.New[T](core.Fuse(func() (T, bool, error) {
			var zero T
			if pass == 0 {
				if up.HasNext() {
					v := up.Next()
					recorded = append(recorded, v)
					return v, true, nil
				}
				if err := up.Err(); err != nil {
					return zero, false, err
				}
				pass = 1
			}
			for pass < count && len(recorded) > 0 {
				if index < len(recorded) {
					v := recorded[index]
					index++
					return v, true, nil
				}
				pass++
				index = 0
			}
			return zero, false, nil
		}))
	}
}

// IgnoreElements creates a Stage that drains the upstream and yields
// nothing, surfacing only its error.
func IgnoreElements[T any]() core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.Filter(core.Pred(func(T) bool { return false }))
	}
}

// Distinct creates a Stage yielding the first occurrence of each element.
func Distinct[T comparable]() core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return core.DistinctOf(s)
	}
}

// DistinctBy creates a Stage yielding an element only if its key has not
// been seen before. Unlike Distinct it does not materialize: elements are
// yielded as they arrive.
func DistinctBy[T any, K comparable](keyFn func(T) K) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		seen := make(map[K]struct{})
		return s.Filter(core.Pred(func(v T) bool {
			key := keyFn(v)
			if _, dup := seen[key]; dup {
				return false
			}
			seen[key] = struct{}{}
			return true
		}))
	}
}

// Indexed pairs an element with its 0-based position.
type Indexed[T any] struct {
	Index int
	Value T
}

// WithIndex creates a Stage that wraps each element with its 0-based index.
func WithIndex[T any]() core.Stage[T, Indexed[T]] {
	return func(s core.Sequence[T]) core.Sequence[Indexed[T]] {
		index := 0
		return core.Map(s, func(v T) (Indexed[T], error) {
			item := Indexed[T]{Index: index, Value: v}
			index++
			return item, nil
		})
	}
}
