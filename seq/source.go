package seq

import (
	"fmt"
	"maps"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/constraints"

	"github.com/lguimbarda/min-seq/seq/core"
)

// FromSlice creates a Sequence that yields each element of the slice in order.
// The slice is read lazily, not copied.
func FromSlice[T any](items []T) Sequence[T] {
	return core.FromSlice(items)
}

// Of creates a Sequence over its arguments.
func Of[T any](items ...T) Sequence[T] {
	return core.Of(items...)
}

// FromArgs is Of under the name used for variadic construction.
func FromArgs[T any](args ...T) Sequence[T] {
	return core.Of(args...)
}

// FromIterator wraps an existing Iterator.
func FromIterator[T any](it Iterator[T]) Sequence[T] {
	return core.New(it)
}

// FromMap creates a Sequence of the map's entries. Keys are snapshotted on
// the first pull and follow Go's map iteration order; use FromOrderedMap for
// a deterministic order.
func FromMap[K comparable, V any](m map[K]V) Sequence[Pair[K, V]] {
	var keys []K
	index := -1
	return core.New[Pair[K, V]](core.Fuse(func() (Pair[K, V], bool, error) {
		if index < 0 {
			keys = slices.Collect(maps.Keys(m))
			index = 0
		}
		for index < len(keys) {
			key := keys[index]
			index++
			if value, ok := m[key]; ok {
				return core.PairOf(key, value), true, nil
			}
		}
		return Pair[K, V]{}, false, nil
	}))
}

// FromOrderedMap creates a Sequence of the map's entries in insertion order.
func FromOrderedMap[K comparable, V any](m *orderedmap.OrderedMap[K, V]) Sequence[Pair[K, V]] {
	var cursor *orderedmap.Pair[K, V]
	started := false
	return core.New[Pair[K, V]](core.Fuse(func() (Pair[K, V], bool, error) {
		if !started {
			started = true
			cursor = m.Oldest()
		} else if cursor != nil {
			cursor = cursor.Next()
		}
		if cursor == nil {
			return Pair[K, V]{}, false, nil
		}
		return core.PairOf(cursor.Key, cursor.Value), true, nil
	}))
}

// Empty returns a Sequence with no elements.
func Empty[T any]() Sequence[T] {
	return core.Empty[T]()
}

// FromError returns a Sequence that fails with err when pulled.
func FromError[T any](err error) Sequence[T] {
	return core.Fail[T](err)
}

// Once returns a Sequence with a single element.
func Once[T any](value T) Sequence[T] {
	return core.Of(value)
}

// Repeat yields value n times. Use a negative n for an infinite sequence.
func Repeat[T any](value T, n int) Sequence[T] {
	emitted := 0
	return core.New[T](core.Fuse(func() (T, bool, error) {
		if n >= 0 && emitted >= n {
			var zero T
			return zero, false, nil
		}
		emitted++
		return value, true, nil
	}))
}

// Range yields the integers from start (inclusive) to end (exclusive). It is
// empty when start >= end.
func Range[N constraints.Integer](start, end N) Sequence[N] {
	if start >= end {
		return Empty[N]()
	}
	return core.New[N](&rangeIterator[N]{next: start, last: end - 1})
}

// RangeClosed yields the integers from start to end, both inclusive. It is
// empty when start > end, and reaching the maximum value of N does not
// overflow.
func RangeClosed[N constraints.Integer](start, end N) Sequence[N] {
	if start > end {
		return Empty[N]()
	}
	return core.New[N](&rangeIterator[N]{next: start, last: end})
}

type rangeIterator[N constraints.Integer] struct {
	next N
	last N
	done bool
}

func (r *rangeIterator[N]) HasNext() bool {
	return !r.done
}

func (r *rangeIterator[N]) Next() N {
	if r.done {
		panic(fmt.Errorf("%w: range exhausted", core.ErrNoSuchElement))
	}
	value := r.next
	if value == r.last {
		r.done = true
	} else {
		r.next++
	}
	return value
}

func (r *rangeIterator[N]) Err() error {
	return nil
}

// Generate yields whatever supplier produces, indefinitely. The supplier runs
// once per pulled element; an error ends the sequence.
func Generate[T any](supplier Supplier[T]) Sequence[T] {
	return core.New[T](core.Fuse(func() (T, bool, error) {
		value, err := supplier()
		if err != nil {
			var zero T
			return zero, false, err
		}
		return value, true, nil
	}))
}

// Iterate yields seed, next(seed), next(next(seed)), ... indefinitely. Each
// successor is computed only when it is pulled.
func Iterate[T any](seed T, next Function[T, T]) Sequence[T] {
	return IterateWhile(seed, func(T) (bool, error) { return true, nil }, next)
}

// IterateWhile is Iterate bounded by hasNext: the sequence ends at the first
// value for which hasNext reports false, seed included.
func IterateWhile[T any](seed T, hasNext Predicate[T], next Function[T, T]) Sequence[T] {
	current := seed
	started := false
	return core.New[T](core.Fuse(func() (T, bool, error) {
		var zero T
		if started {
			successor, err := next(current)
			if err != nil {
				return zero, false, err
			}
			current = successor
		}
		started = true
		ok, err := hasNext(current)
		if err != nil || !ok {
			return zero, false, err
		}
		return current, true, nil
	}))
}

// Unfold creates a Sequence by unfolding a seed state. fn returns the value
// to yield, the next state, and whether to continue.
func Unfold[T, S any](seed S, fn func(S) (T, S, bool, error)) Sequence[T] {
	state := seed
	return core.New[T](core.Fuse(func() (T, bool, error) {
		value, next, ok, err := fn(state)
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		state = next
		return value, true, nil
	}))
}

// Defer builds the sequence with factory on its first pull.
func Defer[T any](factory func() Sequence[T]) Sequence[T] {
	var it Iterator[T]
	return core.New[T](core.Fuse(func() (T, bool, error) {
		if it == nil {
			it = factory().Iterator()
		}
		if it.HasNext() {
			return it.Next(), true, nil
		}
		var zero T
		return zero, false, it.Err()
	}))
}

// Concat yields all elements of each sequence in turn. A later sequence is
// not pulled until the earlier ones are exhausted, and an error in any of
// them ends the result.
func Concat[T any](sequences ...Sequence[T]) Sequence[T] {
	iterators := make([]Iterator[T], len(sequences))
	for i, s := range sequences {
		iterators[i] = s.Iterator()
	}
	return core.New[T](core.Fuse(func() (T, bool, error) {
		var zero T
		for len(iterators) > 0 {
			it := iterators[0]
			if it.HasNext() {
				return it.Next(), true, nil
			}
			if err := it.Err(); err != nil {
				return zero, false, err
			}
			iterators = iterators[1:]
		}
		return zero, false, nil
	}))
}

// Zip pairs the elements of a and b with combiner, ending as soon as either
// side is exhausted. When a runs out first, b is not pulled.
func Zip[A, B, R any](a Sequence[A], b Sequence[B], combiner BiFunction[A, B, R]) Sequence[R] {
	left, right := a.Iterator(), b.Iterator()
	return core.New[R](core.Fuse(func() (R, bool, error) {
		var zero R
		if !left.HasNext() {
			return zero, false, left.Err()
		}
		if !right.HasNext() {
			return zero, false, right.Err()
		}
		combined, err := combiner(left.Next(), right.Next())
		if err != nil {
			return zero, false, err
		}
		return combined, true, nil
	}))
}
