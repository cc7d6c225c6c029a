package aggregate

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/lguimbarda/min-seq/seq/core"
)

// Batch creates a Stage that collects elements into slices of the given
// size. The final batch may be shorter. A non-positive size fails with
// core.ErrInvalidArgument when pulled.
func Batch[T any](size int) core.Stage[T, []T] {
	return Window[T](size, size)
}

// Chunk is an alias for Batch.
func Chunk[T any](size int) core.Stage[T, []T] {
	return Batch[T](size)
}

// Window creates a Stage yielding sliding windows of size elements whose
// start advances by step. See core.SlidingWindow.
func Window[T any](size, step int) core.Stage[T, []T] {
	return func(s core.Sequence[T]) core.Sequence[[]T] {
		return core.SlidingWindow(s, size, step)
	}
}

// Partition splits the elements into those matching the predicate and
// those that do not, preserving order within each side.
func Partition[T any](s core.Sequence[T], predicate func(T) bool) (matched, rest []T, err error) {
	err = s.ForEach(func(v T) error {
		if predicate(v) {
			matched = append(matched, v)
		} else {
			rest = append(rest, v)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return matched, rest, nil
}

// GroupBy buckets the elements by key into an ordered map whose iteration
// follows the order in which keys were first seen.
func GroupBy[T any, K comparable](s core.Sequence[T], keyFn func(T) K) (*orderedmap.OrderedMap[K, []T], error) {
	newGroups := func() *orderedmap.OrderedMap[K, []T] {
		return orderedmap.New[K, []T]()
	}
	return core.CollectWith(s, core.Supply(newGroups), func(groups *orderedmap.OrderedMap[K, []T], v T) error {
		key := keyFn(v)
		bucket, _ := groups.Get(key)
		groups.Set(key, append(bucket, v))
		return nil
	})
}
