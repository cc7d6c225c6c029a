package core

import (
	"cmp"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// materialized returns a stage that builds its whole working set from up on
// its first pull and then replays it. Nothing is allocated or pulled unless
// the stage itself is pulled.
func materialized[T, R any](up Iterator[T], build func(Iterator[T]) ([]R, error)) Sequence[R] {
	var (
		items []R
		built bool
		index int
	)
	return New[R](Fuse(func() (R, bool, error) {
		var zero R
		if !built {
			built = true
			var err error
			if items, err = build(up); err != nil {
				return zero, false, err
			}
		}
		if index >= len(items) {
			items = nil
			return zero, false, nil
		}
		value := items[index]
		items[index] = zero
		index++
		return value, true, nil
	}))
}

// Sorted sorts the elements by their natural ordering (see Ordered). The
// sort is stable. Element types without a natural ordering fail with
// ErrNotOrdered when the stage is pulled.
func (s Sequence[T]) Sorted() Sequence[T] {
	return s.SortedFunc(NaturalOrder[T]())
}

// SortedFunc sorts the elements with c. The sort is stable, and the first
// comparator error aborts the traversal.
func (s Sequence[T]) SortedFunc(c Comparator[T]) Sequence[T] {
	return materialized(s.Iterator(), func(up Iterator[T]) ([]T, error) {
		items, err := drain(up)
		if err != nil {
			return nil, err
		}
		if err := sortStable(items, c); err != nil {
			return nil, err
		}
		return items, nil
	})
}

// SortBy sorts the elements by the key extracted from each of them. The key
// function runs once per element and the sort is stable.
func SortBy[T any, K cmp.Ordered](s Sequence[T], key Function[T, K]) Sequence[T] {
	type keyed struct {
		key   K
		value T
	}
	return materialized(s.Iterator(), func(up Iterator[T]) ([]T, error) {
		var entries []keyed
		for up.HasNext() {
			value := up.Next()
			k, err := key(value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, keyed{key: k, value: value})
		}
		if err := up.Err(); err != nil {
			return nil, err
		}

		slices.SortStableFunc(entries, func(a, b keyed) int {
			return cmp.Compare(a.key, b.key)
		})
		items := make([]T, len(entries))
		for i, e := range entries {
			items[i] = e.value
		}
		return items, nil
	})
}

// Distinct removes duplicates, keeping the first occurrence of each element
// in encounter order. Elements whose dynamic type cannot be compared fail
// with ErrNotComparable; use DistinctOf when T is statically comparable.
func (s Sequence[T]) Distinct() Sequence[T] {
	return materialized(s.Iterator(), func(up Iterator[T]) ([]T, error) {
		seen := orderedmap.New[any, T]()
		for up.HasNext() {
			value := up.Next()
			if err := checkComparable(value); err != nil {
				return nil, err
			}
			if _, present := seen.Get(value); !present {
				seen.Set(value, value)
			}
		}
		if err := up.Err(); err != nil {
			return nil, err
		}

		items := make([]T, 0, seen.Len())
		for pair := seen.Oldest(); pair != nil; pair = pair.Next() {
			items = append(items, pair.Value)
		}
		return items, nil
	})
}

// DistinctOf is Distinct for statically comparable element types.
func DistinctOf[T comparable](s Sequence[T]) Sequence[T] {
	return materialized(s.Iterator(), func(up Iterator[T]) ([]T, error) {
		seen := orderedmap.New[T, struct{}]()
		for up.HasNext() {
			value := up.Next()
			if _, present := seen.Get(value); !present {
				seen.Set(value, struct{}{})
			}
		}
		if err := up.Err(); err != nil {
			return nil, err
		}

		items := make([]T, 0, seen.Len())
		for pair := seen.Oldest(); pair != nil; pair = pair.Next() {
			items = append(items, pair.Key)
		}
		return items, nil
	})
}

// GroupBy buckets the elements by classifier key. The whole upstream is
// consumed on the first pull; groups are then yielded in the order their key
// was first seen, each holding its elements in encounter order.
func GroupBy[T any, K comparable](s Sequence[T], classifier Function[T, K]) Sequence[Pair[K, []T]] {
	return materialized(s.Iterator(), func(up Iterator[T]) ([]Pair[K, []T], error) {
		buckets := orderedmap.New[K, []T]()
		for up.HasNext() {
			value := up.Next()
			key, err := classifier(value)
			if err != nil {
				return nil, err
			}
			bucket, _ := buckets.Get(key)
			buckets.Set(key, append(bucket, value))
		}
		if err := up.Err(); err != nil {
			return nil, err
		}

		groups := make([]Pair[K, []T], 0, buckets.Len())
		for pair := buckets.Oldest(); pair != nil; pair = pair.Next() {
			groups = append(groups, PairOf(pair.Key, pair.Value))
		}
		return groups, nil
	})
}
