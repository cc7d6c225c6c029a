// Package aggregate provides reductions over whole sequences (sums, averages,
// extremes, counts by key) and the running and batching stages that build
// partial aggregates as elements flow.
package aggregate

import (
	"golang.org/x/exp/constraints"

	"github.com/lguimbarda/min-seq/seq/core"
)

// Numeric is a constraint for numeric types that support arithmetic operations.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Sum adds up the elements. An empty sequence sums to zero.
func Sum[T Numeric](s core.Sequence[T]) (T, error) {
	return s.Fold(0, func(acc, v T) (T, error) {
		return acc + v, nil
	})
}

// Average returns the arithmetic mean of the elements, or None for an empty
// sequence.
func Average[T Numeric](s core.Sequence[T]) (core.Optional[float64], error) {
	type running struct {
		sum   float64
		count int64
	}
	total, err := core.Accumulate(s, running{}, func(acc running, v T) (running, error) {
		return running{sum: acc.sum + float64(v), count: acc.count + 1}, nil
	})
	if err != nil || total.count == 0 {
		return core.None[float64](), err
	}
	return core.Some(total.sum / float64(total.count)), nil
}

// Min returns the smallest element, or None for an empty sequence.
func Min[T constraints.Ordered](s core.Sequence[T]) (core.Optional[T], error) {
	return s.Min(core.Order(compareOrdered[T]))
}

// Max returns the largest element, or None for an empty sequence.
func Max[T constraints.Ordered](s core.Sequence[T]) (core.Optional[T], error) {
	return s.Max(core.Order(compareOrdered[T]))
}

// MinMax returns both extremes in a single pass.
func MinMax[T constraints.Ordered](s core.Sequence[T]) (lo, hi core.Optional[T], err error) {
	err = s.ForEach(func(v T) error {
		if cur, ok := lo.Get(); !ok || v < cur {
			lo = core.Some(v)
		}
		if cur, ok := hi.Get(); !ok || v > cur {
			hi = core.Some(v)
		}
		return nil
	})
	if err != nil {
		return core.None[T](), core.None[T](), err
	}
	return lo, hi, nil
}

func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// CountBy counts the elements per key.
func CountBy[T any, K comparable](s core.Sequence[T], keyFn func(T) K) (map[K]int, error) {
	return core.CollectWith(s, core.Supply(func() map[K]int { return map[K]int{} }),
		func(counts map[K]int, v T) error {
			counts[keyFn(v)]++
			return nil
		})
}

// Scan creates a Stage that yields every intermediate accumulation, starting
// with scanner(initial, first).
func Scan[T, R any](initial R, scanner func(acc R, item T) R) core.Stage[T, R] {
	return func(s core.Sequence[T]) core.Sequence[R] {
		acc := initial
		return core.Map(s, func(v T) (R, error) {
			acc = scanner(acc, v)
			return acc, nil
		})
	}
}

// RunningTotal creates a Stage yielding the prefix sums of the elements.
func RunningTotal[T Numeric]() core.Stage[T, T] {
	return Scan(T(0), func(acc, v T) T { return acc + v })
}
