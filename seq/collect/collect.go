// Package collect provides ready-made Collectors for seq.Collect.
//
// Containers are pointers or maps so the accumulator can mutate them in
// place; the Finisher unwraps them into the result type.
//
//	byDept, err := seq.Collect(people, collect.GroupingBy(func(p Person) string { return p.Dept }))
package collect

import (
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/constraints"

	"github.com/lguimbarda/min-seq/seq/core"
)

// ErrDuplicateKey is returned by ToMap when two elements map to the same key.
var ErrDuplicateKey = errors.New("duplicate key")

// ToSlice collects elements into a slice in encounter order.
func ToSlice[T any]() core.Collector[T, *[]T, []T] {
	return core.Collector[T, *[]T, []T]{
		Supplier: func() (*[]T, error) { return new([]T), nil },
		Accumulator: func(acc *[]T, v T) error {
			*acc = append(*acc, v)
			return nil
		},
		Finisher: func(acc *[]T) ([]T, error) { return *acc, nil },
	}
}

// ToSet collects the distinct elements into a set.
func ToSet[T comparable]() core.Collector[T, map[T]struct{}, map[T]struct{}] {
	return core.Collector[T, map[T]struct{}, map[T]struct{}]{
		Supplier: func() (map[T]struct{}, error) { return make(map[T]struct{}), nil },
		Accumulator: func(acc map[T]struct{}, v T) error {
			acc[v] = struct{}{}
			return nil
		},
	}
}

// ToMap collects elements into a map keyed by keyFn. A repeated key fails
// with ErrDuplicateKey; use ToMapMerge to combine values instead.
func ToMap[T any, K comparable, V any](keyFn func(T) K, valueFn func(T) V) core.Collector[T, map[K]V, map[K]V] {
	return core.Collector[T, map[K]V, map[K]V]{
		Supplier: func() (map[K]V, error) { return make(map[K]V), nil },
		Accumulator: func(acc map[K]V, v T) error {
			key := keyFn(v)
			if _, dup := acc[key]; dup {
				return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
			}
			acc[key] = valueFn(v)
			return nil
		},
	}
}

// ToMapMerge collects elements into a map keyed by keyFn, combining the
// values of a repeated key with merge.
func ToMapMerge[T any, K comparable, V any](keyFn func(T) K, valueFn func(T) V, merge func(V, V) V) core.Collector[T, map[K]V, map[K]V] {
	return core.Collector[T, map[K]V, map[K]V]{
		Supplier: func() (map[K]V, error) { return make(map[K]V), nil },
		Accumulator: func(acc map[K]V, v T) error {
			key, value := keyFn(v), valueFn(v)
			if prev, ok := acc[key]; ok {
				value = merge(prev, value)
			}
			acc[key] = value
			return nil
		},
	}
}

// GroupingBy groups elements by classifier. Keys iterate in the order they
// were first seen.
func GroupingBy[T any, K comparable](classifier func(T) K) core.Collector[T, *orderedmap.OrderedMap[K, []T], *orderedmap.OrderedMap[K, []T]] {
	return core.Collector[T, *orderedmap.OrderedMap[K, []T], *orderedmap.OrderedMap[K, []T]]{
		Supplier: func() (*orderedmap.OrderedMap[K, []T], error) {
			return orderedmap.New[K, []T](), nil
		},
		Accumulator: func(acc *orderedmap.OrderedMap[K, []T], v T) error {
			key := classifier(v)
			group, _ := acc.Get(key)
			acc.Set(key, append(group, v))
			return nil
		},
	}
}

// PartitioningBy splits elements by predicate. Both keys are always
// present in the result.
func PartitioningBy[T any](predicate func(T) bool) core.Collector[T, map[bool][]T, map[bool][]T] {
	return core.Collector[T, map[bool][]T, map[bool][]T]{
		Supplier: func() (map[bool][]T, error) {
			return map[bool][]T{true: {}, false: {}}, nil
		},
		Accumulator: func(acc map[bool][]T, v T) error {
			key := predicate(v)
			acc[key] = append(acc[key], v)
			return nil
		},
	}
}

// Counting counts elements.
func Counting[T any]() core.Collector[T, *int64, int64] {
	return core.Collector[T, *int64, int64]{
		Supplier: func() (*int64, error) { return new(int64), nil },
		Accumulator: func(acc *int64, _ T) error {
			*acc++
			return nil
		},
		Finisher: func(acc *int64) (int64, error) { return *acc, nil },
	}
}

// Summing adds up the elements.
func Summing[T constraints.Integer | constraints.Float]() core.Collector[T, *T, T] {
	return core.Collector[T, *T, T]{
		Supplier: func() (*T, error) { return new(T), nil },
		Accumulator: func(acc *T, v T) error {
			*acc += v
			return nil
		},
		Finisher: func(acc *T) (T, error) { return *acc, nil },
	}
}

type average struct {
	sum   float64
	count int64
}

// Averaging computes the arithmetic mean, or None for no elements.
func Averaging[T constraints.Integer | constraints.Float]() core.Collector[T, *average, core.Optional[float64]] {
	return core.Collector[T, *average, core.Optional[float64]]{
		Supplier: func() (*average, error) { return &average{}, nil },
		Accumulator: func(acc *average, v T) error {
			acc.sum += float64(v)
			acc.count++
			return nil
		},
		Finisher: func(acc *average) (core.Optional[float64], error) {
			if acc.count == 0 {
				return core.None[float64](), nil
			}
			return core.Some(acc.sum / float64(acc.count)), nil
		},
	}
}

// Joining concatenates strings with sep between them, wrapped in prefix and
// suffix.
func Joining(sep, prefix, suffix string) core.Collector[string, *[]string, string] {
	return core.Collector[string, *[]string, string]{
		Supplier: func() (*[]string, error) { return new([]string), nil },
		Accumulator: func(acc *[]string, v string) error {
			*acc = append(*acc, v)
			return nil
		},
		Finisher: func(acc *[]string) (string, error) {
			return prefix + strings.Join(*acc, sep) + suffix, nil
		},
	}
}

// Reducing folds elements with op starting from identity.
func Reducing[T any](identity T, op func(T, T) T) core.Collector[T, *T, T] {
	return core.Collector[T, *T, T]{
		Supplier: func() (*T, error) {
			acc := identity
			return &acc, nil
		},
		Accumulator: func(acc *T, v T) error {
			*acc = op(*acc, v)
			return nil
		},
		Finisher: func(acc *T) (T, error) { return *acc, nil },
	}
}

// Mapping adapts downstream to accept T by applying mapper first.
func Mapping[T, U, A, R any](mapper func(T) U, downstream core.Collector[U, A, R]) core.Collector[T, A, R] {
	return core.Collector[T, A, R]{
		Supplier: downstream.Supplier,
		Accumulator: func(acc A, v T) error {
			return downstream.Accumulator(acc, mapper(v))
		},
		Finisher: downstream.Finisher,
	}
}

// Filtering adapts downstream to receive only elements matching predicate.
func Filtering[T, A, R any](predicate func(T) bool, downstream core.Collector[T, A, R]) core.Collector[T, A, R] {
	return core.Collector[T, A, R]{
		Supplier: downstream.Supplier,
		Accumulator: func(acc A, v T) error {
			if !predicate(v) {
				return nil
			}
			return downstream.Accumulator(acc, v)
		},
		Finisher: downstream.Finisher,
	}
}

// AndThen applies finisher to the result of c.
func AndThen[T, A, R, RR any](c core.Collector[T, A, R], finisher func(R) (RR, error)) core.Collector[T, A, RR] {
	return core.Collector[T, A, RR]{
		Supplier:    c.Supplier,
		Accumulator: c.Accumulator,
		Finisher: func(acc A) (RR, error) {
			var zero RR
			result, err := finish(c, acc)
			if err != nil {
				return zero, err
			}
			return finisher(result)
		},
	}
}

func finish[T, A, R any](c core.Collector[T, A, R], acc A) (R, error) {
	if c.Finisher != nil {
		return c.Finisher(acc)
	}
	if result, ok := any(acc).(R); ok {
		return result, nil
	}
	var zero R
	return zero, fmt.Errorf("%w: %T", core.ErrCollectorFinish, acc)
}
