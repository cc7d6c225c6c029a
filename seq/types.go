// Package seq provides lazy, pull-based sequences: pipelines of intermediate
// operations over a source, evaluated one element at a time when a terminal
// operation asks for results.
//
// This package is the primary user-facing API. Most users should only need
// to import this package. The seq/core subpackage holds the pull protocol and
// stage machinery, and the operator packages (filter, transform, aggregate,
// combine, collect, observe, seqerrors, sql) build on it.
package seq

import (
	"cmp"

	"github.com/lguimbarda/min-seq/seq/core"
)

// Type aliases for core abstractions.
// These allow users to work with the library without importing core directly.
type (
	// Sequence is a lazy, single-traversal pipeline handle.
	Sequence[T any] = core.Sequence[T]

	// Iterator is the pull protocol every stage implements.
	Iterator[T any] = core.Iterator[T]

	// Transformer turns a Sequence of IN into a Sequence of OUT.
	Transformer[IN, OUT any] = core.Transformer[IN, OUT]

	// Stage is a function implementing Transformer.
	Stage[IN, OUT any] = core.Stage[IN, OUT]

	// Optional holds a value that may be absent.
	Optional[T any] = core.Optional[T]

	// Pair is a key/value tuple.
	Pair[K, V any] = core.Pair[K, V]

	// Collector describes a mutable reduction.
	Collector[T, A, R any] = core.Collector[T, A, R]

	// Hooks holds observation callbacks for WithHooks.
	Hooks[T any] = core.Hooks[T]

	Function[T, R any]       = core.Function[T, R]
	Predicate[T any]         = core.Predicate[T]
	BiFunction[T, U, R any]  = core.BiFunction[T, U, R]
	BinaryOperator[T any]    = core.BinaryOperator[T]
	Consumer[T any]          = core.Consumer[T]
	BiConsumer[A, T any]     = core.BiConsumer[A, T]
	Supplier[T any]          = core.Supplier[T]
	IntFunction[R any]       = core.IntFunction[R]
	Comparator[T any]        = core.Comparator[T]
	Option                   = core.Option
)

// Errors reported by sequence operations.
var (
	ErrNoSuchElement   = core.ErrNoSuchElement
	ErrInvalidArgument = core.ErrInvalidArgument
	ErrCapacity        = core.ErrCapacity
	ErrNotOrdered      = core.ErrNotOrdered
	ErrNotComparable   = core.ErrNotComparable
	ErrCollectorFinish = core.ErrCollectorFinish
)

// MaxArraySize is the default limit of ToArray.
const MaxArraySize = core.MaxArraySize

// WithMaxArraySize sets the capacity limit of ToArray.
func WithMaxArraySize(n int) Option {
	return core.WithMaxArraySize(n)
}

// Optional constructors.

// Some returns a present Optional.
func Some[T any](value T) Optional[T] {
	return core.Some(value)
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return core.None[T]()
}

// PairOf builds a Pair.
func PairOf[K, V any](key K, value V) Pair[K, V] {
	return core.PairOf(key, value)
}

// Type-changing operations. Go methods cannot introduce type parameters, so
// these are functions taking the sequence first.

// Map applies mapper to each element.
func Map[T, R any](s Sequence[T], mapper Function[T, R]) Sequence[R] {
	return core.Map(s, mapper)
}

// FlatMap maps each element to a nested sequence and flattens the results.
func FlatMap[T, R any](s Sequence[T], mapper Function[T, Sequence[R]]) Sequence[R] {
	return core.FlatMap(s, mapper)
}

// Select keeps the elements whose dynamic type is R.
func Select[R, T any](s Sequence[T]) Sequence[R] {
	return core.Select[R](s)
}

// GroupBy buckets the elements by key, in first-seen key order.
func GroupBy[T any, K comparable](s Sequence[T], classifier Function[T, K]) Sequence[Pair[K, []T]] {
	return core.GroupBy(s, classifier)
}

// ChunkBy splits the sequence into runs of consecutive equal-keyed elements.
func ChunkBy[T any, K comparable](s Sequence[T], classifier Function[T, K]) Sequence[[]T] {
	return core.ChunkBy(s, classifier)
}

// SlidingWindow yields windows of up to size elements advancing by step.
func SlidingWindow[T any](s Sequence[T], size, step int) Sequence[[]T] {
	return core.SlidingWindow(s, size, step)
}

// SlidingWindow1 yields overlapping windows of up to size elements.
func SlidingWindow1[T any](s Sequence[T], size int) Sequence[[]T] {
	return core.SlidingWindow1(s, size)
}

// SortBy sorts the elements by an extracted key.
func SortBy[T any, K cmp.Ordered](s Sequence[T], key Function[T, K]) Sequence[T] {
	return core.SortBy(s, key)
}

// DistinctOf removes duplicates of a comparable element type.
func DistinctOf[T comparable](s Sequence[T]) Sequence[T] {
	return core.DistinctOf(s)
}

// Accumulate folds the elements into an accumulator of another type.
func Accumulate[T, R any](s Sequence[T], identity R, op BiFunction[R, T, R]) (R, error) {
	return core.Accumulate(s, identity, op)
}

// Collect performs a mutable reduction.
func Collect[T, A, R any](s Sequence[T], c Collector[T, A, R]) (R, error) {
	return core.Collect(s, c)
}

// CollectWith collects into a container made by supplier.
func CollectWith[T, R any](s Sequence[T], supplier Supplier[R], accumulator BiConsumer[R, T]) (R, error) {
	return core.CollectWith(s, supplier, accumulator)
}

// Function helpers.

// Fn lifts an infallible function.
func Fn[T, R any](fn func(T) R) Function[T, R] { return core.Fn(fn) }

// Pred lifts an infallible predicate.
func Pred[T any](fn func(T) bool) Predicate[T] { return core.Pred(fn) }

// BiFn lifts an infallible two-argument function.
func BiFn[T, U, R any](fn func(T, U) R) BiFunction[T, U, R] { return core.BiFn(fn) }

// Action lifts an infallible action.
func Action[T any](fn func(T)) Consumer[T] { return core.Action(fn) }

// Supply lifts an infallible generator.
func Supply[T any](fn func() T) Supplier[T] { return core.Supply(fn) }

// Order lifts an infallible comparison.
func Order[T any](fn func(a, b T) int) Comparator[T] { return core.Order(fn) }

// Identity returns the identity Function.
func Identity[T any]() Function[T, T] { return core.Identity[T]() }

// NaturalOrder compares by natural ordering.
func NaturalOrder[T any]() Comparator[T] { return core.NaturalOrder[T]() }

// Reversed inverts a comparator.
func Reversed[T any](c Comparator[T]) Comparator[T] { return core.Reversed(c) }

// Not negates a predicate.
func Not[T any](p Predicate[T]) Predicate[T] { return core.Not(p) }
