package core

import "fmt"

// Optional holds a value that may be absent. Reduce, Min, Max and FindFirst
// return one, so an empty sequence is distinguishable from a zero value.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// IsEmpty reports whether no value is held.
func (o Optional[T]) IsEmpty() bool {
	return !o.present
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// OrElse returns the value if present, otherwise fallback.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// OrElseGet returns the value if present, otherwise whatever supplier
// produces. The supplier is not called when a value is present.
func (o Optional[T]) OrElseGet(supplier Supplier[T]) (T, error) {
	if o.present {
		return o.value, nil
	}
	return supplier()
}

// OrError returns the value, or an error wrapping ErrNoSuchElement.
func (o Optional[T]) OrError() (T, error) {
	if o.present {
		return o.value, nil
	}
	return o.value, fmt.Errorf("%w: optional is empty", ErrNoSuchElement)
}

// IfPresent runs fn with the value when one is held.
func (o Optional[T]) IfPresent(fn func(T)) {
	if o.present {
		fn(o.value)
	}
}

func (o Optional[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Pair is a key/value tuple, produced by GroupBy and map sources.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// PairOf builds a Pair.
func PairOf[K, V any](key K, value V) Pair[K, V] {
	return Pair[K, V]{Key: key, Value: value}
}

func (p Pair[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", p.Key, p.Value)
}
