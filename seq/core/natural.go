package core

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Ordered is implemented by element types that define their own natural
// ordering. Compare returns a negative number, zero or a positive number as
// the receiver is less than, equal to or greater than other.
type Ordered[T any] interface {
	Compare(other T) int
}

// naturalCompare resolves the natural ordering of a and b when it is needed.
// Types implementing Ordered decide for themselves; otherwise integers,
// floats and strings (including named types over them) compare by value.
func naturalCompare[T any](a, b T) (int, error) {
	if o, ok := any(a).(Ordered[T]); ok {
		return o.Compare(b), nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Kind() != vb.Kind() {
		return 0, fmt.Errorf("%w: cannot compare %T with %T", ErrNotOrdered, a, b)
	}

	switch va.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(va.Int(), vb.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(va.Uint(), vb.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(va.Float(), vb.Float()), nil
	case reflect.String:
		return cmp.Compare(va.String(), vb.String()), nil
	}
	return 0, fmt.Errorf("%w: %T", ErrNotOrdered, a)
}

// sortStable sorts items in place with a fallible comparator. The first
// comparator error aborts the sort and is returned; items are then left in
// an unspecified order.
func sortStable[T any](items []T, c Comparator[T]) error {
	var err error
	slices.SortStableFunc(items, func(a, b T) int {
		if err != nil {
			return 0
		}
		n, cerr := c(a, b)
		if cerr != nil {
			err = cerr
			return 0
		}
		return n
	})
	return err
}

// checkComparable reports whether v can be used as a map key.
func checkComparable(v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Comparable() {
		return nil
	}
	return fmt.Errorf("%w: %T", ErrNotComparable, v)
}
