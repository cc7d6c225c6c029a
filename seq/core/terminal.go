package core

import (
	"fmt"
	"reflect"
)

// Terminal operations drain the sequence and produce a final result. Each
// returns the first error raised by a user function or reported by the
// stage chain, unwrapped.

// ForEach runs action on every element.
func (s Sequence[T]) ForEach(action Consumer[T]) error {
	it := s.Iterator()
	for it.HasNext() {
		if err := action(it.Next()); err != nil {
			return err
		}
	}
	return it.Err()
}

// Fold combines the elements left to right starting from identity. An empty
// sequence folds to identity.
func (s Sequence[T]) Fold(identity T, op BinaryOperator[T]) (T, error) {
	return Accumulate(s, identity, op)
}

// Accumulate is Fold with an accumulator of a different type than the
// elements.
func Accumulate[T, R any](s Sequence[T], identity R, op BiFunction[R, T, R]) (R, error) {
	it := s.Iterator()
	result := identity
	for it.HasNext() {
		next, err := op(result, it.Next())
		if err != nil {
			var zero R
			return zero, err
		}
		result = next
	}
	if err := it.Err(); err != nil {
		var zero R
		return zero, err
	}
	return result, nil
}

// Reduce combines the elements left to right, seeding with the first one.
// An empty sequence reduces to None.
func (s Sequence[T]) Reduce(op BinaryOperator[T]) (Optional[T], error) {
	it := s.Iterator()
	if !it.HasNext() {
		return None[T](), it.Err()
	}
	result := it.Next()
	for it.HasNext() {
		next, err := op(result, it.Next())
		if err != nil {
			return None[T](), err
		}
		result = next
	}
	if err := it.Err(); err != nil {
		return None[T](), err
	}
	return Some(result), nil
}

// Count returns the number of elements.
func (s Sequence[T]) Count() (int64, error) {
	it := s.Iterator()
	var n int64
	for it.HasNext() {
		it.Next()
		n++
	}
	return n, it.Err()
}

// ToSlice collects the elements into a new slice.
func (s Sequence[T]) ToSlice() ([]T, error) {
	return drain(s.Iterator())
}

// ToArray collects the elements into an exactly sized slice. More than
// Config.MaxArraySize elements fail with ErrCapacity before the result is
// allocated.
func (s Sequence[T]) ToArray(opts ...Option) ([]T, error) {
	return s.ToArrayFunc(func(n int) ([]T, error) {
		return make([]T, n), nil
	}, opts...)
}

// ToArrayFunc is ToArray with the result slice obtained from factory, called
// with the element count. A container shorter than the count fails with
// ErrCapacity.
func (s Sequence[T]) ToArrayFunc(factory IntFunction[[]T], opts ...Option) ([]T, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	items, err := drain(s.Iterator())
	if err != nil {
		return nil, err
	}
	if len(items) > cfg.MaxArraySize {
		return nil, fmt.Errorf("%w: %d elements, limit is %d", ErrCapacity, len(items), cfg.MaxArraySize)
	}

	out, err := factory(len(items))
	if err != nil {
		return nil, err
	}
	if len(out) < len(items) {
		return nil, fmt.Errorf("%w: container holds %d of %d elements", ErrCapacity, len(out), len(items))
	}
	copy(out, items)
	return out, nil
}

// Min returns the smallest element according to c; the first of equal
// elements wins.
func (s Sequence[T]) Min(c Comparator[T]) (Optional[T], error) {
	return s.Reduce(MinBy(c))
}

// Max returns the largest element according to c; the first of equal
// elements wins.
func (s Sequence[T]) Max(c Comparator[T]) (Optional[T], error) {
	return s.Reduce(MaxBy(c))
}

// FindFirst returns the first element, pulling nothing beyond it.
func (s Sequence[T]) FindFirst() (Optional[T], error) {
	it := s.Iterator()
	if it.HasNext() {
		return Some(it.Next()), nil
	}
	return None[T](), it.Err()
}

type matchKind uint8

const (
	matchAny matchKind = iota
	matchAll
	matchNone
)

// AnyMatch reports whether some element satisfies p, stopping at the first
// that does. It is false for an empty sequence.
func (s Sequence[T]) AnyMatch(p Predicate[T]) (bool, error) {
	return s.match(p, matchAny)
}

// AllMatch reports whether every element satisfies p, stopping at the first
// that does not. It is true for an empty sequence.
func (s Sequence[T]) AllMatch(p Predicate[T]) (bool, error) {
	return s.match(p, matchAll)
}

// NoneMatch reports whether no element satisfies p, stopping at the first
// that does. It is true for an empty sequence.
func (s Sequence[T]) NoneMatch(p Predicate[T]) (bool, error) {
	return s.match(p, matchNone)
}

func (s Sequence[T]) match(p Predicate[T], kind matchKind) (bool, error) {
	it := s.Iterator()
	for it.HasNext() {
		ok, err := p(it.Next())
		if err != nil {
			return false, err
		}
		// an all-match is decided by a miss, the others by a hit
		if ok != (kind == matchAll) {
			return kind == matchAny, nil
		}
	}
	if err := it.Err(); err != nil {
		return false, err
	}
	return kind != matchAny, nil
}

// Collector describes a mutable reduction: Supplier creates the container,
// Accumulator folds each element into it, and Finisher, when set, turns the
// container into the result. Without a Finisher the container itself must be
// of the result type.
type Collector[T, A, R any] struct {
	Supplier    Supplier[A]
	Accumulator BiConsumer[A, T]
	Finisher    Function[A, R]
}

// Collect performs the mutable reduction described by c.
func Collect[T, A, R any](s Sequence[T], c Collector[T, A, R]) (R, error) {
	var zero R
	container, err := c.Supplier()
	if err != nil {
		return zero, err
	}

	it := s.Iterator()
	for it.HasNext() {
		if err := c.Accumulator(container, it.Next()); err != nil {
			return zero, err
		}
	}
	if err := it.Err(); err != nil {
		return zero, err
	}

	if c.Finisher != nil {
		return c.Finisher(container)
	}
	if result, ok := any(container).(R); ok {
		return result, nil
	}
	return zero, fmt.Errorf("%w: %T is not %v", ErrCollectorFinish, container, reflect.TypeFor[R]())
}

// CollectWith collects into the container made by supplier using
// accumulator, returning the container itself.
func CollectWith[T, R any](s Sequence[T], supplier Supplier[R], accumulator BiConsumer[R, T]) (R, error) {
	return Collect(s, Collector[T, R, R]{Supplier: supplier, Accumulator: accumulator})
}
