package core

// The capability types below are the callbacks operations accept. Every one
// of them may fail: a non-nil error stops the traversal and is reported,
// unwrapped, by the terminal operation that drove it.

// Function maps a T to an R.
type Function[T, R any] func(T) (R, error)

// Predicate tests a T.
type Predicate[T any] func(T) (bool, error)

// BiFunction combines a T and a U into an R.
type BiFunction[T, U, R any] func(T, U) (R, error)

// BinaryOperator combines two values of the same type.
type BinaryOperator[T any] = BiFunction[T, T, T]

// Consumer performs an action on a T.
type Consumer[T any] func(T) error

// BiConsumer performs an action on an accumulation container and a T.
type BiConsumer[A, T any] func(A, T) error

// Supplier produces values.
type Supplier[T any] func() (T, error)

// IntFunction produces an R from a size or index.
type IntFunction[R any] func(int) (R, error)

// Comparator returns a negative number, zero or a positive number as a is
// less than, equal to or greater than b.
type Comparator[T any] func(a, b T) (int, error)

// Fn lifts an infallible function into a Function.
func Fn[T, R any](fn func(T) R) Function[T, R] {
	return func(v T) (R, error) {
		return fn(v), nil
	}
}

// Pred lifts an infallible predicate into a Predicate.
func Pred[T any](fn func(T) bool) Predicate[T] {
	return func(v T) (bool, error) {
		return fn(v), nil
	}
}

// BiFn lifts an infallible two-argument function into a BiFunction.
func BiFn[T, U, R any](fn func(T, U) R) BiFunction[T, U, R] {
	return func(a T, b U) (R, error) {
		return fn(a, b), nil
	}
}

// Action lifts an infallible action into a Consumer.
func Action[T any](fn func(T)) Consumer[T] {
	return func(v T) error {
		fn(v)
		return nil
	}
}

// Supply lifts an infallible generator into a Supplier.
func Supply[T any](fn func() T) Supplier[T] {
	return func() (T, error) {
		return fn(), nil
	}
}

// Order lifts an infallible comparison into a Comparator.
func Order[T any](fn func(a, b T) int) Comparator[T] {
	return func(a, b T) (int, error) {
		return fn(a, b), nil
	}
}

// Identity returns a Function that returns its argument.
func Identity[T any]() Function[T, T] {
	return func(v T) (T, error) {
		return v, nil
	}
}

// Compose returns f after g: the result applies g, then f.
func Compose[V, T, R any](f Function[T, R], g Function[V, T]) Function[V, R] {
	return AndThen(g, f)
}

// AndThen returns g after f: the result applies f, then g.
func AndThen[T, R, V any](f Function[T, R], g Function[R, V]) Function[T, V] {
	return func(v T) (V, error) {
		mid, err := f(v)
		if err != nil {
			var zero V
			return zero, err
		}
		return g(mid)
	}
}

// Not negates a predicate.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(v T) (bool, error) {
		ok, err := p(v)
		return !ok && err == nil, err
	}
}

// And short-circuits: q is not evaluated when p reports false.
func And[T any](p, q Predicate[T]) Predicate[T] {
	return func(v T) (bool, error) {
		ok, err := p(v)
		if err != nil || !ok {
			return false, err
		}
		return q(v)
	}
}

// Or short-circuits: q is not evaluated when p reports true.
func Or[T any](p, q Predicate[T]) Predicate[T] {
	return func(v T) (bool, error) {
		ok, err := p(v)
		if err != nil || ok {
			return ok && err == nil, err
		}
		return q(v)
	}
}

// Reversed inverts the order imposed by c.
func Reversed[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) (int, error) {
		return c(b, a)
	}
}

// NaturalOrder compares elements by their natural ordering. See Ordered.
func NaturalOrder[T any]() Comparator[T] {
	return naturalCompare[T]
}

// MinBy returns an operator keeping the smaller of two values. On a tie the
// first argument wins.
func MinBy[T any](c Comparator[T]) BinaryOperator[T] {
	return func(a, b T) (T, error) {
		n, err := c(a, b)
		if err != nil {
			var zero T
			return zero, err
		}
		if n <= 0 {
			return a, nil
		}
		return b, nil
	}
}

// MaxBy returns an operator keeping the larger of two values. On a tie the
// first argument wins.
func MaxBy[T any](c Comparator[T]) BinaryOperator[T] {
	return func(a, b T) (T, error) {
		n, err := c(a, b)
		if err != nil {
			var zero T
			return zero, err
		}
		if n >= 0 {
			return a, nil
		}
		return b, nil
	}
}
