package core

// Map applies mapper to each element. The mapper runs when the downstream
// asks whether another element exists, exactly once per element that is
// pulled.
func Map[T, R any](s Sequence[T], mapper Function[T, R]) Sequence[R] {
	up := s.Iterator()
	return New[R](Fuse(func() (R, bool, error) {
		var zero R
		value, ok, err := pull(up)
		if !ok {
			return zero, false, err
		}
		mapped, err := mapper(value)
		if err != nil {
			return zero, false, err
		}
		return mapped, true, nil
	}))
}

// FlatMap maps each element to a nested sequence and yields the nested
// elements in order. Empty and zero nested sequences are skipped, and a
// nested sequence is only pulled as far as the downstream demands.
func FlatMap[T, R any](s Sequence[T], mapper Function[T, Sequence[R]]) Sequence[R] {
	up := s.Iterator()
	var inner Iterator[R]
	return New[R](Fuse(func() (R, bool, error) {
		var zero R
		for {
			if inner != nil {
				if inner.HasNext() {
					return inner.Next(), true, nil
				}
				if err := inner.Err(); err != nil {
					return zero, false, err
				}
				inner = nil
			}

			value, ok, err := pull(up)
			if !ok {
				return zero, false, err
			}
			nested, err := mapper(value)
			if err != nil {
				return zero, false, err
			}
			if !nested.IsZero() {
				inner = nested.it
			}
		}
	}))
}

// Select keeps the elements whose dynamic type is R, converted to R.
//
//	names := core.Select[string](core.Of[any](1, "a", 2.5, "b")) // "a", "b"
func Select[R, T any](s Sequence[T]) Sequence[R] {
	up := s.Iterator()
	return New[R](Fuse(func() (R, bool, error) {
		for up.HasNext() {
			if r, ok := any(up.Next()).(R); ok {
				return r, true, nil
			}
		}
		var zero R
		return zero, false, up.Err()
	}))
}

// Peek runs action on each element as it passes downstream. Like Map, the
// action runs when the downstream asks for the element.
func (s Sequence[T]) Peek(action Consumer[T]) Sequence[T] {
	up := s.Iterator()
	return New[T](Fuse(func() (T, bool, error) {
		value, ok, err := pull(up)
		if !ok {
			return value, false, err
		}
		if err := action(value); err != nil {
			var zero T
			return zero, false, err
		}
		return value, true, nil
	}))
}
