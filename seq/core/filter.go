package core

// Filter keeps the elements satisfying p.
func (s Sequence[T]) Filter(p Predicate[T]) Sequence[T] {
	up := s.Iterator()
	return New[T](Fuse(func() (T, bool, error) {
		var zero T
		for up.HasNext() {
			value := up.Next()
			keep, err := p(value)
			if err != nil {
				return zero, false, err
			}
			if keep {
				return value, true, nil
			}
		}
		return zero, false, up.Err()
	}))
}

// FilterNot drops the elements satisfying p.
func (s Sequence[T]) FilterNot(p Predicate[T]) Sequence[T] {
	return s.Filter(Not(p))
}

// TakeWhile yields elements while p holds. The first element failing p is
// consumed from the upstream and discarded, and the stage then stays
// exhausted even if later elements would satisfy p.
func (s Sequence[T]) TakeWhile(p Predicate[T]) Sequence[T] {
	up := s.Iterator()
	return New[T](Fuse(func() (T, bool, error) {
		var zero T
		value, ok, err := pull(up)
		if !ok {
			return zero, false, err
		}
		keep, err := p(value)
		if err != nil || !keep {
			return zero, false, err
		}
		return value, true, nil
	}))
}

// DropWhile skips the leading elements satisfying p and yields everything
// from the first element failing it. p is not evaluated after that.
func (s Sequence[T]) DropWhile(p Predicate[T]) Sequence[T] {
	up := s.Iterator()
	dropping := true
	return New[T](Fuse(func() (T, bool, error) {
		var zero T
		for {
			value, ok, err := pull(up)
			if !ok {
				return zero, false, err
			}
			if dropping {
				drop, err := p(value)
				if err != nil {
					return zero, false, err
				}
				if drop {
					continue
				}
				dropping = false
			}
			return value, true, nil
		}
	}))
}

// Limit yields at most n elements. With n <= 0 the result is empty and the
// upstream is never pulled; once n elements are taken the upstream is not
// consulted again.
func (s Sequence[T]) Limit(n int) Sequence[T] {
	return New[T](&limitIterator[T]{up: s.Iterator(), max: n})
}

type limitIterator[T any] struct {
	up    Iterator[T]
	max   int
	taken int
}

func (l *limitIterator[T]) HasNext() bool {
	return l.taken < l.max && l.up.HasNext()
}

func (l *limitIterator[T]) Next() T {
	if l.taken >= l.max {
		panic(noSuchElement("limit"))
	}
	l.taken++
	return l.up.Next()
}

func (l *limitIterator[T]) Err() error {
	return l.up.Err()
}

// Skip discards the first n elements. They are consumed on the first
// HasNext; when the upstream has n elements or fewer, the result is empty.
func (s Sequence[T]) Skip(n int) Sequence[T] {
	return New[T](&skipIterator[T]{up: s.Iterator(), n: n})
}

type skipIterator[T any] struct {
	up      Iterator[T]
	n       int
	skipped int
}

func (k *skipIterator[T]) HasNext() bool {
	for k.skipped < k.n {
		if !k.up.HasNext() {
			return false
		}
		k.up.Next()
		k.skipped++
	}
	return k.up.HasNext()
}

func (k *skipIterator[T]) Next() T {
	if !k.HasNext() {
		panic(noSuchElement("skip"))
	}
	return k.up.Next()
}

func (k *skipIterator[T]) Err() error {
	return k.up.Err()
}
