package filter

import (
	"github.com/lguimbarda/min-seq/seq/core"
)

// Take creates a Stage that passes through only the first n elements.
// If n <= 0, the result is empty and the upstream is never pulled.
func Take[T any](n int) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.Limit(n)
	}
}

// Skip creates a Stage that discards the first n elements.
func Skip[T any](n int) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.Skip(n)
	}
}

// TakeWhile creates a Stage that passes elements while the predicate holds.
func TakeWhile[T any](predicate func(T) bool) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.TakeWhile(core.Pred(predicate))
	}
}

// SkipWhile creates a Stage that drops the leading elements matching the
// predicate.
func SkipWhile[T any](predicate func(T) bool) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.DropWhile(core.Pred(predicate))
	}
}

// TakeLast creates a Stage yielding the last n elements. It keeps a ring of
// at most n elements and yields them once the upstream is exhausted.
func TakeLast[T any](n int) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		if n <= 0 {
			return core.Empty[T]()
		}
		up := s.Iterator()
		var (
			ring    []T
			start   int
			drained bool
		)
		return core.New[T](core.Fuse(func() (T, bool, error) {
			var zero T
			if !drained {
				drained = true
				for up.HasNext() {
					v := up.Next()
					if len(ring) < n {
						ring = append(ring, v)
						continue
					}
					ring[start] = v
					start = (start + 1) % n
				}
				if err := up.Err(); err != nil {
					return zero, false, err
				}
				ring = append(ring[start:], ring[:start]...)
			}
			if len(ring) == 0 {
				return zero, false, nil
			}
			v := ring[0]
			ring = ring[1:]
			return v, true, nil
		}))
	}
}

// SkipLast creates a Stage that drops the last n elements. Each element is
// yielded once n later elements have been seen.
func SkipLast[T any](n int) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		if n <= 0 {
			return s
		}
		up := s.Iterator()
		var buffer []T
		return core.New[T](core.Fuse(func() (T, bool, error) {
			for up.HasNext() {
				buffer = append(buffer, up.Next())
				if len(buffer) > n {
					v := buffer[0]
					buffer = buffer[1:]
					return v, true, nil
				}
			}
			var zero T
			return zero, false, up.Err()
		}))
	}
}
