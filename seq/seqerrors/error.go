// Package seqerrors provides opt-in stages for observing, rewriting and
// recovering from sequence failures.
//
// A failure ends a traversal: these stages act on the error the upstream
// ends with, either passing it on (possibly rewritten) or replacing the
// failed tail with something else. Element-level resilience for fallible
// functions (retry, circuit breaking) lives in retry.go and breaker.go.
package seqerrors

import (
	"fmt"

	"github.com/lguimbarda/min-seq/seq/core"
)

// OnError creates a Stage that calls handler when the upstream fails. The
// handler is called for side effects; the failure still propagates.
func OnError[T any](handler func(error)) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.WithHooks(core.Hooks[T]{OnError: handler})
	}
}

// MapError creates a Stage that replaces an upstream failure with
// mapper's result. Elements pass through unchanged. A nil result turns the
// failure into a normal end.
func MapError[T any](mapper func(error) error) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		up := s.Iterator()
		return core.New[T](core.Fuse(func() (T, bool, error) {
			var zero T
			if up.HasNext() {
				return up.Next(), true, nil
			}
			if err := up.Err(); err != nil {
				return zero, false, mapper(err)
			}
			return zero, false, nil
		}))
	}
}

// WrapError creates a Stage that wraps an upstream failure with msg,
// keeping the original reachable through errors.Is and errors.As.
func WrapError[T any](msg string) core.Stage[T, T] {
	return MapError[T](func(err error) error {
		return fmt.Errorf("%s: %w", msg, err)
	})
}

// CatchError creates a Stage that switches to the sequence returned by
// handler when the upstream fails with an error matching predicate. The
// elements yielded before the failure are kept. Non-matching failures
// propagate unchanged.
func CatchError[T any](predicate func(error) bool, handler func(error) core.Sequence[T]) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		up := s.Iterator()
		var fallback core.Iterator[T]
		return core.New[T](core.Fuse(func() (T, bool, error) {
			var zero T
			if fallback == nil {
				if up.HasNext() {
					return up.Next(), true, nil
				}
				err := up.Err()
				if err == nil || !predicate(err) {
					return zero, false, err
				}
				fallback = handler(err).Iterator()
			}
			if fallback.HasNext() {
				return fallback.Next(), true, nil
			}
			return zero, false, fallback.Err()
		}))
	}
}

// OnErrorReturn creates a Stage that ends with value instead of a failure
// matching predicate.
func OnErrorReturn[T any](predicate func(error) bool, value T) core.Stage[T, T] {
	return CatchError(predicate, func(error) core.Sequence[T] {
		return core.Of(value)
	})
}

// IgnoreError creates a Stage that turns a failure matching predicate into a
// normal end of the sequence.
func IgnoreError[T any](predicate func(error) bool) core.Stage[T, T] {
	return CatchError(predicate, func(error) core.Sequence[T] {
		return core.Empty[T]()
	})
}

// IgnoreErrors creates a Stage that turns any failure into a normal end.
func IgnoreErrors[T any]() core.Stage[T, T] {
	return IgnoreError[T](func(error) bool { return true })
}
