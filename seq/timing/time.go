// Package timing provides time-aware stages. Sequences are pulled
// synchronously, so every wait here blocks the consumer's goroutine; time is
// measured between pulls, never by background timers.
package timing

import (
	"errors"
	"fmt"
	"time"

	"github.com/lguimbarda/min-seq/seq/core"
)

// ErrTimeout is returned when a traversal outlives its Timeout.
var ErrTimeout = errors.New("sequence timed out")

// Timestamped pairs a value with the time it was pulled.
type Timestamped[T any] struct {
	Value     T
	Timestamp time.Time
}

// Stamped creates a Stage that wraps each element with the time it was
// pulled from upstream.
func Stamped[T any]() core.Stage[T, Timestamped[T]] {
	return func(s core.Sequence[T]) core.Sequence[Timestamped[T]] {
		return core.Map(s, func(v T) (Timestamped[T], error) {
			return Timestamped[T]{Value: v, Timestamp: time.Now()}, nil
		})
	}
}

// TimeInterval pairs a value with the time since the previous one.
type TimeInterval[T any] struct {
	Value    T
	Interval time.Duration
}

// Elapsed creates a Stage that wraps each element with the duration since
// the previous element, or since the first pull for the first element.
func Elapsed[T any]() core.Stage[T, TimeInterval[T]] {
	return func(s core.Sequence[T]) core.Sequence[TimeInterval[T]] {
		up := s.Iterator()
		var last time.Time
		return core.New[TimeInterval[T]](core.Fuse(func() (TimeInterval[T], bool, error) {
			if last.IsZero() {
				last = time.Now()
			}
			if !up.HasNext() {
				return TimeInterval[T]{}, false, up.Err()
			}
			v := up.Next()
			now := time.Now()
			interval := now.Sub(last)
			last = now
			return TimeInterval[T]{Value: v, Interval: interval}, true, nil
		}))
	}
}

// Delay creates a Stage that waits for duration before handing over each
// element.
func Delay[T any](duration time.Duration) core.Stage[T, T] {
	return DelayWhen(func(T) time.Duration { return duration })
}

// DelayWhen creates a Stage that waits for delayFn(element) before handing
// over each element. Non-positive delays do not wait.
func DelayWhen[T any](delayFn func(T) time.Duration) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.Peek(core.Action(func(v T) {
			if d := delayFn(v); d > 0 {
				time.Sleep(d)
			}
		}))
	}
}

// RateLimit creates a Stage that hands over at most n elements per window
// of length per. Pulling the n+1st element of a window waits for the next
// window to open.
func RateLimit[T any](n int, per time.Duration) core.Stage[T, T] {
	n = max(n, 1)
	return func(s core.Sequence[T]) core.Sequence[T] {
		var windowStart time.Time
		used := 0
		return s.Peek(core.Action(func(T) {
			now := time.Now()
			switch {
			case windowStart.IsZero() || now.Sub(windowStart) >= per:
				windowStart, used = now, 0
			case used >= n:
				time.Sleep(per - now.Sub(windowStart))
				windowStart, used = time.Now(), 0
			}
			used++
		}))
	}
}

// Throttle creates a Stage that hands over an element and then drops the
// elements pulled within duration of it.
func Throttle[T any](duration time.Duration) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		var last time.Time
		return s.Filter(core.Pred(func(T) bool {
			now := time.Now()
			if !last.IsZero() && now.Sub(last) < duration {
				return false
			}
			last = now
			return true
		}))
	}
}

// Timeout creates a Stage that fails with ErrTimeout once duration has
// passed since the first pull. The check runs before each pull, so a single
// slow upstream element is not interrupted.
func Timeout[T any](duration time.Duration) core.Stage[T, T] {
	return TimeoutWithError[T](duration, nil)
}

// TimeoutWithError is Timeout failing with err instead of ErrTimeout.
func TimeoutWithError[T any](duration time.Duration, err error) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		up := s.Iterator()
		var deadline time.Time
		return core.New[T](core.Fuse(func() (T, bool, error) {
			var zero T
			now := time.Now()
			if deadline.IsZero() {
				deadline = now.Add(duration)
			} else if !now.Before(deadline) {
				if err != nil {
					return zero, false, err
				}
				return zero, false, fmt.Errorf("%w after %v", ErrTimeout, duration)
			}
			if up.HasNext() {
				return up.Next(), true, nil
			}
			return zero, false, up.Err()
		}))
	}
}

// Interval creates an unbounded Sequence of 0, 1, 2, ... where each element
// is handed over duration after the previous one was requested. Bound it
// with Limit or TakeWhile.
func Interval(duration time.Duration) core.Sequence[int] {
	tick := 0
	return core.New[int](core.Fuse(func() (int, bool, error) {
		time.Sleep(duration)
		v := tick
		tick++
		return v, true, nil
	}))
}
