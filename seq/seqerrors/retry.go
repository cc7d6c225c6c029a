package seqerrors

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lguimbarda/min-seq/seq/core"
)

// ErrMaxRetries is returned when an element still fails after every retry.
// The last attempt's error is wrapped alongside it.
var ErrMaxRetries = errors.New("max retries exceeded")

// BackoffStrategy gives the pause before retry number attempt (0-based).
type BackoffStrategy func(attempt int) time.Duration

// ConstantBackoff pauses for delay before every retry.
func ConstantBackoff(delay time.Duration) BackoffStrategy {
	return func(int) time.Duration { return delay }
}

// LinearBackoff pauses step, 2*step, 3*step...
func LinearBackoff(step time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		return time.Duration(attempt+1) * step
	}
}

// ExponentialBackoff pauses base, 2*base, 4*base... up to ceiling. A
// non-positive ceiling leaves the growth unbounded until the duration
// would overflow.
func ExponentialBackoff(base, ceiling time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		delay := base
		for range attempt {
			if ceiling > 0 && delay >= ceiling {
				return ceiling
			}
			if delay > math.MaxInt64/2 {
				return delay
			}
			delay *= 2
		}
		if ceiling > 0 && delay > ceiling {
			return ceiling
		}
		return delay
	}
}

// WithJitter scales every pause of b by a random factor in [0.5, 1) drawn
// from rng, so retries of many elements do not line up. Negative pauses
// are treated as zero.
func WithJitter(b BackoffStrategy, rng *rand.Rand) BackoffStrategy {
	return func(attempt int) time.Duration {
		d := max(b(attempt), 0)
		return d/2 + time.Duration(rng.Int64N(int64(d/2)+1))
	}
}

// Retry creates a Stage mapping every element with operation, calling it
// up to maxRetries more times when it fails. An element that never succeeds
// fails the sequence with ErrMaxRetries.
func Retry[IN, OUT any](maxRetries int, operation func(IN) (OUT, error)) core.Stage[IN, OUT] {
	return retrying(retryPolicy{maxRetries: maxRetries}, operation)
}

// RetryWithBackoff is Retry with a pause between attempts. The pause blocks
// the pulling goroutine.
func RetryWithBackoff[IN, OUT any](maxRetries int, backoff BackoffStrategy, operation func(IN) (OUT, error)) core.Stage[IN, OUT] {
	return retrying(retryPolicy{maxRetries: maxRetries, backoff: backoff}, operation)
}

// RetryWhen is Retry that only retries while shouldRetry approves the error
// of the given attempt (0-based). A refused error fails the sequence as-is.
func RetryWhen[IN, OUT any](maxRetries int, shouldRetry func(err error, attempt int) bool, operation func(IN) (OUT, error)) core.Stage[IN, OUT] {
	return retrying(retryPolicy{maxRetries: maxRetries, shouldRetry: shouldRetry}, operation)
}

type retryPolicy struct {
	maxRetries  int
	backoff     BackoffStrategy
	shouldRetry func(error, int) bool
}

// run calls operation until it succeeds, the policy refuses the error or
// the attempts run out.
func (p retryPolicy) run(operation func() error) error {
	var lastErr error
	for attempt := range max(p.maxRetries, 0) + 1 {
		if attempt > 0 && p.backoff != nil {
			time.Sleep(p.backoff(attempt - 1))
		}
		err := operation()
		if err == nil {
			return nil
		}
		if p.shouldRetry != nil && !p.shouldRetry(err, attempt) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, max(p.maxRetries, 0)+1, lastErr)
}

func retrying[IN, OUT any](p retryPolicy, operation func(IN) (OUT, error)) core.Stage[IN, OUT] {
	return func(s core.Sequence[IN]) core.Sequence[OUT] {
		return core.Map(s, func(v IN) (OUT, error) {
			var out OUT
			err := p.run(func() error {
				var err error
				out, err = operation(v)
				return err
			})
			if err != nil {
				var zero OUT
				return zero, err
			}
			return out, nil
		})
	}
}
