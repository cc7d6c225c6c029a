package seqerrors

import (
	"errors"
	"sync"
	"time"

	"github.com/lguimbarda/min-seq/seq/core"
)

// ErrCircuitOpen is returned for calls rejected by an open circuit.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitState is the position of a CircuitBreaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// BreakerOption configures a CircuitBreaker.
type BreakerOption func(*CircuitBreaker)

// WithFailureThreshold sets how many consecutive failures open the circuit.
// Default 5.
func WithFailureThreshold(n int) BreakerOption {
	return func(cb *CircuitBreaker) {
		if n > 0 {
			cb.failureThreshold = n
		}
	}
}

// WithResetTimeout sets how long the circuit stays open before letting a
// trial call through. Default 30s.
func WithResetTimeout(d time.Duration) BreakerOption {
	return func(cb *CircuitBreaker) {
		if d > 0 {
			cb.resetTimeout = d
		}
	}
}

// WithHalfOpenSuccesses sets how many trial calls must succeed to close the
// circuit again. Default 1.
func WithHalfOpenSuccesses(n int) BreakerOption {
	return func(cb *CircuitBreaker) {
		if n > 0 {
			cb.halfOpenSuccesses = n
		}
	}
}

// OnStateChange registers a callback run on every transition, outside the
// breaker's lock.
func OnStateChange(fn func(from, to CircuitState)) BreakerOption {
	return func(cb *CircuitBreaker) {
		cb.onChange = fn
	}
}

// CircuitBreaker stops calling a failing dependency for a while. It is not
// tied to one operation: every stage guarded by the same breaker shares its
// failure count, and it is safe for concurrent use.
type CircuitBreaker struct {
	failureThreshold  int
	resetTimeout      time.Duration
	halfOpenSuccesses int
	onChange          func(from, to CircuitState)

	mu        sync.Mutex
	state     CircuitState
	failures  int
	successes int
	openedAt  time.Time
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(opts ...BreakerOption) *CircuitBreaker {
	cb := &CircuitBreaker{
		failureThreshold:  5,
		resetTimeout:      30 * time.Second,
		halfOpenSuccesses: 1,
	}
	for _, opt := range opts {
		opt(cb)
	}
	return cb
}

// State returns the current state. An open circuit whose reset timeout has
// passed still reports open until the next call moves it to half-open.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// allow reports whether a call may proceed.
func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	from := cb.state
	if cb.state == CircuitOpen && time.Since(cb.openedAt) >= cb.resetTimeout {
		cb.state, cb.successes = CircuitHalfOpen, 0
	}
	to := cb.state
	cb.mu.Unlock()

	cb.notify(from, to)
	if to == CircuitOpen {
		return ErrCircuitOpen
	}
	return nil
}

// record updates the counters with the outcome of an allowed call.
func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	from := cb.state
	switch {
	case err != nil:
		cb.failures++
		if cb.state == CircuitHalfOpen || cb.failures >= cb.failureThreshold {
			cb.state, cb.openedAt = CircuitOpen, time.Now()
		}
	case cb.state == CircuitHalfOpen:
		cb.successes++
		if cb.successes >= cb.halfOpenSuccesses {
			cb.state, cb.failures = CircuitClosed, 0
		}
	default:
		cb.failures = 0
	}
	to := cb.state
	cb.mu.Unlock()

	cb.notify(from, to)
}

func (cb *CircuitBreaker) notify(from, to CircuitState) {
	if from != to && cb.onChange != nil {
		cb.onChange(from, to)
	}
}

// Guard wraps operation so every call goes through cb. Rejected calls fail
// with ErrCircuitOpen without calling operation.
func Guard[IN, OUT any](cb *CircuitBreaker, operation func(IN) (OUT, error)) func(IN) (OUT, error) {
	return func(v IN) (OUT, error) {
		if err := cb.allow(); err != nil {
			var zero OUT
			return zero, err
		}
		out, err := operation(v)
		cb.record(err)
		return out, err
	}
}

// WithCircuitBreaker creates a Stage mapping every element with operation
// guarded by cb. The first failure, including ErrCircuitOpen, fails the
// sequence; the breaker keeps its state for the next traversal.
func WithCircuitBreaker[IN, OUT any](cb *CircuitBreaker, operation func(IN) (OUT, error)) core.Stage[IN, OUT] {
	guarded := Guard(cb, operation)
	return func(s core.Sequence[IN]) core.Sequence[OUT] {
		return core.Map(s, guarded)
	}
}
