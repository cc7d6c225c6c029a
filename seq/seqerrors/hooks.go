package seqerrors

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/lguimbarda/min-seq/seq/core"
)

// These observers only watch failures; the data flow is unchanged. They are
// safe for concurrent use so one observer can watch several traversals.

// ErrorCounter counts failures that match a predicate.
type ErrorCounter struct {
	predicate func(error) bool
	count     atomic.Int64
}

// NewErrorCounter creates a counter. If predicate is nil, all errors are
// counted.
func NewErrorCounter(predicate func(error) bool) *ErrorCounter {
	if predicate == nil {
		predicate = func(error) bool { return true }
	}
	return &ErrorCounter{predicate: predicate}
}

// Count returns the number of errors counted.
func (c *ErrorCounter) Count() int64 {
	return c.count.Load()
}

// Reset sets the count back to zero.
func (c *ErrorCounter) Reset() {
	c.count.Store(0)
}

// CountErrors creates a Stage that feeds upstream failures to counter.
func CountErrors[T any](counter *ErrorCounter) core.Stage[T, T] {
	return OnError[T](func(err error) {
		if counter.predicate(err) {
			counter.count.Add(1)
		}
	})
}

// ErrorCollector collects failures for later inspection. Failures beyond
// the WithMaxErrors cap are counted as dropped.
type ErrorCollector struct {
	predicate func(error) bool
	maxErrors int // 0 = unlimited

	mu      sync.Mutex
	errs    []error
	dropped int
}

// ErrorCollectorOption configures an ErrorCollector.
type ErrorCollectorOption func(*ErrorCollector)

// WithPredicate filters which errors to collect.
func WithPredicate(predicate func(error) bool) ErrorCollectorOption {
	return func(c *ErrorCollector) {
		if predicate != nil {
			c.predicate = predicate
		}
	}
}

// WithMaxErrors limits the number of errors to collect.
func WithMaxErrors(max int) ErrorCollectorOption {
	return func(c *ErrorCollector) {
		c.maxErrors = max
	}
}

// NewErrorCollector creates a collector.
func NewErrorCollector(opts ...ErrorCollectorOption) *ErrorCollector {
	c := &ErrorCollector{predicate: func(error) bool { return true }}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Errors returns a copy of the collected errors, oldest first.
func (c *ErrorCollector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.errs)
}

// Count returns the number of collected errors.
func (c *ErrorCollector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errs)
}

// Dropped returns the number of matching errors refused by the cap.
func (c *ErrorCollector) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}

// Err joins the collected errors with errors.Join; nil when none were
// collected.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Join(c.errs...)
}

// Reset forgets everything collected so far.
func (c *ErrorCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs, c.dropped = nil, 0
}

func (c *ErrorCollector) add(err error) {
	if !c.predicate(err) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxErrors > 0 && len(c.errs) >= c.maxErrors {
		c.dropped++
		return
	}
	c.errs = append(c.errs, err)
}

// CollectErrors creates a Stage that records upstream failures in collector.
func CollectErrors[T any](collector *ErrorCollector) core.Stage[T, T] {
	return OnError[T](collector.add)
}
