// Package observe provides pass-through stages for monitoring, metrics and
// debugging sequences. Every stage here yields its input unchanged; the
// observation happens in hooks run on the pulling goroutine.
package observe

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lguimbarda/min-seq/seq/core"
)

// StreamMetrics holds statistics about one traversal.
type StreamMetrics struct {
	// Counts
	ElementCount int64
	ErrorCount   int64

	// Timing
	StartTime        time.Time
	EndTime          time.Time
	FirstElementTime time.Time
	LastElementTime  time.Time

	// Throughput
	ElementsPerSecond float64

	// Latency (time between elements)
	MinLatency time.Duration
	MaxLatency time.Duration
	AvgLatency time.Duration
}

// Meter creates a Stage that collects metrics about the traversal. The
// onComplete callback receives the final metrics when the upstream is
// exhausted or fails. A terminal that stops early never completes the
// traversal, so onComplete is not called then.
func Meter[T any](onComplete func(StreamMetrics)) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		var (
			metrics      StreamMetrics
			lastTime     time.Time
			totalLatency time.Duration
			latencyCount int64
		)
		return s.WithHooks(core.Hooks[T]{
			OnStart: func() {
				metrics.StartTime = time.Now()
				metrics.MinLatency = time.Duration(1<<63 - 1)
			},
			OnValue: func(T) {
				now := time.Now()
				metrics.ElementCount++
				if metrics.ElementCount == 1 {
					metrics.FirstElementTime = now
				}
				metrics.LastElementTime = now

				if !lastTime.IsZero() {
					latency := now.Sub(lastTime)
					metrics.MinLatency = min(metrics.MinLatency, latency)
					metrics.MaxLatency = max(metrics.MaxLatency, latency)
					totalLatency += latency
					latencyCount++
				}
				lastTime = now
			},
			OnError: func(error) { metrics.ErrorCount++ },
			OnComplete: func() {
				metrics.EndTime = time.Now()
				if latencyCount == 0 {
					metrics.MinLatency = 0
				} else {
					metrics.AvgLatency = totalLatency / time.Duration(latencyCount)
				}
				if seconds := metrics.EndTime.Sub(metrics.StartTime).Seconds(); metrics.ElementCount > 0 && seconds > 0 {
					metrics.ElementsPerSecond = float64(metrics.ElementCount) / seconds
				}
				if onComplete != nil {
					onComplete(metrics)
				}
			},
		})
	}
}

// LiveMetrics holds metrics that can be read from another goroutine while
// the traversal is running.
type LiveMetrics struct {
	elementCount atomic.Int64
	errorCount   atomic.Int64
	startTime    atomic.Int64 // Unix nano
	lastTime     atomic.Int64 // Unix nano
	done         atomic.Bool
}

// ElementCount returns the number of elements pulled so far.
func (m *LiveMetrics) ElementCount() int64 { return m.elementCount.Load() }

// ErrorCount returns the number of upstream failures seen.
func (m *LiveMetrics) ErrorCount() int64 { return m.errorCount.Load() }

// Done reports whether the traversal has ended.
func (m *LiveMetrics) Done() bool { return m.done.Load() }

// StartTime returns when the traversal started.
func (m *LiveMetrics) StartTime() time.Time {
	return time.Unix(0, m.startTime.Load())
}

// LastElementTime returns when the last element passed.
func (m *LiveMetrics) LastElementTime() time.Time {
	return time.Unix(0, m.lastTime.Load())
}

// Duration returns how long the traversal has been running.
func (m *LiveMetrics) Duration() time.Duration {
	start := m.startTime.Load()
	if start == 0 {
		return 0
	}
	return time.Since(time.Unix(0, start))
}

// ElementsPerSecond returns the current throughput.
func (m *LiveMetrics) ElementsPerSecond() float64 {
	seconds := m.Duration().Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(m.ElementCount()) / seconds
}

// MeterLive creates a Stage that updates metrics as elements pass.
func MeterLive[T any](metrics *LiveMetrics) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.WithHooks(core.Hooks[T]{
			OnStart: func() { metrics.startTime.Store(time.Now().UnixNano()) },
			OnValue: func(T) {
				metrics.elementCount.Add(1)
				metrics.lastTime.Store(time.Now().UnixNano())
			},
			OnError:    func(error) { metrics.errorCount.Add(1) },
			OnComplete: func() { metrics.done.Store(true) },
		})
	}
}

// ProgressReport holds information for progress reporting.
type ProgressReport struct {
	Processed int64
	Total     int64 // -1 if unknown
	Percent   float64
	Elapsed   time.Duration
	Remaining time.Duration // Estimated, -1 if unknown
}

// Progress creates a Stage that reports progress. Pass the expected total
// if known, otherwise -1. A report is made when at least interval has passed
// since the previous one, and once more when the traversal completes. An
// interval of zero reports only on completion.
func Progress[T any](total int64, interval time.Duration, onProgress func(ProgressReport)) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		var processed int64
		var start, lastReport time.Time

		report := func() {
			elapsed := time.Since(start)
			r := ProgressReport{
				Processed: processed,
				Total:     total,
				Elapsed:   elapsed,
				Remaining: -1,
			}
			if total > 0 {
				r.Percent = float64(processed) / float64(total) * 100
				if processed > 0 && elapsed > 0 {
					rate := float64(processed) / elapsed.Seconds()
					r.Remaining = time.Duration(float64(total-processed) / rate * float64(time.Second))
				}
			}
			if onProgress != nil {
				onProgress(r)
			}
		}

		return s.WithHooks(core.Hooks[T]{
			OnStart: func() {
				start = time.Now()
				lastReport = start
			},
			OnValue: func(T) {
				processed++
				if interval > 0 && time.Since(lastReport) >= interval {
					report()
					lastReport = time.Now()
				}
			},
			OnComplete: report,
		})
	}
}

// DebugEvent identifies a point in a traversal's lifecycle.
type DebugEvent int

const (
	DebugEventStart DebugEvent = iota
	DebugEventValue
	DebugEventError
	DebugEventComplete
)

func (e DebugEvent) String() string {
	switch e {
	case DebugEventStart:
		return "start"
	case DebugEventValue:
		return "value"
	case DebugEventError:
		return "error"
	case DebugEventComplete:
		return "complete"
	}
	return "unknown"
}

// DebugInfo contains information about a debug event.
type DebugInfo[T any] struct {
	Event     DebugEvent
	Value     T
	Error     error
	Timestamp time.Time
	Index     int64 // Elements seen before this event
}

// Debug creates a Stage that reports every lifecycle event to handler.
func Debug[T any](handler func(DebugInfo[T])) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		var index int64
		emit := func(event DebugEvent, v T, err error) {
			handler(DebugInfo[T]{Event: event, Value: v, Error: err, Timestamp: time.Now(), Index: index})
		}
		var zero T
		return s.WithHooks(core.Hooks[T]{
			OnStart: func() { emit(DebugEventStart, zero, nil) },
			OnValue: func(v T) {
				emit(DebugEventValue, v, nil)
				index++
			},
			OnError:    func(err error) { emit(DebugEventError, zero, err) },
			OnComplete: func() { emit(DebugEventComplete, zero, nil) },
		})
	}
}

// RateMeter tracks the rate of elements per second over a sliding window.
// It is safe for concurrent use, so one meter can be shared by sequences
// traversed on different goroutines.
type RateMeter struct {
	mu         sync.Mutex
	window     time.Duration
	counts     []int64
	times      []time.Time
	totalCount int64
}

// NewRateMeter creates a rate meter with the given window size.
func NewRateMeter(window time.Duration) *RateMeter {
	return &RateMeter{window: window}
}

// Add records count new elements.
func (r *RateMeter) Add(count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.counts = append(r.counts, count)
	r.times = append(r.times, now)
	r.totalCount += count

	cutoff := now.Add(-r.window)
	for len(r.times) > 0 && r.times[0].Before(cutoff) {
		r.totalCount -= r.counts[0]
		r.counts = r.counts[1:]
		r.times = r.times[1:]
	}
}

// Rate returns the current rate per second.
func (r *RateMeter) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.times) == 0 {
		return 0
	}
	seconds := time.Since(r.times[0]).Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(r.totalCount) / seconds
}

// TotalCount returns the count within the window.
func (r *RateMeter) TotalCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalCount
}

// MeterRate creates a Stage that feeds every element into meter.
func MeterRate[T any](meter *RateMeter) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.WithHooks(core.Hooks[T]{OnValue: func(T) { meter.Add(1) }})
	}
}

// Histogram tracks the distribution of values. It is safe for concurrent
// use.
type Histogram[T comparable] struct {
	mu     sync.RWMutex
	counts map[T]int64
	total  int64
}

// NewHistogram creates an empty histogram.
func NewHistogram[T comparable]() *Histogram[T] {
	return &Histogram[T]{counts: make(map[T]int64)}
}

// Add records a value.
func (h *Histogram[T]) Add(value T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[value]++
	h.total++
}

// Count returns the count for value.
func (h *Histogram[T]) Count(value T) int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.counts[value]
}

// Total returns the total count.
func (h *Histogram[T]) Total() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Counts returns a copy of all counts.
func (h *Histogram[T]) Counts() map[T]int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.counts)
}

// MeterHistogram creates a Stage that records every element in histogram.
func MeterHistogram[T comparable](histogram *Histogram[T]) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.WithHooks(core.Hooks[T]{OnValue: histogram.Add})
	}
}
