package observe

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/min-seq/seq/core"
)

// Instrument names recorded by Instrument.
const (
	ElementsMetric = "seq.elements"
	ErrorsMetric   = "seq.errors"
	DurationMetric = "seq.duration"
)

// StageAttribute is the attribute key carrying the stage name.
const StageAttribute = attribute.Key("seq.stage")

// Instrument creates a Stage recording OpenTelemetry measurements on meter:
// a counter of elements passed, a counter of upstream failures and a
// histogram of traversal durations in seconds. Every measurement carries the
// seq.stage attribute plus any set with WithAttributes.
//
// The instruments are created once, so the returned Stage can be applied to
// many sequences.
func Instrument[T any](meter metric.Meter, opts ...Option) (core.Stage[T, T], error) {
	cfg := newConfig(opts)

	elements, err := meter.Int64Counter(ElementsMetric,
		metric.WithDescription("Number of elements pulled through the stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", ElementsMetric, err)
	}

	failures, err := meter.Int64Counter(ErrorsMetric,
		metric.WithDescription("Number of traversals that failed upstream of the stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", ErrorsMetric, err)
	}

	duration, err := meter.Float64Histogram(DurationMetric,
		metric.WithDescription("Duration of traversals in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", DurationMetric, err)
	}

	attrs := append([]attribute.KeyValue{StageAttribute.String(cfg.name)}, cfg.attributes...)
	set := metric.WithAttributeSet(attribute.NewSet(attrs...))
	ctx := cfg.ctx

	return func(s core.Sequence[T]) core.Sequence[T] {
		var start time.Time
		return s.WithHooks(core.Hooks[T]{
			OnStart: func() { start = time.Now() },
			OnValue: func(T) { elements.Add(ctx, 1, set) },
			OnError: func(error) { failures.Add(ctx, 1, set) },
			OnComplete: func() {
				duration.Record(ctx, time.Since(start).Seconds(), set)
			},
		})
	}, nil
}
