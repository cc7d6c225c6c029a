package observe

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

type config struct {
	name       string
	level      zerolog.Level
	attributes []attribute.KeyValue
	ctx        context.Context
}

func newConfig(opts []Option) config {
	c := config{
		name:  "seq",
		level: zerolog.DebugLevel,
		ctx:   context.Background(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures Log and Instrument.
type Option func(*config)

// WithName sets the stage name. It becomes the "stage" field of log lines
// and the seq.stage attribute of recorded measurements.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLevel sets the level Log uses for per-element lines. Start and
// completion are logged at the same level; failures always at error level.
func WithLevel(level zerolog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithAttributes adds attributes to every measurement Instrument records.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(c *config) {
		c.attributes = append(c.attributes, attrs...)
	}
}

// WithContext sets the context passed to instrument recording calls.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}
