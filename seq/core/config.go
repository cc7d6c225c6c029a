package core

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// MaxArraySize is the default upper bound on the number of elements ToArray
// will materialize.
const MaxArraySize = math.MaxInt32 - 8

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the settings of materializing terminal operations.
type Config struct {
	MaxArraySize int `validate:"gt=0"`
}

// Option is a functional option for configuring terminal operations.
type Option func(*Config)

// WithMaxArraySize lowers (or raises) the capacity limit of ToArray.
func WithMaxArraySize(n int) Option {
	return func(c *Config) {
		c.MaxArraySize = n
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		MaxArraySize: MaxArraySize,
	}
}

// applyOptions applies functional options to the default config and
// validates the result.
func applyOptions(opts ...Option) (Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, cfg.Validate()
}

// WindowConfig describes a sliding window: Size elements per window, the
// window start advancing by Step elements each time.
type WindowConfig struct {
	Size int `validate:"gt=0"`
	Step int `validate:"gt=0"`
}

// Validate reports whether the window shape is usable.
func (c WindowConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: window size and step must be positive (size=%d, step=%d): %w",
			ErrInvalidArgument, c.Size, c.Step, err)
	}
	return nil
}
