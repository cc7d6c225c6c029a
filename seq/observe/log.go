package observe

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lguimbarda/min-seq/seq/core"
)

// Log creates a Stage that writes the traversal to logger: a line when the
// first element is requested, one per element, one for an upstream failure
// (always at error level) and one on completion with the element count.
// Each traversal gets a fresh traversal_id so its lines can be correlated.
//
//	logged := seq.Pipe(source, observe.Log[Order](log.Logger, observe.WithName("orders")))
func Log[T any](logger zerolog.Logger, opts ...Option) core.Stage[T, T] {
	cfg := newConfig(opts)
	return func(s core.Sequence[T]) core.Sequence[T] {
		var (
			l      zerolog.Logger
			start  time.Time
			count  int64
			failed bool
		)
		return s.WithHooks(core.Hooks[T]{
			OnStart: func() {
				l = logger.With().
					Str("stage", cfg.name).
					Str("traversal_id", uuid.NewString()).
					Logger()
				start = time.Now()
				l.WithLevel(cfg.level).Msg("traversal started")
			},
			OnValue: func(v T) {
				l.WithLevel(cfg.level).Int64("index", count).Interface("value", v).Msg("element")
				count++
			},
			OnError: func(err error) {
				failed = true
				l.Error().Err(err).Int64("count", count).Dur("elapsed", time.Since(start)).Msg("traversal failed")
			},
			OnComplete: func() {
				if failed {
					return
				}
				l.WithLevel(cfg.level).Int64("count", count).Dur("elapsed", time.Since(start)).Msg("traversal completed")
			},
		})
	}
}
