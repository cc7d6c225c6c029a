package seq

import "github.com/lguimbarda/min-seq/seq/core"

// Through chains two transformers together, creating a new transformer
// that first applies t1 and then t2 to the sequence.
func Through[IN, MID, OUT any](t1 Transformer[IN, MID], t2 Transformer[MID, OUT]) Transformer[IN, OUT] {
	return core.Stage[IN, OUT](func(s Sequence[IN]) Sequence[OUT] {
		return t2.Apply(t1.Apply(s))
	})
}

// Chain composes multiple transformers of the same type into a single transformer.
// Transformers are applied in order from left to right.
// If no transformers are provided, returns an identity transformer.
func Chain[T any](transformers ...Transformer[T, T]) Transformer[T, T] {
	return core.Stage[T, T](func(s Sequence[T]) Sequence[T] {
		return Pipe(s, transformers...)
	})
}

// Pipe applies a series of transformers to a sequence, returning the final sequence.
func Pipe[T any](source Sequence[T], transformers ...Transformer[T, T]) Sequence[T] {
	result := source
	for _, t := range transformers {
		result = t.Apply(result)
	}
	return result
}

// Apply is a helper to apply a single transformer to a sequence.
// Equivalent to transformer.Apply(s) but reads left-to-right.
func Apply[IN, OUT any](s Sequence[IN], transformer Transformer[IN, OUT]) Sequence[OUT] {
	return transformer.Apply(s)
}

// Custom hands the whole sequence to fn and returns whatever it produces,
// a further sequence or a terminal result.
func Custom[T, R any](s Sequence[T], fn func(Sequence[T]) R) R {
	return fn(s)
}
