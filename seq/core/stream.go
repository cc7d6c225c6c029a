// Package core defines the pull protocol spoken by every sequence stage,
// the Sequence handle wrapping a chain of stages, and the intermediate and
// terminal operations built on top of them.
//
// Evaluation is synchronous and lazy: nothing is pulled from a source until a
// terminal operation asks for it, each pull runs on the caller's stack, and no
// stage starts a goroutine.
//
// NOTE: this package must not import other seq packages.
package core

import "iter"

// Iterator is the pull protocol. HasNext reports whether another element is
// available and may be called any number of times before Next; Next returns
// that element and advances by exactly one. Once HasNext has reported false
// it keeps reporting false, and Err tells whether the sequence ended because
// a stage failed.
//
// Calling Next when HasNext is false is a usage error and panics with an
// error wrapping ErrNoSuchElement.
type Iterator[T any] interface {
	HasNext() bool
	Next() T
	Err() error
}

// Sequence is the handle over a lazily evaluated chain of stages.
// Intermediate operations return a new Sequence wrapping a new stage, and
// terminal operations drain the chain. A Sequence is single-owner and
// single-traversal: once drained it stays exhausted, and it must not be
// pulled from more than one goroutine.
//
// The zero Sequence is a valid, empty sequence.
type Sequence[T any] struct {
	it Iterator[T]
}

// New wraps an existing Iterator. The Sequence takes ownership of it.
func New[T any](it Iterator[T]) Sequence[T] {
	return Sequence[T]{it: it}
}

// Iterator returns the head of the stage chain.
func (s Sequence[T]) Iterator() Iterator[T] {
	if s.it == nil {
		return emptyIterator[T]{}
	}
	return s.it
}

// IsZero reports whether s is the zero (absent) Sequence.
func (s Sequence[T]) IsZero() bool {
	return s.it == nil
}

// All adapts the sequence to a range-over-func iterator. Each element is
// yielded with a nil error; if the chain failed, a final zero value is
// yielded together with the error.
func (s Sequence[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := s.Iterator()
		for it.HasNext() {
			if !yield(it.Next(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Transformer turns a Sequence of IN into a Sequence of OUT. Operators that
// live outside this package are Transformers, so they compose with each
// other the same way the built-in methods chain.
type Transformer[IN, OUT any] interface {
	Apply(Sequence[IN]) Sequence[OUT]
}

// Stage is a function implementing Transformer.
type Stage[IN, OUT any] func(Sequence[IN]) Sequence[OUT]

// Apply implements Transformer.
func (st Stage[IN, OUT]) Apply(s Sequence[IN]) Sequence[OUT] {
	return st(s)
}
