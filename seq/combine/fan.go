package combine

import (
	"github.com/lguimbarda/min-seq/seq/core"
)

// Broadcast creates a Stage that hands each element to every handler, in
// order, before passing it downstream.
func Broadcast[T any](handlers ...func(T)) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.Peek(core.Action(func(v T) {
			for _, h := range handlers {
				h(v)
			}
		}))
	}
}

// Tee splits a sequence into n readers that each see every element. The
// readers share one upstream cursor; elements pulled by one reader are
// buffered until every other reader has taken them, so a reader left far
// behind holds the gap in memory. The readers must be used from a single
// goroutine.
func Tee[T any](s core.Sequence[T], n int) []core.Sequence[T] {
	if n <= 0 {
		return nil
	}
	shared := &teeSource[T]{up: s.Iterator(), queues: make([][]T, n)}
	readers := make([]core.Sequence[T], n)
	for i := range readers {
		readers[i] = core.New[T](core.Fuse(shared.reader(i)))
	}
	return readers
}

// Partition splits a sequence into the elements matching the predicate and
// the rest. Both results read the same upstream through Tee.
func Partition[T any](s core.Sequence[T], predicate func(T) bool) (matched, unmatched core.Sequence[T]) {
	readers := Tee(s, 2)
	return readers[0].Filter(core.Pred(predicate)), readers[1].FilterNot(core.Pred(predicate))
}

type teeSource[T any] struct {
	up     core.Iterator[T]
	queues [][]T
}

// fill pulls one upstream element into every queue.
func (t *teeSource[T]) fill() bool {
	if !t.up.HasNext() {
		return false
	}
	v := t.up.Next()
	for i := range t.queues {
		t.queues[i] = append(t.queues[i], v)
	}
	return true
}

// reader returns the advance function of reader id. A reader reports the
// upstream error only after draining what was buffered before it.
func (t *teeSource[T]) reader(id int) core.Advancer[T] {
	return func() (T, bool, error) {
		var zero T
		if len(t.queues[id]) == 0 && !t.fill() {
			return zero, false, t.up.Err()
		}
		queue := t.queues[id]
		v := queue[0]
		queue[0] = zero
		t.queues[id] = queue[1:]
		return v, true, nil
	}
}
