// Package combine provides operators over several sequences at once:
// concatenation, zipping, interleaving, ordered merging and splitting one
// sequence into several readers.
package combine

import (
	"github.com/lguimbarda/min-seq/seq/core"
)

// Concat yields the elements of each sequence in turn. Later sequences are
// not pulled until the earlier ones are exhausted.
func Concat[T any](sequences ...core.Sequence[T]) core.Sequence[T] {
	iterators := iteratorsOf(sequences)
	return core.New[T](core.Fuse(func() (T, bool, error) {
		var zero T
		for len(iterators) > 0 {
			it := iterators[0]
			if it.HasNext() {
				return it.Next(), true, nil
			}
			if err := it.Err(); err != nil {
				return zero, false, err
			}
			iterators = iterators[1:]
		}
		return zero, false, nil
	}))
}

// ConcatAll flattens a sequence of sequences.
func ConcatAll[T any](sequences core.Sequence[core.Sequence[T]]) core.Sequence[T] {
	return core.FlatMap(sequences, core.Identity[core.Sequence[T]]())
}

// Zip pairs the elements of a and b, ending with the shorter one.
func Zip[A, B any](a core.Sequence[A], b core.Sequence[B]) core.Sequence[core.Pair[A, B]] {
	return ZipWith(a, b, core.PairOf[A, B])
}

// ZipWith combines the elements of a and b pairwise with combiner, ending
// with the shorter one. When a runs out first, b is not pulled again.
func ZipWith[A, B, C any](a core.Sequence[A], b core.Sequence[B], combiner func(A, B) C) core.Sequence[C] {
	left, right := a.Iterator(), b.Iterator()
	return core.New[C](core.Fuse(func() (C, bool, error) {
		var zero C
		if !left.HasNext() {
			return zero, false, left.Err()
		}
		if !right.HasNext() {
			return zero, false, right.Err()
		}
		return combiner(left.Next(), right.Next()), true, nil
	}))
}

// ZipLongest pairs the elements of a and b until both are exhausted. The
// side that ran out is reported as None.
func ZipLongest[A, B any](a core.Sequence[A], b core.Sequence[B]) core.Sequence[core.Pair[core.Optional[A], core.Optional[B]]] {
	left, right := a.Iterator(), b.Iterator()
	type pair = core.Pair[core.Optional[A], core.Optional[B]]
	return core.New[pair](core.Fuse(func() (pair, bool, error) {
		var p pair
		if left.HasNext() {
			p.Key = core.Some(left.Next())
		} else if err := left.Err(); err != nil {
			return p, false, err
		}
		if right.HasNext() {
			p.Value = core.Some(right.Next())
		} else if err := right.Err(); err != nil {
			return p, false, err
		}
		if p.Key.IsEmpty() && p.Value.IsEmpty() {
			return p, false, nil
		}
		return p, true, nil
	}))
}

// Interleave takes one element from each sequence in turn, dropping
// sequences as they run out.
func Interleave[T any](sequences ...core.Sequence[T]) core.Sequence[T] {
	iterators := iteratorsOf(sequences)
	next := 0
	return core.New[T](core.Fuse(func() (T, bool, error) {
		var zero T
		for len(iterators) > 0 {
			if next >= len(iterators) {
				next = 0
			}
			it := iterators[next]
			if it.HasNext() {
				next++
				return it.Next(), true, nil
			}
			if err := it.Err(); err != nil {
				return zero, false, err
			}
			iterators = append(iterators[:next], iterators[next+1:]...)
		}
		return zero, false, nil
	}))
}

// MergeSorted merges sequences that are each sorted by compare into one
// sorted sequence. Among equal heads the earlier sequence wins, so the merge
// is stable.
func MergeSorted[T any](compare core.Comparator[T], sequences ...core.Sequence[T]) core.Sequence[T] {
	iterators := iteratorsOf(sequences)
	heads := make([]T, len(iterators))
	loaded := make([]bool, len(iterators))
	return core.New[T](core.Fuse(func() (T, bool, error) {
		var zero T
		best := -1
		for i, it := range iterators {
			if !loaded[i] {
				if !it.HasNext() {
					if err := it.Err(); err != nil {
						return zero, false, err
					}
					continue
				}
				heads[i], loaded[i] = it.Next(), true
			}
			if best < 0 {
				best = i
				continue
			}
			n, err := compare(heads[i], heads[best])
			if err != nil {
				return zero, false, err
			}
			if n < 0 {
				best = i
			}
		}
		if best < 0 {
			return zero, false, nil
		}
		v := heads[best]
		heads[best], loaded[best] = zero, false
		return v, true, nil
	}))
}

// SequenceEqual reports whether a and b hold equal elements in the same
// order. Pulling stops at the first difference.
func SequenceEqual[T comparable](a, b core.Sequence[T]) (bool, error) {
	left, right := a.Iterator(), b.Iterator()
	for left.HasNext() {
		if !right.HasNext() || left.Next() != right.Next() {
			return false, right.Err()
		}
	}
	if err := left.Err(); err != nil {
		return false, err
	}
	if right.HasNext() {
		return false, nil
	}
	return true, right.Err()
}

// IfEmpty yields source, or alternative when source completes without
// elements.
func IfEmpty[T any](source, alternative core.Sequence[T]) core.Sequence[T] {
	up := source.Iterator()
	var fallback core.Iterator[T]
	emitted := false
	return core.New[T](core.Fuse(func() (T, bool, error) {
		var zero T
		if fallback == nil {
			if up.HasNext() {
				emitted = true
				return up.Next(), true, nil
			}
			if err := up.Err(); err != nil || emitted {
				return zero, false, err
			}
			fallback = alternative.Iterator()
		}
		if fallback.HasNext() {
			return fallback.Next(), true, nil
		}
		return zero, false, fallback.Err()
	}))
}

func iteratorsOf[T any](sequences []core.Sequence[T]) []core.Iterator[T] {
	iterators := make([]core.Iterator[T], len(sequences))
	for i, s := range sequences {
		iterators[i] = s.Iterator()
	}
	return iterators
}
