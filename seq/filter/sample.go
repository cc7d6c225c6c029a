package filter

import (
	"fmt"
	"math/rand/v2"

	"github.com/lguimbarda/min-seq/seq/core"
)

// DistinctUntilChanged creates a Stage that only yields an element when it
// differs from the previous one.
func DistinctUntilChanged[T comparable]() core.Stage[T, T] {
	return DistinctUntilChangedBy(func(v T) T { return v })
}

// DistinctUntilChangedBy creates a Stage that only yields an element when
// its key differs from the key of the previous element.
func DistinctUntilChangedBy[T any, K comparable](keyFn func(T) K) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		var lastKey K
		first := true
		return s.Filter(core.Pred(func(v T) bool {
			key := keyFn(v)
			if first || key != lastKey {
				first = false
				lastKey = key
				return true
			}
			return false
		}))
	}
}

// EveryNth creates a Stage that yields every nth element, starting from the
// first. A non-positive n fails with core.ErrInvalidArgument.
func EveryNth[T any](n int) core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		return s.Sample(n)
	}
}

// ReservoirSample creates a Stage that keeps a uniform random sample of k
// elements and yields it as a single slice once the upstream is exhausted.
// Pass a seeded rng for reproducible samples; nil uses the global source.
func ReservoirSample[T any](k int, rng *rand.Rand) core.Stage[T, []T] {
	return func(s core.Sequence[T]) core.Sequence[[]T] {
		if k <= 0 {
			return core.Fail[[]T](fmt.Errorf("%w: sample size %d", core.ErrInvalidArgument, k))
		}
		intN := rand.IntN
		if rng != nil {
			intN = rng.IntN
		}

		up := s.Iterator()
		done := false
		return core.New[[]T](core.Fuse(func() ([]T, bool, error) {
			if done {
				return nil, false, nil
			}
			done = true
			reservoir := make([]T, 0, k)
			for seen := 0; up.HasNext(); seen++ {
				v := up.Next()
				if seen < k {
					reservoir = append(reservoir, v)
				} else if j := intN(seen + 1); j < k {
					reservoir[j] = v
				}
			}
			if err := up.Err(); err != nil {
				return nil, false, err
			}
			return reservoir, true, nil
		}))
	}
}
