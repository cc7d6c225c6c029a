package core

import "slices"

// SlidingWindow yields windows of up to size consecutive elements, the
// window start advancing by step elements each time. While upstream elements
// remain a window is produced, so the final window may be shorter than size.
// When step exceeds size, the step-size elements between windows are
// consumed and discarded.
//
// Each window is a fresh slice the caller may keep. Non-positive size or step
// is reported as ErrInvalidArgument when the stage is first pulled.
func SlidingWindow[T any](s Sequence[T], size, step int) Sequence[[]T] {
	if err := (WindowConfig{Size: size, Step: step}).Validate(); err != nil {
		return Fail[[]T](err)
	}

	up := s.Iterator()
	queue := make([]T, 0, size)
	return New[[]T](Fuse(func() ([]T, bool, error) {
		if !up.HasNext() {
			return nil, false, up.Err()
		}
		for len(queue) < size && up.HasNext() {
			queue = append(queue, up.Next())
		}
		if err := up.Err(); err != nil {
			return nil, false, err
		}

		window := slices.Clone(queue)
		drop := min(step, len(queue))
		queue = append(queue[:0], queue[drop:]...)
		for skipped := size; skipped < step && up.HasNext(); skipped++ {
			up.Next()
		}
		return window, true, nil
	}))
}

// SlidingWindow1 is SlidingWindow with a step of 1.
func SlidingWindow1[T any](s Sequence[T], size int) Sequence[[]T] {
	return SlidingWindow(s, size, 1)
}

// Sample yields the first element and then every step-th element after it,
// behaving as a window of one advanced by step. A non-positive step is
// reported as ErrInvalidArgument.
func (s Sequence[T]) Sample(step int) Sequence[T] {
	if err := (WindowConfig{Size: 1, Step: step}).Validate(); err != nil {
		return Fail[T](err)
	}

	up := s.Iterator()
	return New[T](Fuse(func() (T, bool, error) {
		value, ok, err := pull(up)
		if !ok {
			return value, false, err
		}
		for skipped := 1; skipped < step && up.HasNext(); skipped++ {
			up.Next()
		}
		return value, true, nil
	}))
}

// ChunkBy splits the sequence into runs of consecutive elements sharing the
// same classifier key. Each run is yielded once the first element of the
// next run, or the end of the upstream, is seen; that lookahead element is
// held for the next chunk. classifier is applied once per element.
func ChunkBy[T any, K comparable](s Sequence[T], classifier Function[T, K]) Sequence[[]T] {
	up := s.Iterator()
	var (
		pending    T
		pendingKey K
		hasPending bool
	)
	return New[[]T](Fuse(func() ([]T, bool, error) {
		if !hasPending {
			value, ok, err := pull(up)
			if !ok {
				return nil, false, err
			}
			key, err := classifier(value)
			if err != nil {
				return nil, false, err
			}
			pending, pendingKey, hasPending = value, key, true
		}

		key := pendingKey
		chunk := []T{pending}
		hasPending = false
		for {
			value, ok, err := pull(up)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				break
			}
			next, err := classifier(value)
			if err != nil {
				return nil, false, err
			}
			if next != key {
				pending, pendingKey, hasPending = value, next, true
				break
			}
			chunk = append(chunk, value)
		}
		return chunk, true, nil
	}))
}
