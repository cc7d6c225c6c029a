package core

import (
	"errors"
	"slices"
	"testing"
)

var errBoom = errors.New("boom")

// countingSource yields items, counting in *pulled how many the downstream
// actually took.
func countingSource[T any](items []T, pulled *int) Sequence[T] {
	return Map(FromSlice(items), func(v T) (T, error) {
		*pulled++
		return v, nil
	})
}

// failAfter yields items and then fails with err.
func failAfter[T any](items []T, err error) Sequence[T] {
	i := 0
	return New[T](Fuse(func() (T, bool, error) {
		if i < len(items) {
			v := items[i]
			i++
			return v, true, nil
		}
		var zero T
		return zero, false, err
	}))
}

func mustSlice[T any](t *testing.T, s Sequence[T]) []T {
	t.Helper()
	got, err := s.ToSlice()
	if err != nil {
		t.Fatalf("ToSlice() error = %v", err)
	}
	return got
}

func expectNoSuchElement(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoSuchElement) {
			t.Errorf("recovered %v, want error wrapping ErrNoSuchElement", r)
		}
	}()
	fn()
}

func TestIteratorProtocol(t *testing.T) {
	t.Run("repeated HasNext does not advance", func(t *testing.T) {
		pulled := 0
		it := countingSource([]int{1, 2, 3}, &pulled).Filter(Pred(func(v int) bool { return v > 1 })).Iterator()

		for range 5 {
			if !it.HasNext() {
				t.Fatal("HasNext() = false, want true")
			}
		}
		if pulled != 2 {
			t.Errorf("pulled %d elements, want 2", pulled)
		}
		if got := it.Next(); got != 2 {
			t.Errorf("Next() = %d, want 2", got)
		}
		if got := it.Next(); got != 3 {
			t.Errorf("Next() = %d, want 3", got)
		}
		if it.HasNext() {
			t.Error("HasNext() = true after exhaustion")
		}
	})

	t.Run("Next without HasNext", func(t *testing.T) {
		it := Of("a", "b").Iterator()
		if got := it.Next(); got != "a" {
			t.Errorf("Next() = %q, want a", got)
		}
		if got := it.Next(); got != "b" {
			t.Errorf("Next() = %q, want b", got)
		}
	})

	t.Run("Next past the end panics", func(t *testing.T) {
		it := Of(1).Filter(Pred(func(int) bool { return true })).Iterator()
		it.Next()
		expectNoSuchElement(t, func() { it.Next() })
	})

	t.Run("exhaustion is permanent", func(t *testing.T) {
		calls := 0
		it := Fuse(func() (int, bool, error) {
			calls++
			return 0, false, nil
		})
		for range 3 {
			if it.HasNext() {
				t.Fatal("HasNext() = true, want false")
			}
		}
		if calls != 1 {
			t.Errorf("advancer called %d times, want 1", calls)
		}
	})

	t.Run("error is sticky", func(t *testing.T) {
		it := failAfter([]int{1}, errBoom).Iterator()
		it.Next()
		if it.HasNext() || it.HasNext() {
			t.Fatal("HasNext() = true after failure")
		}
		if !errors.Is(it.Err(), errBoom) {
			t.Errorf("Err() = %v, want %v", it.Err(), errBoom)
		}
	})
}

func TestZeroSequence(t *testing.T) {
	var s Sequence[int]
	if !s.IsZero() {
		t.Error("IsZero() = false for zero Sequence")
	}
	if s.Iterator().HasNext() {
		t.Error("zero Sequence has elements")
	}
	expectNoSuchElement(t, func() { s.Iterator().Next() })

	n, err := s.Filter(Pred(func(int) bool { return true })).Count()
	if err != nil || n != 0 {
		t.Errorf("Count() = %d, %v; want 0, nil", n, err)
	}
}

func TestAll(t *testing.T) {
	t.Run("yields every element", func(t *testing.T) {
		var got []int
		for v, err := range Of(1, 2, 3).All() {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got = append(got, v)
		}
		if !slices.Equal(got, []int{1, 2, 3}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("yields the error last", func(t *testing.T) {
		var got []int
		var gotErr error
		for v, err := range failAfter([]int{1, 2}, errBoom).All() {
			if err != nil {
				gotErr = err
				break
			}
			got = append(got, v)
		}
		if !slices.Equal(got, []int{1, 2}) || !errors.Is(gotErr, errBoom) {
			t.Errorf("got %v, %v", got, gotErr)
		}
	})

	t.Run("break stops pulling", func(t *testing.T) {
		pulled := 0
		for v := range countingSource([]int{1, 2, 3, 4}, &pulled).All() {
			if v == 2 {
				break
			}
		}
		if pulled != 2 {
			t.Errorf("pulled %d elements, want 2", pulled)
		}
	})
}

func TestStage(t *testing.T) {
	var double Transformer[int, int] = Stage[int, int](func(s Sequence[int]) Sequence[int] {
		return Map(s, Fn(func(v int) int { return v * 2 }))
	})
	got := mustSlice(t, double.Apply(Of(1, 2, 3)))
	if !slices.Equal(got, []int{2, 4, 6}) {
		t.Errorf("got %v", got)
	}
}

func TestLaziness(t *testing.T) {
	pulled := 0
	mapped := 0
	s := Map(countingSource([]int{1, 2, 3, 4, 5}, &pulled), func(v int) (int, error) {
		mapped++
		return v * 10, nil
	}).Filter(Pred(func(v int) bool { return v > 10 }))

	if pulled != 0 || mapped != 0 {
		t.Fatalf("building the pipeline pulled %d, mapped %d", pulled, mapped)
	}

	first, err := s.FindFirst()
	if err != nil {
		t.Fatalf("FindFirst() error = %v", err)
	}
	if v, _ := first.Get(); v != 20 {
		t.Errorf("FindFirst() = %v, want 20", first)
	}
	if pulled != 2 || mapped != 2 {
		t.Errorf("pulled %d, mapped %d; want 2, 2", pulled, mapped)
	}
}
