package core

import (
	"errors"
	"slices"
	"testing"
)

func equalWindows[T comparable](a, b [][]T) bool {
	return slices.EqualFunc(a, b, func(x, y []T) bool { return slices.Equal(x, y) })
}

func TestSlidingWindow(t *testing.T) {
	tests := []struct {
		name       string
		input      []int
		size, step int
		want       [][]int
	}{
		{
			name:  "step one",
			input: []int{1, 2, 3, 4, 5, 6},
			size:  3, step: 1,
			want: [][]int{{1, 2, 3}, {2, 3, 4}, {3, 4, 5}, {4, 5, 6}},
		},
		{
			name:  "step equals size",
			input: []int{1, 2, 3, 4, 5, 6},
			size:  3, step: 3,
			want: [][]int{{1, 2, 3}, {4, 5, 6}},
		},
		{
			name:  "step exceeds size",
			input: []int{1, 2, 3, 1, 2, 3, 1, 2, 3},
			size:  2, step: 3,
			want: [][]int{{1, 2}, {1, 2}, {1, 2}},
		},
		{
			name:  "trailing partial window",
			input: []int{1, 2, 3, 4, 5},
			size:  3, step: 3,
			want: [][]int{{1, 2, 3}, {4, 5}},
		},
		{
			name:  "shorter than size",
			input: []int{1, 2},
			size:  5, step: 1,
			want: [][]int{{1, 2}},
		},
		{
			name:  "empty",
			input: nil,
			size:  2, step: 1,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustSlice(t, SlidingWindow(FromSlice(tt.input), tt.size, tt.step))
			if !equalWindows(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlidingWindowInvalid(t *testing.T) {
	for _, shape := range [][2]int{{0, 1}, {1, 0}, {-2, 1}, {2, -1}} {
		pulled := 0
		s := SlidingWindow(countingSource([]int{1, 2}, &pulled), shape[0], shape[1])
		_, err := s.ToSlice()
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("SlidingWindow(%d, %d) error = %v, want ErrInvalidArgument", shape[0], shape[1], err)
		}
		if pulled != 0 {
			t.Errorf("SlidingWindow(%d, %d) pulled %d elements", shape[0], shape[1], pulled)
		}
	}
}

func TestSlidingWindowIndependentSlices(t *testing.T) {
	got := mustSlice(t, SlidingWindow1(Of(1, 2, 3, 4), 2))
	got[0][1] = 99
	if got[1][0] != 2 {
		t.Errorf("windows share storage: %v", got)
	}
}

func TestSample(t *testing.T) {
	tests := []struct {
		step int
		want []int
	}{
		{1, []int{1, 2, 3, 4, 5, 6, 7}},
		{2, []int{1, 3, 5, 7}},
		{3, []int{1, 4, 7}},
		{10, []int{1}},
	}
	for _, tt := range tests {
		got := mustSlice(t, Of(1, 2, 3, 4, 5, 6, 7).Sample(tt.step))
		if !slices.Equal(got, tt.want) {
			t.Errorf("Sample(%d) = %v, want %v", tt.step, got, tt.want)
		}
	}

	if _, err := Of(1).Sample(0).ToSlice(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Sample(0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestSlidingWindow1(t *testing.T) {
	got := mustSlice(t, SlidingWindow1(Of(1, 2, 3, 4), 3))
	want := [][]int{{1, 2, 3}, {2, 3, 4}}
	if !equalWindows(got, want) {
		t.Errorf("SlidingWindow1(3) = %v, want %v", got, want)
	}
}

func TestSamplePullsOnlyWhatItSkips(t *testing.T) {
	pulled := 0
	src := countingSource([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, &pulled)
	got := mustSlice(t, src.Sample(3).Limit(2))
	if !slices.Equal(got, []int{1, 4}) {
		t.Errorf("Sample(3).Limit(2) = %v, want [1 4]", got)
	}
	if pulled != 6 {
		t.Errorf("pulled %d elements, want 6", pulled)
	}
}

func TestSampleUpstreamError(t *testing.T) {
	boom := errors.New("boom")
	_, err := failAfter([]int{1, 2, 3}, boom).Sample(2).ToSlice()
	if !errors.Is(err, boom) {
		t.Errorf("Sample over failing upstream error = %v, want %v", err, boom)
	}
}

func TestChunkBy(t *testing.T) {
	t.Run("groups consecutive runs", func(t *testing.T) {
		got := mustSlice(t, ChunkBy(Of(1, 1, 2, 2, 2, 3, 1), Identity[int]()))
		want := [][]int{{1, 1}, {2, 2, 2}, {3}, {1}}
		if !equalWindows(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("by parity", func(t *testing.T) {
		got := mustSlice(t, ChunkBy(Of(2, 4, 1, 3, 6), Fn(isEven)))
		want := [][]int{{2, 4}, {1, 3}, {6}}
		if !equalWindows(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := mustSlice(t, ChunkBy(Empty[int](), Identity[int]())); got != nil {
			t.Errorf("got %v", got)
		}
	})

	t.Run("classifier applied once per element", func(t *testing.T) {
		calls := 0
		mustSlice(t, ChunkBy(Of(1, 1, 2, 3), func(v int) (int, error) {
			calls++
			return v, nil
		}))
		if calls != 4 {
			t.Errorf("classifier called %d times, want 4", calls)
		}
	})

	t.Run("first chunk available before upstream ends", func(t *testing.T) {
		pulled := 0
		it := ChunkBy(countingSource([]int{1, 1, 2, 3, 4}, &pulled), Identity[int]()).Iterator()
		if chunk := it.Next(); !slices.Equal(chunk, []int{1, 1}) {
			t.Errorf("first chunk = %v", chunk)
		}
		if pulled != 3 {
			t.Errorf("pulled %d elements, want 3", pulled)
		}
	})
}
