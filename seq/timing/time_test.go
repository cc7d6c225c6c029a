package timing_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/lguimbarda/min-seq/seq"
	"github.com/lguimbarda/min-seq/seq/timing"
)

var errBoom = errors.New("boom")

func TestStamped(t *testing.T) {
	before := time.Now()
	got, err := timing.Stamped[string]().Apply(seq.Of("a", "b")).ToSlice()
	if err != nil || len(got) != 2 {
		t.Fatalf("got %v, %v", got, err)
	}
	if got[0].Value != "a" || got[0].Timestamp.Before(before) || got[1].Timestamp.Before(got[0].Timestamp) {
		t.Errorf("got %+v", got)
	}
}

func TestElapsed(t *testing.T) {
	slow := timing.Delay[int](5 * time.Millisecond).Apply(seq.Of(1, 2))
	got, err := timing.Elapsed[int]().Apply(slow).ToSlice()
	if err != nil || len(got) != 2 {
		t.Fatalf("got %v, %v", got, err)
	}
	for i, item := range got {
		if item.Value != i+1 || item.Interval < 5*time.Millisecond {
			t.Errorf("item %d = %+v", i, item)
		}
	}

	if _, err := timing.Elapsed[int]().Apply(seq.FromError[int](errBoom)).ToSlice(); !errors.Is(err, errBoom) {
		t.Errorf("error = %v", err)
	}
}

func TestDelayWhen(t *testing.T) {
	start := time.Now()
	got, err := timing.DelayWhen(func(n int) time.Duration {
		return time.Duration(n) * time.Millisecond
	}).Apply(seq.Of(0, 10, -5)).ToSlice()
	if err != nil || !slices.Equal(got, []int{0, 10, -5}) {
		t.Fatalf("got %v, %v", got, err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("elapsed %v, want at least 10ms", elapsed)
	}
}

func TestDelayIsLazy(t *testing.T) {
	start := time.Now()
	delayed := timing.Delay[int](50 * time.Millisecond).Apply(seq.Of(1, 2, 3))
	if time.Since(start) > 10*time.Millisecond {
		t.Error("building the pipeline waited")
	}
	if _, err := delayed.FindFirst(); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 140*time.Millisecond {
		t.Errorf("FindFirst waited %v, want a single delay", elapsed)
	}
}

func TestRateLimit(t *testing.T) {
	start := time.Now()
	got, err := timing.RateLimit[int](2, 20*time.Millisecond).Apply(seq.Range(0, 5)).ToSlice()
	if err != nil || !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("got %v, %v", got, err)
	}
	// Five elements at two per window need three windows.
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("elapsed %v, want at least 40ms", elapsed)
	}
}

func TestThrottle(t *testing.T) {
	got, err := timing.Throttle[int](time.Hour).Apply(seq.Of(1, 2, 3)).ToSlice()
	if err != nil || !slices.Equal(got, []int{1}) {
		t.Errorf("got %v, %v", got, err)
	}

	spaced := timing.Delay[int](3 * time.Millisecond).Apply(seq.Of(1, 2, 3))
	if got, _ := timing.Throttle[int](time.Nanosecond).Apply(spaced).ToSlice(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("spaced elements dropped: %v", got)
	}
}

func TestTimeout(t *testing.T) {
	slow := timing.Delay[int](10 * time.Millisecond).Apply(seq.Range(0, 100))
	got, err := timing.Timeout[int](25 * time.Millisecond).Apply(slow).ToSlice()
	if !errors.Is(err, timing.ErrTimeout) {
		t.Fatalf("error = %v (got %v)", err, got)
	}

	errSlow := errors.New("too slow")
	_, err = timing.TimeoutWithError[int](25*time.Millisecond, errSlow).Apply(slow).ToSlice()
	if !errors.Is(err, errSlow) {
		t.Errorf("error = %v", err)
	}

	fast, err := timing.Timeout[int](time.Second).Apply(seq.Of(1, 2)).ToSlice()
	if err != nil || !slices.Equal(fast, []int{1, 2}) {
		t.Errorf("got %v, %v", fast, err)
	}
}

func TestInterval(t *testing.T) {
	start := time.Now()
	got, err := timing.Interval(2 * time.Millisecond).Limit(3).ToSlice()
	if err != nil || !slices.Equal(got, []int{0, 1, 2}) {
		t.Fatalf("got %v, %v", got, err)
	}
	if elapsed := time.Since(start); elapsed < 6*time.Millisecond {
		t.Errorf("elapsed %v", elapsed)
	}
}
