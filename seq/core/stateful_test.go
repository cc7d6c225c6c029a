package core

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

type version struct {
	major, minor int
}

func (v version) Compare(other version) int {
	if v.major != other.major {
		return v.major - other.major
	}
	return v.minor - other.minor
}

type celsius float64

type person struct {
	name string
	age  int
}

func TestSorted(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		got := mustSlice(t, Of(5, 3, 1, 4, 2).Sorted())
		if !slices.Equal(got, []int{1, 2, 3, 4, 5}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("named float type", func(t *testing.T) {
		got := mustSlice(t, Of[celsius](21.5, -3, 7).Sorted())
		if !slices.Equal(got, []celsius{-3, 7, 21.5}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("strings", func(t *testing.T) {
		got := mustSlice(t, Of("pear", "apple", "fig").Sorted())
		if !slices.Equal(got, []string{"apple", "fig", "pear"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("self-ordered type", func(t *testing.T) {
		got := mustSlice(t, Of(version{1, 10}, version{0, 9}, version{1, 2}).Sorted())
		want := []version{{0, 9}, {1, 2}, {1, 10}}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("unordered type fails at sort time", func(t *testing.T) {
		s := Of(person{"a", 1}, person{"b", 2}).Sorted()
		if _, err := s.ToSlice(); !errors.Is(err, ErrNotOrdered) {
			t.Errorf("error = %v, want ErrNotOrdered", err)
		}
	})

	t.Run("mixed dynamic types fail", func(t *testing.T) {
		if _, err := Of[any](1, "a").Sorted().ToSlice(); !errors.Is(err, ErrNotOrdered) {
			t.Errorf("error = %v, want ErrNotOrdered", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := mustSlice(t, Empty[int]().Sorted()); len(got) != 0 {
			t.Errorf("got %v", got)
		}
	})
}

func TestSortedFunc(t *testing.T) {
	people := []person{{"ann", 30}, {"bob", 25}, {"cid", 30}, {"dan", 25}}

	t.Run("stable", func(t *testing.T) {
		byAge := Order(func(a, b person) int { return a.age - b.age })
		got := mustSlice(t, FromSlice(people).SortedFunc(byAge))
		want := []person{{"bob", 25}, {"dan", 25}, {"ann", 30}, {"cid", 30}}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("reversed", func(t *testing.T) {
		got := mustSlice(t, Of(1, 3, 2).SortedFunc(Reversed(NaturalOrder[int]())))
		if !slices.Equal(got, []int{3, 2, 1}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("comparator error", func(t *testing.T) {
		failing := func(a, b int) (int, error) { return 0, errBoom }
		if _, err := Of(2, 1).SortedFunc(failing).ToSlice(); !errors.Is(err, errBoom) {
			t.Errorf("error = %v, want %v", err, errBoom)
		}
	})

	t.Run("nothing pulled until traversal", func(t *testing.T) {
		pulled := 0
		s := countingSource([]int{3, 1, 2}, &pulled).Sorted()
		if pulled != 0 {
			t.Fatalf("pulled %d before traversal", pulled)
		}
		first, _ := s.FindFirst()
		if v, _ := first.Get(); v != 1 || pulled != 3 {
			t.Errorf("first = %v, pulled %d", first, pulled)
		}
	})
}

func TestSortBy(t *testing.T) {
	got := mustSlice(t, SortBy(Of("ccc", "a", "bb", "dd"), Fn(func(s string) int { return len(s) })))
	want := []string{"a", "bb", "dd", "ccc"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	_, err := SortBy(Of("a"), func(string) (int, error) { return 0, errBoom }).ToSlice()
	if !errors.Is(err, errBoom) {
		t.Errorf("error = %v, want %v", err, errBoom)
	}
}

func TestDistinct(t *testing.T) {
	t.Run("keeps first occurrence in order", func(t *testing.T) {
		got := mustSlice(t, Of(3, 1, 3, 2, 1, 4).Distinct())
		if !slices.Equal(got, []int{3, 1, 2, 4}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("struct elements", func(t *testing.T) {
		got := mustSlice(t, Of(person{"a", 1}, person{"a", 1}, person{"b", 1}).Distinct())
		if len(got) != 2 {
			t.Errorf("got %v", got)
		}
	})

	t.Run("non-comparable elements", func(t *testing.T) {
		_, err := Of([]int{1}, []int{1}).Distinct().ToSlice()
		if !errors.Is(err, ErrNotComparable) {
			t.Errorf("error = %v, want ErrNotComparable", err)
		}
	})

	t.Run("distinct of", func(t *testing.T) {
		got := mustSlice(t, DistinctOf(Of("b", "a", "b", "c", "a")))
		if !slices.Equal(got, []string{"b", "a", "c"}) {
			t.Errorf("got %v", got)
		}
	})
}

func TestGroupBy(t *testing.T) {
	groups := mustSlice(t, GroupBy(Of("apple", "avocado", "banana", "blueberry", "cherry", "apricot"),
		Fn(func(s string) byte { return s[0] })))

	wantKeys := []byte{'a', 'b', 'c'}
	wantValues := [][]string{{"apple", "avocado", "apricot"}, {"banana", "blueberry"}, {"cherry"}}
	if len(groups) != len(wantKeys) {
		t.Fatalf("got %d groups, want %d", len(groups), len(wantKeys))
	}
	for i, g := range groups {
		if g.Key != wantKeys[i] || !slices.Equal(g.Value, wantValues[i]) {
			t.Errorf("group %d = %c:%v, want %c:%v", i, g.Key, g.Value, wantKeys[i], wantValues[i])
		}
	}

	t.Run("classifier error", func(t *testing.T) {
		_, err := GroupBy(Of(1), func(int) (string, error) { return "", errBoom }).ToSlice()
		if !errors.Is(err, errBoom) {
			t.Errorf("error = %v, want %v", err, errBoom)
		}
	})

	t.Run("upstream error", func(t *testing.T) {
		_, err := GroupBy(failAfter([]string{"x"}, errBoom), Fn(strings.ToUpper)).ToSlice()
		if !errors.Is(err, errBoom) {
			t.Errorf("error = %v, want %v", err, errBoom)
		}
	})
}
