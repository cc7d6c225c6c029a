// Package benchmarks compares min-seq with popular Go collection and stream
// processing libraries. Run with:
//
//	go test -bench=. -benchmem
package benchmarks

import (
	"strconv"
	"testing"
)

var sizes = []struct {
	name string
	n    int
}{
	{"Small", 100},
	{"Medium", 1_000},
	{"Large", 10_000},
}

// contender is one library's implementation of a benchmarked operation.
type contender[D any] struct {
	name string
	run  func(data D)
}

// compare runs every contender at every size as name/Size sub-benchmarks.
func compare[D any](b *testing.B, gen func(n int) D, contenders ...contender[D]) {
	for _, size := range sizes {
		data := gen(size.n)
		for _, c := range contenders {
			b.Run(c.name+"/"+size.name, func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					c.run(data)
				}
			})
		}
	}
}

// generateInts creates 0..n-1.
func generateInts(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return data
}

// generateStrings creates n strings where every value appears twice.
func generateStrings(n int) []string {
	data := make([]string, n)
	for i := range data {
		data[i] = strconv.Itoa(i / 2)
	}
	return data
}

// min-seq functions return an error; the other libraries take plain funcs.

func squareWithErr(x int) (int, error) { return x * x, nil }

func addWithErr(a, b int) (int, error) { return a + b, nil }

func square(x int) int { return x * x }

func isEven(x int) bool { return x%2 == 0 }

func add(a, b int) int { return a + b }
