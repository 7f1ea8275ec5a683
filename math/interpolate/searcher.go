package interpolate

import (
	"fmt"
)

// searcher finds the interval of a sorted sequence that contains a point.
type searcher struct {
	xs   []float64
	incr bool

	// Usually the input data is close to uniform. This is our estimate of
	// the point spacing.
	dx float64
}

func (s *searcher) init(xs []float64) {
	if len(xs) < 2 {
		panic(fmt.Sprintf("Need at least two points, got %d.", len(xs)))
	}

	s.xs = xs
	s.incr = xs[0] < xs[1]
	for i := 0; i < len(xs)-1; i++ {
		if (xs[i+1] > xs[i]) != s.incr || xs[i+1] == xs[i] {
			panic("Points given to searcher are not strictly monotonic.")
		}
	}
	s.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
}

// search returns the index of the last point which is not past x, so that
// x lies in [xs[i], xs[i+1]]. x must be inside the range of the points.
func (s *searcher) search(x float64) int {
	// Guess under the assumption of uniform spacing.
	guess := int((x - s.xs[0]) / s.dx)
	if guess >= 0 && guess < len(s.xs)-1 &&
		(s.xs[guess] <= x == s.incr) &&
		(s.xs[guess+1] >= x == s.incr) {

		return guess
	}

	// Binary search.
	lo, hi := 0, len(s.xs)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if s.incr == (x >= s.xs[mid]) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func (s *searcher) val(i int) float64 { return s.xs[i] }

func (s *searcher) contains(x float64) bool {
	lo, hi := s.xs[0], s.xs[len(s.xs)-1]
	if !s.incr {
		lo, hi = hi, lo
	}
	return x >= lo && x <= hi
}
