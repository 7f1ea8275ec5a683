package interpolate

import (
	"fmt"
)

// Linear is a linear interpolator.
type Linear struct {
	xs   searcher
	vals []float64
}

// NewLinear creates a linear interpolator for a sequence of strictly
// increasing or strictly decreasing points, xs, which take on the values
// given by vals.
//
// Lookups are O(1) for nearly uniform xs and O(log |xs|) otherwise. xs and
// vals must not be modified throughout the lifetime of the Linear.
func NewLinear(xs, vals []float64) *Linear {
	if len(xs) != len(vals) {
		panic(fmt.Sprintf(
			"len(xs) = %d, but len(vals) = %d", len(xs), len(vals),
		))
	}
	lin := &Linear{}
	lin.xs.init(xs)
	lin.vals = vals
	return lin
}

// Eval returns the interpolated value at x.
//
// Eval panics if called on a value outside the range of the supplied points.
// Use Contains or EvalClamped if x may be out of range.
func (lin *Linear) Eval(x float64) float64 {
	if !lin.xs.contains(x) {
		panic(fmt.Sprintf(
			"Point %g given to Linear.Eval() out of bounds [%g, %g].",
			x, lin.xs.val(0), lin.xs.val(len(lin.vals)-1),
		))
	}
	return lin.eval(x)
}

func (lin *Linear) eval(x float64) float64 {
	i1 := lin.xs.search(x)
	i2 := i1 + 1
	x1, x2 := lin.xs.val(i1), lin.xs.val(i2)
	v1, v2 := lin.vals[i1], lin.vals[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}

// EvalClamped returns the interpolated value at x. Points below the range of
// the supplied points return below and points above it take the value of the
// last point.
func (lin *Linear) EvalClamped(x, below float64) float64 {
	n := len(lin.vals)
	first, last := lin.xs.val(0), lin.xs.val(n-1)
	if lin.xs.incr {
		if x < first {
			return below
		} else if x > last {
			return lin.vals[n-1]
		}
	} else {
		if x > first {
			return below
		} else if x < last {
			return lin.vals[n-1]
		}
	}
	return lin.eval(x)
}

// Contains returns true if x is inside the range of the supplied points.
func (lin *Linear) Contains(x float64) bool { return lin.xs.contains(x) }

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = lin.Eval(x)
	}
	return out[0]
}
