package interpolate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func value(x float64) float64 {
	return 2*x + 3
}

func TestLinearUniform(t *testing.T) {
	n := 11
	step := 0.1
	xs, vals := make([]float64, n), make([]float64, n)
	for i := range xs {
		xs[i] = float64(i) * step
		vals[i] = value(xs[i])
	}
	interp := NewLinear(xs, vals)

	// points on the grid should work
	assert.InDelta(t, value(0.5), interp.Eval(0.5), 1e-12, "on grid")
	// points just off the grid should also work
	assert.InDelta(t, value(0.51), interp.Eval(0.51), 1e-12, "nearby")
	// points on the edge of the grid should work
	assert.InDelta(t, value(0), interp.Eval(0), 1e-12, "grid edge")
	assert.InDelta(t, value(1), interp.Eval(1), 1e-12, "far grid edge")
}

func TestLinearNonUniform(t *testing.T) {
	xs := []float64{0, 1, 1.5, 2, 3, 40, 50}
	vals := []float64{2, 1, 1, 0, 2, 3, 1}
	interp := NewLinear(xs, vals)

	table := []struct {
		x, val float64
	}{
		{0, 2}, {0.5, 1.5}, {1.25, 1}, {1.75, 0.5}, {2.5, 1},
		{21.5, 2.5}, {45, 2}, {50, 1},
	}
	for i, test := range table {
		if v := interp.Eval(test.x); math.Abs(v-test.val) > 1e-12 {
			t.Errorf("%d) Eval(%g) = %g, not %g", i, test.x, v, test.val)
		}
	}

	out := interp.EvalAll([]float64{0.5, 45})
	assert.InDeltaSlice(t, []float64{1.5, 2}, out, 1e-12)
}

func TestLinearDecreasing(t *testing.T) {
	interp := NewLinear([]float64{3, 2, 0}, []float64{30, 20, 0})
	assert.InDelta(t, 25.0, interp.Eval(2.5), 1e-12)
	assert.InDelta(t, 5.0, interp.Eval(0.5), 1e-12)
	assert.Equal(t, -1.0, interp.EvalClamped(4, -1))
	assert.Equal(t, 0.0, interp.EvalClamped(-1, -1))
}

func TestLinearClamped(t *testing.T) {
	interp := NewLinear([]float64{1, 2, 4}, []float64{10, 20, 5})
	assert.Equal(t, 0.0, interp.EvalClamped(0.5, 0))
	assert.Equal(t, 15.0, interp.EvalClamped(1.5, 0))
	assert.Equal(t, 5.0, interp.EvalClamped(100, 0))
	assert.True(t, interp.Contains(4))
	assert.False(t, interp.Contains(4.01))
	assert.Panics(t, func() { interp.Eval(0.5) })
}

func TestNewLinearPanics(t *testing.T) {
	assert.Panics(t, func() { NewLinear([]float64{1, 2}, []float64{1}) })
	assert.Panics(t, func() { NewLinear([]float64{1}, []float64{1}) })
	assert.Panics(t, func() { NewLinear([]float64{1, 2, 2}, []float64{1, 2, 3}) })
	assert.Panics(t, func() { NewLinear([]float64{1, 3, 2}, []float64{1, 2, 3}) })
}
