package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// UniformGrid is a one-dimensional field sampled at N evenly spaced points
// spanning [0, L]. The first and last points sit on the domain boundaries.
type UniformGrid struct {
	L    float64
	N    int
	Dx   float64
	Data []float64
}

// NewUniformGrid returns a zeroed UniformGrid with n points over length l.
func NewUniformGrid(l float64, n int) *UniformGrid {
	g := &UniformGrid{}
	g.Init(l, n)
	return g
}

// Init initializes a UniformGrid instance. All values are set to zero.
func (g *UniformGrid) Init(l float64, n int) {
	if n < 2 {
		panic("A UniformGrid needs at least two points.")
	}
	g.L = l
	g.N = n
	g.Dx = l / float64(n-1)
	g.Data = make([]float64, n)
}

// X returns the position of the i-th grid point.
func (g *UniformGrid) X(i int) float64 { return float64(i) * g.Dx }

// Xs returns the positions of all grid points. If an output slice is given
// the positions are written to it.
func (g *UniformGrid) Xs(out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, g.N)}
	}
	return floats.Span(out[0], 0, g.L)
}

// Cell returns the index of the cell containing x and the fractional offset
// of x inside it. x must be in [0, L].
func (g *UniformGrid) Cell(x float64) (i int, frac float64) {
	pos := x / g.Dx
	i = int(pos)
	if i >= g.N-1 {
		i = g.N - 2
	}
	return i, pos - float64(i)
}

// Clear sets all values to zero.
func (g *UniformGrid) Clear() {
	for i := range g.Data {
		g.Data[i] = 0
	}
}

// Max returns the largest value on the grid.
func (g *UniformGrid) Max() float64 { return floats.Max(g.Data) }

// HasNaN returns true if the grid contains NaN or infinite values.
func (g *UniformGrid) HasNaN() bool {
	if floats.HasNaN(g.Data) {
		return true
	}
	for _, x := range g.Data {
		if math.IsInf(x, 0) {
			return true
		}
	}
	return false
}
