package density

import (
	"math"
	"testing"

	"github.com/phil-mansfield/goccp/constants"
	"github.com/phil-mansfield/goccp/geom"
	"github.com/phil-mansfield/goccp/particle"
	"github.com/stretchr/testify/assert"
)

func BenchmarkWeightToGrid(b *testing.B) {
	g := geom.NewUniformGrid(1, 129)
	s := particle.NewSpecies(1, 1)
	for i := 0; i < 10000; i++ {
		s.Append(float64(i)/10000, geom.Vec{})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WeightToGrid(s, g)
	}
}

func TestWeightToGrid(t *testing.T) {
	table := []struct {
		xs  []float64
		out []float64
	}{
		{[]float64{0.5}, []float64{0, 0, 1, 0, 0}},
		{[]float64{0.375}, []float64{0, 0.5, 0.5, 0, 0}},
		{[]float64{0.25, 0.25}, []float64{0, 2, 0, 0, 0}},
		{[]float64{0}, []float64{1, 0, 0, 0, 0}},
		{[]float64{1}, []float64{0, 0, 0, 0, 1}},
	}

	for i, test := range table {
		// Dx = 0.25
		g := geom.NewUniformGrid(1, 5)
		s := particle.NewSpecies(1, 1)
		for _, x := range test.xs {
			s.Append(x, geom.Vec{})
		}
		WeightToGrid(s, g)

		for j := range g.Data {
			// Convert back to particles per point before comparing.
			expected := test.out[j] / g.Dx
			if j == 0 || j == g.N-1 {
				expected *= 2
			}
			if math.Abs(g.Data[j]-expected) > 1e-9 {
				t.Errorf("%d) WeightToGrid(%v) = %v", i, test.xs, g.Data)
				break
			}
		}
	}
}

func TestWeightToGridConservesParticles(t *testing.T) {
	g := geom.NewUniformGrid(2, 33)
	s := particle.NewSpecies(1, 1)
	for i := 0; i < 1000; i++ {
		s.Append(2*float64(i)/1000, geom.Vec{})
	}
	WeightToGrid(s, g)

	// Trapezoid integral of the density recovers the particle count.
	sum := 0.0
	for i := 0; i < g.N-1; i++ {
		sum += 0.5 * (g.Data[i] + g.Data[i+1]) * g.Dx
	}
	assert.InDelta(t, 1000, sum, 1e-6)
}

func TestChargeDensity(t *testing.T) {
	ni, ne, rho := geom.NewUniformGrid(1, 3), geom.NewUniformGrid(1, 3),
		geom.NewUniformGrid(1, 3)
	ni.Data = []float64{1, 2, 3}
	ne.Data = []float64{1, 1, 5}
	ChargeDensity(10, ni, ne, rho)

	assert.InDeltaSlice(t, []float64{0, 10 * constants.E, -20 * constants.E},
		rho.Data, 1e-30)
}

func TestFieldAtParticles(t *testing.T) {
	g := geom.NewUniformGrid(1, 3)
	g.Data = []float64{0, 10, 30}
	s := particle.NewSpecies(1, 1)
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		s.Append(x, geom.Vec{})
	}
	FieldAtParticles(g, s)

	assert.InDeltaSlice(t, []float64{0, 5, 10, 20, 30}, s.F, 1e-12)
}
