package particle

import (
	"math"
	"testing"

	"github.com/phil-mansfield/goccp/geom"
	"github.com/phil-mansfield/goccp/rand"
	"github.com/stretchr/testify/assert"
)

func TestAddAndRemove(t *testing.T) {
	s := NewSpecies(-1, 1)
	x := 0.0
	s.Add(5, func(v *geom.Vec, pos *float64) {
		*pos = x
		v[0] = x
		x++
	})
	assert.Equal(t, 5, s.N())
	assert.Len(t, s.F, 5)

	s.Remove(1)
	assert.Equal(t, 4, s.N())
	assert.Equal(t, []float64{0, 4, 2, 3}, s.X)
	assert.Equal(t, 4.0, s.V[1][0])

	s.Remove(3)
	assert.Equal(t, []float64{0, 4, 2}, s.X)
}

func TestMove(t *testing.T) {
	s := NewSpecies(2, 4)
	s.Append(1, geom.Vec{3, 5, 7})
	s.F[0] = 10

	s.Move(0.5)
	// v += q/m E dt = 0.5 * 10 * 0.5
	assert.InDelta(t, 5.5, s.V[0][0], 1e-12)
	assert.InDelta(t, 1+5.5*0.5, s.X[0], 1e-12)
	assert.Equal(t, 5.0, s.V[0][1])
	assert.Equal(t, 7.0, s.V[0][2])
}

func TestApplyAbsorbingBoundary(t *testing.T) {
	s := NewSpecies(1, 1)
	for _, x := range []float64{-0.1, 0.2, 1.5, 0.0, 1.0, 0.7, 2} {
		s.Append(x, geom.Vec{})
	}

	removed := s.ApplyAbsorbingBoundary(0, 1)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 4, s.N())
	for _, x := range s.X {
		assert.True(t, x >= 0 && x <= 1, "%g left in the domain", x)
	}
}

func TestMaxwellianEmitter(t *testing.T) {
	gen := rand.New(rand.Pcg, 3)
	s := NewSpecies(1, 1e-26)
	temp, l := 300.0, 0.1
	s.Add(20000, MaxwellianEmitter(temp, l, s.Mass, gen))

	for _, x := range s.X {
		if x < 0 || x >= l {
			t.Fatalf("Position %g outside [0, %g)", x, l)
		}
	}

	// <1/2 m v^2> = 3/2 kB T
	meanEnergy := s.TotalKineticEnergy() / float64(s.N())
	expected := 1.5 * 1.380649e-23 * temp
	assert.InDelta(t, 1.0, meanEnergy/expected, 0.03)
	assert.False(t, math.IsNaN(meanEnergy))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	e := r.Register("electrons", NewSpecies(-1, 1))
	i := r.Register("ions", NewSpecies(1, 2))

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "ions", r.Name(i))
	assert.Equal(t, 2.0, r.Get(i).Mass)
	assert.Equal(t, -1.0, r.Get(e).Charge)
	assert.True(t, r.Valid(e))
	assert.False(t, r.Valid(Handle(2)))
	assert.Panics(t, func() { r.Register("ions", NewSpecies(1, 2)) })
}
