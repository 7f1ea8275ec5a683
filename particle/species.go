/*package particle stores charged particle ensembles and moves them through
the electric field.
*/
package particle

import (
	"github.com/phil-mansfield/goccp/geom"
	"github.com/phil-mansfield/goccp/rand"
)

// Species is an ensemble of macro-particles which share a charge and mass.
// Positions are one-dimensional and velocities three-dimensional. F caches
// the electric field at each particle and is filled in by
// density.FieldAtParticles before every push.
type Species struct {
	Charge, Mass float64

	X []float64
	V []geom.Vec
	F []float64
}

// Emitter sets the velocity and position of a newly created particle.
type Emitter func(v *geom.Vec, x *float64)

// NewSpecies creates an empty Species.
func NewSpecies(charge, mass float64) *Species {
	return &Species{Charge: charge, Mass: mass}
}

// N returns the number of particles in the Species.
func (s *Species) N() int { return len(s.X) }

// Add creates n particles whose initial state is set by emitter.
func (s *Species) Add(n int, emitter Emitter) {
	for i := 0; i < n; i++ {
		var (
			x float64
			v geom.Vec
		)
		emitter(&v, &x)
		s.Append(x, v)
	}
}

// Append adds a single particle.
func (s *Species) Append(x float64, v geom.Vec) {
	s.X = append(s.X, x)
	s.V = append(s.V, v)
	s.F = append(s.F, 0)
}

// Remove deletes the i-th particle by moving the last particle into its slot.
func (s *Species) Remove(i int) {
	last := len(s.X) - 1
	s.X[i], s.V[i], s.F[i] = s.X[last], s.V[last], s.F[last]
	s.X, s.V, s.F = s.X[:last], s.V[:last], s.F[:last]
}

// KineticEnergy returns the kinetic energy of the i-th particle in joules.
func (s *Species) KineticEnergy(i int) float64 {
	return 0.5 * s.Mass * s.V[i].Norm2()
}

// TotalKineticEnergy returns the kinetic energy of all particles in joules.
func (s *Species) TotalKineticEnergy() float64 {
	sum := 0.0
	for i := range s.V {
		sum += s.KineticEnergy(i)
	}
	return sum
}

// MaxwellianEmitter returns an Emitter which places particles uniformly in
// [0, l) with velocity components drawn from a Maxwellian at temperature t
// for particles of mass m.
func MaxwellianEmitter(t, l, m float64, gen *rand.Generator) Emitter {
	return func(v *geom.Vec, x *float64) {
		*x = gen.Uniform(0, l)
		v[0] = gen.Maxwellian(t, m)
		v[1] = gen.Maxwellian(t, m)
		v[2] = gen.Maxwellian(t, m)
	}
}
