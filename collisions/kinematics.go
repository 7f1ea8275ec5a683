package collisions

import (
	"math"

	"github.com/phil-mansfield/goccp/constants"
	"github.com/phil-mansfield/goccp/geom"
)

// Source is a stream of random numbers. *rand.Generator is the usual
// implementation.
type Source interface {
	// Uniform returns a uniform random number in [low, high).
	Uniform(low, high float64) float64
	// Normal returns a normally distributed random number.
	Normal(mu, sigma float64) float64
}

// surendraCosChi returns the cosine of the scattering angle of an electron
// with energy e [eV] under the screened Coulomb law of Surendra et al.
// (1990). r is uniform in [0, 1).
func surendraCosChi(e, r float64) float64 {
	if e < 1e-12 {
		// Low energy limit of the law.
		return 1 - 2*r
	}
	cosChi := (2 + e - 2*math.Pow(1+e, r)) / e
	return math.Max(-1, math.Min(1, cosChi))
}

// rescatter deflects the velocity g by the given angles and rescales it so
// that a particle moving with it goes from energy before to energy after.
func rescatter(g geom.Vec, before, after, cosChi, phi float64) geom.Vec {
	speed := g.Norm()
	dir := g.Scale(1 / speed).Rotate(cosChi, phi)
	return dir.Scale(speed * math.Sqrt(after/before))
}

// isotropicDirection returns a unit vector drawn uniformly from the sphere.
func isotropicDirection(src Source) geom.Vec {
	cosChi := src.Uniform(-1, 1)
	sinChi := math.Sqrt(math.Max(0, 1-cosChi*cosChi))
	sinPhi, cosPhi := math.Sincos(src.Uniform(0, 2*constants.Pi))
	return geom.Vec{sinChi * cosPhi, sinChi * sinPhi, cosChi}
}

// maxwellianVelocity returns a velocity drawn from the Maxwell-Boltzmann
// distribution of a particle with mass m [kg] at temperature t [K].
func maxwellianVelocity(src Source, t, m float64) geom.Vec {
	vth := constants.ThermalSpeed(t, m)
	return geom.Vec{src.Normal(0, vth), src.Normal(0, vth), src.Normal(0, vth)}
}

// speedAt returns the speed [m/s] of a particle of mass m [kg] with kinetic
// energy e [eV].
func speedAt(e, m float64) float64 {
	return math.Sqrt(2 * constants.EVToJ(e) / m)
}

// energyOf returns the kinetic energy [eV] of a particle of mass m [kg]
// moving with velocity v.
func energyOf(v geom.Vec, m float64) float64 {
	return constants.JToEV(0.5 * m * v.Norm2())
}
