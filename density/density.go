/*package density transfers quantities between particles and grids: particle
counts are weighted onto grid points and grid fields are interpolated back
to particle positions.

Both directions use the same linear (cloud-in-cell) kernel, which keeps the
scheme free of self-forces.
*/
package density

import (
	"fmt"

	"github.com/phil-mansfield/goccp/constants"
	"github.com/phil-mansfield/goccp/geom"
	"github.com/phil-mansfield/goccp/particle"
)

// WeightToGrid computes the number density of the macro-particles in s and
// writes it to g, in particles per unit length. The two boundary points only
// own half a cell and are scaled accordingly.
func WeightToGrid(s *particle.Species, g *geom.UniformGrid) {
	g.Clear()
	for _, x := range s.X {
		if x < 0 || x > g.L {
			panic(fmt.Sprintf(
				"Particle at %g is outside of the grid [0, %g].", x, g.L,
			))
		}
		i, frac := g.Cell(x)
		g.Data[i] += 1 - frac
		g.Data[i+1] += frac
	}

	for i := range g.Data {
		g.Data[i] /= g.Dx
	}
	g.Data[0] *= 2
	g.Data[g.N-1] *= 2
}

// ChargeDensity computes the charge density rho = e w (ni - ne) from the ion
// and electron macro-particle densities, where w is the number of physical
// particles per macro-particle per unit area.
func ChargeDensity(weight float64, ni, ne, rho *geom.UniformGrid) {
	if ni.N != ne.N || ni.N != rho.N {
		panic(fmt.Sprintf(
			"Grid sizes differ: ni.N = %d, ne.N = %d, rho.N = %d",
			ni.N, ne.N, rho.N,
		))
	}
	k := constants.E * weight
	for i := range rho.Data {
		rho.Data[i] = k * (ni.Data[i] - ne.Data[i])
	}
}

// FieldAtParticles interpolates field to the position of every particle in
// s and stores the result in s.F.
func FieldAtParticles(field *geom.UniformGrid, s *particle.Species) {
	for j, x := range s.X {
		i, frac := field.Cell(x)
		s.F[j] = (1-frac)*field.Data[i] + frac*field.Data[i+1]
	}
}
