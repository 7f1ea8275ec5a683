/*package collisions implements null-collision Monte Carlo collisions between
simulated charged particles and a static background gas.

Reactions are built from tabulated cross sections and grouped into a
ReactionSet bound to a single projectile species. Every step the set decides
which particles collide and which reaction each colliding particle undergoes.
*/
package collisions

import (
	"math"

	"github.com/phil-mansfield/goccp"
	"github.com/phil-mansfield/goccp/math/interpolate"
)

// CrossSection is a tabulated, energy-dependent reaction cross section.
// Energies are in eV and cross sections in m^2.
type CrossSection struct {
	Energy, Value []float64
	// Threshold is the minimum projectile energy at which the reaction can
	// occur. Zero if the reaction has no threshold.
	Threshold float64

	interp *interpolate.Linear
}

// NewCrossSection creates a CrossSection from a pair of columns. Energies
// must be finite, non-negative, and strictly increasing, and values must be
// finite and non-negative. An invalid table results in a *goccp.DataError.
//
// energy and value must not be modified after being passed to NewCrossSection.
func NewCrossSection(energy, value []float64, threshold float64) (*CrossSection, error) {
	return newCrossSection("", energy, value, threshold)
}

func newCrossSection(
	file string, energy, value []float64, threshold float64,
) (*CrossSection, error) {
	if len(energy) != len(value) {
		return nil, goccp.DataErrorf(file,
			"energy column has %d rows, but cross section column has %d",
			len(energy), len(value),
		)
	} else if len(energy) < 2 {
		return nil, goccp.DataErrorf(file,
			"table has %d rows, but at least 2 are needed", len(energy),
		)
	} else if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		return nil, goccp.DataErrorf(file, "invalid threshold %g", threshold)
	}

	for i := range energy {
		switch {
		case !isFinite(energy[i]) || energy[i] < 0:
			return nil, goccp.DataErrorf(file,
				"row %d: invalid energy %g", i, energy[i],
			)
		case !isFinite(value[i]) || value[i] < 0:
			return nil, goccp.DataErrorf(file,
				"row %d: invalid cross section %g", i, value[i],
			)
		case i > 0 && energy[i] <= energy[i-1]:
			return nil, goccp.DataErrorf(file,
				"row %d: energy %g does not increase past %g",
				i, energy[i], energy[i-1],
			)
		}
	}

	cs := &CrossSection{Energy: energy, Value: value, Threshold: threshold}
	cs.interp = interpolate.NewLinear(energy, value)
	return cs, nil
}

// At returns the cross section at the given energy. Energies below the
// threshold or below the first sample give zero. Energies above the last
// sample are clamped to its value.
func (cs *CrossSection) At(energy float64) float64 {
	if energy < cs.Threshold {
		return 0
	}
	return cs.interp.EvalClamped(energy, 0)
}

// MaxEnergy returns the largest tabulated energy.
func (cs *CrossSection) MaxEnergy() float64 {
	return cs.Energy[len(cs.Energy)-1]
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
