/*package constants contains the physical constants used by the simulation.
All values are in SI units.
*/
package constants

import (
	"math"
)

const (
	// Elementary charge [C].
	E = 1.602176634e-19
	// Electron mass [kg].
	ElectronMass = 9.1093837015e-31
	// Boltzmann constant [J/K].
	KB = 1.380649e-23
	// Vacuum permittivity [F/m].
	Eps0 = 8.8541878128e-12
	// Mass of a helium atom [kg].
	HeliumMass = 6.67e-27

	Pi = math.Pi
)

// EVToJ converts an energy in electron volts to joules.
func EVToJ(ev float64) float64 { return ev * E }

// JToEV converts an energy in joules to electron volts.
func JToEV(j float64) float64 { return j / E }

// ThermalSpeed returns the one-dimensional thermal speed sqrt(kB T / m) of a
// particle with mass m at temperature t.
func ThermalSpeed(t, m float64) float64 { return math.Sqrt(KB * t / m) }
