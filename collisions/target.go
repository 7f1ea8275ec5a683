package collisions

import (
	"github.com/phil-mansfield/goccp"
)

// StaticUniformTarget is a background gas with uniform density that does
// not evolve during the run.
type StaticUniformTarget struct {
	Density     float64 // [m^-3]
	Temperature float64 // [K]
	Mass        float64 // [kg]
}

// Validate returns a *goccp.ConfigError if the target is unphysical.
func (t *StaticUniformTarget) Validate() error {
	switch {
	case !isFinite(t.Density) || t.Density < 0:
		return goccp.ConfigErrorf("GasDensity",
			"target density %g must be a non-negative number", t.Density,
		)
	case !isFinite(t.Temperature) || t.Temperature < 0:
		return goccp.ConfigErrorf("GasTemperature",
			"target temperature %g must be a non-negative number", t.Temperature,
		)
	case !isFinite(t.Mass) || t.Mass <= 0:
		return goccp.ConfigErrorf("IonMass",
			"target particle mass %g must be positive", t.Mass,
		)
	}
	return nil
}
