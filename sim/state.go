package sim

import (
	"github.com/phil-mansfield/goccp/collisions"
	"github.com/phil-mansfield/goccp/geom"
	"github.com/phil-mansfield/goccp/io"
	"github.com/phil-mansfield/goccp/particle"
)

// State is a read-only view of a running simulation given to observers.
// Grids and species are shared with the simulation and are only valid for
// the duration of a notification.
type State interface {
	// Config returns the parameters of the run.
	Config() *io.SimulationConfig
	// Step returns the index of the last completed step, or -1 before the
	// first step.
	Step() int
	// Time returns the simulated time at the end of the last completed step
	// [s].
	Time() float64
	// BoundaryVoltage returns the voltage applied to the right electrode
	// during the last completed step [V].
	BoundaryVoltage() float64

	Electrons() *particle.Species
	Ions() *particle.Species

	// Densities are given in macro-particles per unit length. Multiply by
	// Config().ParticleWeight() for physical densities.
	ElectronDensity() *geom.UniformGrid
	IonDensity() *geom.UniformGrid
	ChargeDensity() *geom.UniformGrid
	Potential() *geom.UniformGrid
	ElectricField() *geom.UniformGrid

	ElectronReactions() *collisions.ReactionSet
	IonReactions() *collisions.ReactionSet

	// Collision statistics and absorbed particle counts of the last
	// completed step.
	ElectronStats() *collisions.Stats
	IonStats() *collisions.Stats
	ElectronsAbsorbed() int
	IonsAbsorbed() int
}

var _ State = &Simulation{}

func (sim *Simulation) Config() *io.SimulationConfig { return sim.con }
func (sim *Simulation) Step() int { return sim.step }
func (sim *Simulation) Time() float64 {
	return float64(sim.step+1) * sim.con.Dt
}
func (sim *Simulation) BoundaryVoltage() float64 { return sim.voltage }

func (sim *Simulation) Electrons() *particle.Species { return sim.reg.Get(sim.electrons) }
func (sim *Simulation) Ions() *particle.Species { return sim.reg.Get(sim.ions) }

func (sim *Simulation) ElectronDensity() *geom.UniformGrid { return sim.ne }
func (sim *Simulation) IonDensity() *geom.UniformGrid { return sim.ni }
func (sim *Simulation) ChargeDensity() *geom.UniformGrid { return sim.rho }
func (sim *Simulation) Potential() *geom.UniformGrid { return sim.phi }
func (sim *Simulation) ElectricField() *geom.UniformGrid { return sim.ef }

func (sim *Simulation) ElectronStats() *collisions.Stats { return &sim.eStats }
func (sim *Simulation) IonStats() *collisions.Stats { return &sim.iStats }
func (sim *Simulation) ElectronsAbsorbed() int { return sim.eAbsorbed }
func (sim *Simulation) IonsAbsorbed() int { return sim.iAbsorbed }
