/*package sim drives a 1D3V particle-in-cell simulation of a capacitively
coupled helium discharge.

Every step deposits the electron and ion densities onto the grid, solves for
the potential with a sinusoidal voltage on the right electrode, pushes the
particles, removes the ones which left the gap, and runs Monte Carlo
collisions with the background gas. Observers are notified at the start of
the run, after every step, and at the end.
*/
package sim

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/goccp"
	"github.com/phil-mansfield/goccp/collisions"
	"github.com/phil-mansfield/goccp/constants"
	"github.com/phil-mansfield/goccp/density"
	"github.com/phil-mansfield/goccp/geom"
	"github.com/phil-mansfield/goccp/io"
	"github.com/phil-mansfield/goccp/particle"
	"github.com/phil-mansfield/goccp/poisson"
	"github.com/phil-mansfield/goccp/rand"
	"github.com/phil-mansfield/goccp/reactions"
)

// Phase is the lifecycle state of a Simulation.
type Phase int

const (
	Uninitialized Phase = iota
	Initialized
	Running
	Finished
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "Uninitialized"
	case Initialized:
		return "Initialized"
	case Running:
		return "Running"
	case Finished:
		return "Finished"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// FieldSolver computes the potential and electric field from the charge
// density. *poisson.DirichletSolver is the usual implementation.
type FieldSolver interface {
	Solve(rho, phi []float64, left, right float64)
	EField(phi, ef []float64)
}

// ReactionSource supplies the reactions of a run. The handle of the ion
// species is passed so that ionization can add particles to it.
type ReactionSource interface {
	ElectronReactions(ions particle.Handle) ([]collisions.Reaction, error)
	IonReactions() ([]collisions.Reaction, error)
}

// DirectoryReactions reads the helium reaction library from a directory of
// cross section tables.
type DirectoryReactions struct {
	Dir string
	Par reactions.Parameters
}

func (dr *DirectoryReactions) ElectronReactions(
	ions particle.Handle,
) ([]collisions.Reaction, error) {
	return reactions.LoadElectronReactions(dr.Dir, dr.Par, ions)
}

func (dr *DirectoryReactions) IonReactions() ([]collisions.Reaction, error) {
	return reactions.LoadIonReactions(dr.Dir, dr.Par)
}

// Simulation owns the particles, grids, and reaction sets of a run.
type Simulation struct {
	con   *io.SimulationConfig
	phase Phase
	gen   *rand.Generator

	solver FieldSolver
	source ReactionSource
	obs    observers

	reg             *particle.Registry
	electrons, ions particle.Handle
	eSet, iSet      *collisions.ReactionSet

	ne, ni, rho, phi, ef *geom.UniformGrid

	step, eAbsorbed, iAbsorbed int
	voltage                    float64
	eStats, iStats             collisions.Stats
}

// New creates a Simulation for a checked configuration. By default the
// reactions are read from con.CrossSections and the field is solved with a
// poisson.DirichletSolver. A zero con.Seed is replaced by a seed taken from
// the current time so that the run can still be reproduced from its output.
func New(con *io.SimulationConfig) *Simulation {
	sim := &Simulation{con: con, step: -1}
	if con.Seed == 0 {
		con.Seed = int64(rand.NewTimeSeed(rand.Pcg).Seed() >> 1)
	}
	sim.gen = rand.New(rand.Pcg, uint64(con.Seed))
	sim.source = &DirectoryReactions{
		Dir: con.CrossSections,
		Par: reactions.Parameters{
			GasMass:        con.IonMass,
			GasTemperature: con.GasTemperature,
			EmitSecondary:  con.EmitSecondary,
		},
	}
	return sim
}

// SetFieldSolver replaces the field solver. It must be called before
// SetInitialConditions.
func (sim *Simulation) SetFieldSolver(solver FieldSolver) { sim.solver = solver }

// SetReactions replaces the source of reactions. It must be called before
// SetInitialConditions.
func (sim *Simulation) SetReactions(source ReactionSource) { sim.source = source }

// AddObserver registers an Observer. Observers are notified in the order
// they were added.
func (sim *Simulation) AddObserver(obs Observer) ObserverHandle {
	return sim.obs.add(obs)
}

// RemoveObserver unregisters an Observer and returns false if h was not
// registered.
func (sim *Simulation) RemoveObserver(h ObserverHandle) bool {
	return sim.obs.remove(h)
}

// Phase returns the lifecycle state of the Simulation.
func (sim *Simulation) Phase() Phase { return sim.phase }


// SetInitialConditions creates the electron and ion populations with
// Maxwellian velocities, allocates the grids, and builds the reaction sets.
func (sim *Simulation) SetInitialConditions() error {
	if sim.phase != Uninitialized {
		return &goccp.ConfigError{Msg: fmt.Sprintf(
			"initial conditions set on a simulation in phase %s", sim.phase,
		)}
	}
	con := sim.con

	electrons := particle.NewSpecies(-constants.E, constants.ElectronMass)
	electrons.Add(con.InitialParticles, particle.MaxwellianEmitter(
		con.ElectronTemperature, con.L, constants.ElectronMass, sim.gen,
	))
	ions := particle.NewSpecies(constants.E, con.IonMass)
	ions.Add(con.InitialParticles, particle.MaxwellianEmitter(
		con.IonTemperature, con.L, con.IonMass, sim.gen,
	))

	sim.reg = particle.NewRegistry()
	sim.electrons = sim.reg.Register("electrons", electrons)
	sim.ions = sim.reg.Register("ions", ions)

	sim.ne = geom.NewUniformGrid(con.L, con.Nx)
	sim.ni = geom.NewUniformGrid(con.L, con.Nx)
	sim.rho = geom.NewUniformGrid(con.L, con.Nx)
	sim.phi = geom.NewUniformGrid(con.L, con.Nx)
	sim.ef = geom.NewUniformGrid(con.L, con.Nx)

	if sim.solver == nil {
		solver, err := poisson.NewDirichletSolver(con.Nx, con.Dx())
		if err != nil {
			return goccp.ConfigErrorf("Nx", "%s", err.Error())
		}
		sim.solver = solver
	}

	eReactions, err := sim.source.ElectronReactions(sim.ions)
	if err != nil {
		return err
	}
	iReactions, err := sim.source.IonReactions()
	if err != nil {
		return err
	}

	target := collisions.StaticUniformTarget{
		Density: con.GasDensity, Temperature: con.GasTemperature,
		Mass: con.IonMass,
	}
	sim.eSet, err = collisions.NewReactionSet(sim.reg, sim.electrons,
		collisions.Config{
			Dt: con.Dt, Dx: con.Dx(), Target: target, Reactions: eReactions,
			Dynamics: collisions.FastProjectile,
		},
	)
	if err != nil {
		return fmt.Errorf("electron reactions: %w", err)
	}
	sim.iSet, err = collisions.NewReactionSet(sim.reg, sim.ions,
		collisions.Config{
			Dt: con.Dt, Dx: con.Dx(), Target: target, Reactions: iReactions,
			Dynamics: collisions.SlowProjectile,
		},
	)
	if err != nil {
		return fmt.Errorf("ion reactions: %w", err)
	}

	sim.phase = Initialized
	return nil
}

// ElectronReactions returns the electron reaction set. It is nil before
// SetInitialConditions.
func (sim *Simulation) ElectronReactions() *collisions.ReactionSet { return sim.eSet }

// IonReactions returns the ion reaction set. It is nil before
// SetInitialConditions.
func (sim *Simulation) IonReactions() *collisions.ReactionSet { return sim.iSet }

// BoundaryVoltage returns the voltage of the right electrode during the
// given step.
func BoundaryVoltage(volt, f, dt float64, step int) float64 {
	return volt * math.Sin(2*constants.Pi*f*dt*float64(step))
}

// Run runs the configured number of steps, setting the initial conditions
// first if that has not been done yet. Run can only be called once.
//
// A *goccp.PhysicalStateError is returned if the fields or velocities stop
// being finite. In that case, and if an observer fails, the run is aborted
// and End is not sent.
func (sim *Simulation) Run() error {
	switch sim.phase {
	case Uninitialized:
		if err := sim.SetInitialConditions(); err != nil {
			return err
		}
	case Initialized:
	default:
		return &goccp.ConfigError{Msg: fmt.Sprintf(
			"Run called on a simulation in phase %s", sim.phase,
		)}
	}

	sim.phase = Running
	if err := sim.obs.notify(Start, sim); err != nil {
		sim.phase = Finished
		return err
	}

	for step := 0; step < sim.con.Steps; step++ {
		if err := sim.advance(step); err != nil {
			sim.phase = Finished
			return err
		}
		sim.step = step
		if err := sim.obs.notify(Step, sim); err != nil {
			sim.phase = Finished
			return err
		}
	}

	sim.phase = Finished
	return sim.obs.notify(End, sim)
}

// advance runs a single step.
func (sim *Simulation) advance(step int) error {
	con := sim.con
	electrons, ions := sim.reg.Get(sim.electrons), sim.reg.Get(sim.ions)

	density.WeightToGrid(electrons, sim.ne)
	density.WeightToGrid(ions, sim.ni)
	density.ChargeDensity(con.ParticleWeight(), sim.ni, sim.ne, sim.rho)

	sim.voltage = BoundaryVoltage(con.Volt, con.Frequency, con.Dt, step)
	sim.solver.Solve(sim.rho.Data, sim.phi.Data, 0, sim.voltage)
	sim.solver.EField(sim.phi.Data, sim.ef.Data)
	if sim.phi.HasNaN() {
		return &goccp.PhysicalStateError{Step: step, Msg: "potential is not finite"}
	} else if sim.ef.HasNaN() {
		return &goccp.PhysicalStateError{Step: step, Msg: "electric field is not finite"}
	}

	density.FieldAtParticles(sim.ef, electrons)
	density.FieldAtParticles(sim.ef, ions)

	electrons.Move(con.Dt)
	ions.Move(con.Dt)

	sim.eAbsorbed = electrons.ApplyAbsorbingBoundary(0, con.L)
	sim.iAbsorbed = ions.ApplyAbsorbingBoundary(0, con.L)

	sim.eStats = sim.eSet.ReactAll(sim.gen)
	sim.iStats = sim.iSet.ReactAll(sim.gen)

	if i, ok := firstNonFinite(electrons); !ok {
		return &goccp.PhysicalStateError{Step: step, Msg: fmt.Sprintf(
			"velocity of electron %d is not finite", i,
		)}
	} else if i, ok := firstNonFinite(ions); !ok {
		return &goccp.PhysicalStateError{Step: step, Msg: fmt.Sprintf(
			"velocity of ion %d is not finite", i,
		)}
	}

	return nil
}

// firstNonFinite returns the index of the first particle in s with a
// non-finite velocity. ok is true if there is no such particle.
func firstNonFinite(s *particle.Species) (i int, ok bool) {
	for i := range s.V {
		if !s.V[i].IsFinite() {
			return i, false
		}
	}
	return -1, true
}
