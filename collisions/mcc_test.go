package collisions

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/goccp"
	"github.com/phil-mansfield/goccp/constants"
	"github.com/phil-mansfield/goccp/geom"
	"github.com/phil-mansfield/goccp/particle"
	"github.com/phil-mansfield/goccp/rand"
)

const (
	testDt = 1e-11
	testDx = 1e-4
)

// newBeam creates a registry holding n electrons moving along x with the
// given energy [eV] and an empty ion species.
func newBeam(n int, energy float64) (reg *particle.Registry, e, ions particle.Handle) {
	reg = particle.NewRegistry()
	electrons := particle.NewSpecies(-constants.E, constants.ElectronMass)
	v := speedAt(energy, constants.ElectronMass)
	for i := 0; i < n; i++ {
		electrons.Append(float64(i)/float64(n), geom.Vec{v, 0, 0})
	}
	e = reg.Register("electrons", electrons)
	ions = reg.Register("ions", particle.NewSpecies(constants.E, constants.HeliumMass))
	return reg, e, ions
}

func heliumTarget(density float64) StaticUniformTarget {
	return StaticUniformTarget{
		Density: density, Temperature: 300, Mass: constants.HeliumMass,
	}
}

func mustReactionSet(
	t *testing.T, reg *particle.Registry, h particle.Handle, cfg Config,
) *ReactionSet {
	set, err := NewReactionSet(reg, h, cfg)
	require.NoError(t, err)
	return set
}

func TestNewReactionSetErrors(t *testing.T) {
	reg, e, ions := newBeam(1, 10)
	cs := flatCrossSection(t, 1e-20, 0)
	elastic := []Reaction{NewElectronElastic(constants.HeliumMass, cs)}

	table := []struct {
		h   particle.Handle
		cfg Config
	}{
		{e, Config{Dt: testDt, Target: heliumTarget(1e20)}},
		{particle.Handle(7), Config{Dt: testDt, Target: heliumTarget(1e20), Reactions: elastic}},
		{e, Config{Dt: 0, Target: heliumTarget(1e20), Reactions: elastic}},
		{e, Config{Dt: testDt, Target: heliumTarget(-1), Reactions: elastic}},
		{e, Config{Dt: testDt, Target: StaticUniformTarget{Density: 1, Temperature: 300}, Reactions: elastic}},
		{e, Config{Dt: testDt, Target: heliumTarget(1e20), Reactions: elastic, Dynamics: RelativeDynamics(5)}},
		{e, Config{Dt: testDt, Target: heliumTarget(1e20),
			Reactions: []Reaction{NewElectronElastic(0, cs)}}},
		{e, Config{Dt: testDt, Target: heliumTarget(1e20),
			Reactions: []Reaction{{Kind: Elastic, Mass: 1}}}},
		{e, Config{Dt: testDt, Target: heliumTarget(1e20),
			Reactions: []Reaction{NewIonization(constants.HeliumMass, cs, particle.Handle(9), 300)}}},
	}

	for i, test := range table {
		_, err := NewReactionSet(reg, test.h, test.cfg)
		var cfgErr *goccp.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%d) Expected ConfigError, got %v", i, err)
		}
	}

	_, err := NewReactionSet(reg, e, Config{
		Dt: testDt, Target: heliumTarget(1e20),
		Reactions: []Reaction{NewIonization(constants.HeliumMass, cs, ions, 300)},
	})
	assert.NoError(t, err)
}

func TestCollisionProbabilityRange(t *testing.T) {
	reg, e, _ := newBeam(1, 10)
	cs := flatCrossSection(t, 1e-19, 0)

	for _, density := range []float64{0, 1, 1e18, 1e22, 1e26, 1e40} {
		set := mustReactionSet(t, reg, e, Config{
			Dt: testDt, Dx: testDx, Target: heliumTarget(density),
			Reactions: []Reaction{NewElectronElastic(constants.HeliumMass, cs)},
		})
		p := set.CollisionProbability()
		assert.True(t, p >= 0 && p < 1, "density %g gives P_max = %g", density, p)
	}
}

func TestMaxFrequency(t *testing.T) {
	reg, e, _ := newBeam(1, 10)
	sigma, density := 2e-20, 1e21
	cs := flatCrossSection(t, sigma, 0)
	set := mustReactionSet(t, reg, e, Config{
		Dt: testDt, Target: heliumTarget(density),
		Reactions: []Reaction{
			NewElectronElastic(constants.HeliumMass, cs),
			NewExcitation(constants.HeliumMass, flatCrossSection(t, sigma, 20)),
		},
	})

	// Both flat tables end at 1e4 eV, where the speed is largest.
	expected := 2 * density * sigma * speedAt(1e4, constants.ElectronMass)
	assert.InEpsilon(t, expected, set.MaxFrequency(), 1e-12)
	assert.InEpsilon(t, 1-math.Exp(-expected*testDt), set.CollisionProbability(), 1e-12)
}

func TestPartitionNeverExceedsOne(t *testing.T) {
	reg, e, ions := newBeam(1, 10)
	set := mustReactionSet(t, reg, e, Config{
		Dt: testDt, Target: heliumTarget(1e21),
		Reactions: []Reaction{
			NewElectronElastic(constants.HeliumMass, mustCrossSection(t,
				[]float64{0, 1, 10, 100}, []float64{5e-20, 6e-20, 2e-20, 1e-20}, 0)),
			NewExcitation(constants.HeliumMass, mustCrossSection(t,
				[]float64{19.82, 30, 100}, []float64{0, 4e-22, 2e-22}, 19.82)),
			NewIonization(constants.HeliumMass, mustCrossSection(t,
				[]float64{24.59, 50, 100}, []float64{0, 3e-21, 3.5e-21}, 24.59), ions, 300),
		},
	})

	out := make([]float64, set.Len())
	for i := 0; i < 10000; i++ {
		energy := float64(i) * 0.01
		sum, saturated := set.Partition(
			energy, speedAt(energy, constants.ElectronMass), out,
		)
		if sum > 1 || saturated {
			t.Fatalf("Partition at %g eV sums to %g (saturated = %v)",
				energy, sum, saturated)
		}
	}

	// Beyond the last tabulated energy the speed keeps growing, so the
	// partition has to be renormalized.
	sum, saturated := set.Partition(1e4, speedAt(1e4, constants.ElectronMass), out)
	assert.True(t, saturated)
	assert.InDelta(t, 1, sum, 1e-12)
	total := 0.0
	for _, p := range out {
		total += p
	}
	assert.InDelta(t, 1, total, 1e-12)
}

func TestZeroDensityNoCollisions(t *testing.T) {
	reg, e, _ := newBeam(1000, 50)
	set := mustReactionSet(t, reg, e, Config{
		Dt: testDt, Target: heliumTarget(0),
		Reactions: []Reaction{
			NewElectronElastic(constants.HeliumMass, flatCrossSection(t, 1e-20, 0)),
		},
	})
	assert.Equal(t, 0.0, set.CollisionProbability())

	gen := rand.New(rand.Pcg, 3)
	for step := 0; step < 50; step++ {
		st := set.ReactAll(gen)
		assert.Equal(t, 0, st.Candidates)
		assert.Equal(t, 0, st.TotalEvents())
	}
}

func TestIonizationCreatesOneParticlePerEvent(t *testing.T) {
	for _, secondary := range []bool{false, true} {
		reg, e, ions := newBeam(2000, 100)
		ionization := NewIonization(
			constants.HeliumMass, flatCrossSection(t, 1e-19, 24.59), ions, 300,
		)
		ionization.EmitSecondary = secondary
		set := mustReactionSet(t, reg, e, Config{
			Dt: 1e-9, Target: heliumTarget(1e22),
			Reactions: []Reaction{ionization},
		})

		gen := rand.New(rand.Pcg, 11)
		nE, nI := reg.Get(e).N(), reg.Get(ions).N()
		st := set.ReactAll(gen)

		require.True(t, st.Events[0] > 0, "no ionization events")
		assert.Equal(t, 2000, st.Particles)
		assert.Equal(t, nI+st.Events[0], reg.Get(ions).N())
		if secondary {
			assert.Equal(t, nE+st.Events[0], reg.Get(e).N())
			assert.Equal(t, 2*st.Events[0], st.Created)
		} else {
			assert.Equal(t, nE, reg.Get(e).N())
			assert.Equal(t, st.Events[0], st.Created)
		}

		// Ions are created at the positions of the ionizing electrons.
		xs := map[float64]bool{}
		for _, x := range reg.Get(e).X {
			xs[x] = true
		}
		for _, x := range reg.Get(ions).X {
			assert.True(t, xs[x], "ion at %g has no parent electron", x)
		}
	}
}

func TestCountConservingReactions(t *testing.T) {
	reg, e, _ := newBeam(500, 30)
	ions := particle.NewSpecies(constants.E, constants.HeliumMass)
	gen := rand.New(rand.Pcg, 5)
	ions.Add(500, particle.MaxwellianEmitter(3000, 1, constants.HeliumMass, gen))
	hi := reg.Register("hot ions", ions)

	eSet := mustReactionSet(t, reg, e, Config{
		Dt: 1e-9, Target: heliumTarget(1e22),
		Reactions: []Reaction{
			NewElectronElastic(constants.HeliumMass, flatCrossSection(t, 1e-19, 0)),
		},
	})
	iSet := mustReactionSet(t, reg, hi, Config{
		Dt: 1e-6, Target: heliumTarget(1e22), Dynamics: SlowProjectile,
		Reactions: []Reaction{
			NewIonElastic(constants.HeliumMass, flatCrossSection(t, 1e-19, 0)),
			NewChargeExchange(constants.HeliumMass, flatCrossSection(t, 1e-19, 0)),
		},
	})

	energies := make([]float64, 500)
	for i := range energies {
		energies[i] = reg.Get(e).KineticEnergy(i)
	}

	for step := 0; step < 5; step++ {
		eSt, iSt := eSet.ReactAll(gen), iSet.ReactAll(gen)
		assert.Equal(t, 0, eSt.Created)
		assert.Equal(t, 0, iSt.Created)
		assert.Equal(t, 500, reg.Get(e).N())
		assert.Equal(t, 500, reg.Get(hi).N())
	}

	assert.True(t, eSet.Len() == 1 && iSet.Len() == 2)
	for i := range energies {
		// Elastic collisions with a heavy target only ever cool electrons.
		assert.True(t, reg.Get(e).KineticEnergy(i) <= energies[i]*(1+1e-12))
		assert.True(t, reg.Get(e).V[i].IsFinite())
		assert.True(t, reg.Get(hi).V[i].IsFinite())
	}
}

func TestExcitationEnergyBookkeeping(t *testing.T) {
	before, threshold := 50.0, 19.82
	reg, e, _ := newBeam(2000, before)
	set := mustReactionSet(t, reg, e, Config{
		Dt: 1e-9, Target: heliumTarget(1e22),
		Reactions: []Reaction{
			NewExcitation(constants.HeliumMass, flatCrossSection(t, 1e-19, threshold)),
		},
	})

	st := set.ReactAll(rand.New(rand.Pcg, 17))
	require.True(t, st.Events[0] > 0)

	excited := 0
	s := reg.Get(e)
	for i := 0; i < s.N(); i++ {
		energy := energyOf(s.V[i], s.Mass)
		switch {
		case math.Abs(energy-before) < 1e-9:
		case math.Abs(energy-(before-threshold)) < 1e-9:
			excited++
		default:
			t.Errorf("Particle %d has energy %g eV", i, energy)
		}
	}
	assert.Equal(t, st.Events[0], excited)
	assert.Equal(t, st.Candidates, st.Events[0]+st.Null+st.Rejected)
}

func TestSeedReproducibility(t *testing.T) {
	run := func() (*particle.Registry, particle.Handle, []Stats) {
		reg, e, ions := newBeam(300, 80)
		set := mustReactionSet(t, reg, e, Config{
			Dt: 1e-9, Target: heliumTarget(1e22),
			Reactions: []Reaction{
				NewElectronElastic(constants.HeliumMass, flatCrossSection(t, 5e-20, 0)),
				NewExcitation(constants.HeliumMass, flatCrossSection(t, 1e-20, 19.82)),
				NewIonization(constants.HeliumMass, flatCrossSection(t, 1e-20, 24.59), ions, 300),
			},
		})
		gen := rand.New(rand.Pcg, 99)
		var stats []Stats
		for step := 0; step < 5; step++ {
			stats = append(stats, set.ReactAll(gen))
		}
		return reg, e, stats
	}

	reg1, e1, stats1 := run()
	reg2, e2, stats2 := run()
	assert.Equal(t, stats1, stats2)
	assert.Equal(t, reg1.Get(e1).V, reg2.Get(e2).V)
	assert.Equal(t, reg1.Get(e1).X, reg2.Get(e2).X)
}

func TestStatsAdd(t *testing.T) {
	var total Stats
	total.Add(&Stats{Particles: 3, Candidates: 2, Events: []int{1, 0}, Null: 1})
	total.Add(&Stats{Particles: 4, Candidates: 3, Events: []int{1, 1}, Rejected: 1, Created: 1})

	assert.Equal(t, Stats{
		Particles: 7, Candidates: 5, Events: []int{2, 1},
		Null: 1, Rejected: 1, Created: 1,
	}, total)
	assert.Equal(t, 3, total.TotalEvents())
	assert.Panics(t, func() { total.Add(&Stats{Events: []int{1}}) })
}
