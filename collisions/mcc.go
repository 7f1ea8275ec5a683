package collisions

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/goccp"
	"github.com/phil-mansfield/goccp/geom"
	"github.com/phil-mansfield/goccp/particle"
)

// RelativeDynamics determines how the relative velocity between a projectile
// and the gas is computed.
type RelativeDynamics int

const (
	// FastProjectile neglects the motion of the gas. Used for electrons.
	FastProjectile RelativeDynamics = iota
	// SlowProjectile samples a gas particle velocity from the target's
	// thermal distribution for every candidate. Used for ions.
	SlowProjectile
)

func (rd RelativeDynamics) String() string {
	switch rd {
	case FastProjectile:
		return "FastProjectile"
	case SlowProjectile:
		return "SlowProjectile"
	}
	return fmt.Sprintf("RelativeDynamics(%d)", int(rd))
}

// subdivisions is the number of points each interval between tabulated
// energies is split into when bounding the total collision frequency.
const subdivisions = 32

// Config describes a ReactionSet.
type Config struct {
	Dt, Dx    float64
	Target    StaticUniformTarget
	Reactions []Reaction
	Dynamics  RelativeDynamics
}

// ReactionSet applies an ordered list of reactions to a single projectile
// species with the null-collision method.
type ReactionSet struct {
	reg        *particle.Registry
	projectile particle.Handle
	cfg        Config

	nuMax, pMax float64
	probs       []float64
	pending     []pendingParticle
}

// Stats counts what happened to a species' particles during a call to
// ReactAll.
type Stats struct {
	// Particles is the number of particles present when ReactAll started.
	Particles  int
	Candidates int
	// Events counts applied events per reaction, in insertion order.
	Events    []int
	Null      int
	Rejected  int
	Saturated int
	// Created is the number of particles added to all species.
	Created int
}

// TotalEvents returns the number of applied events over all reactions.
func (st *Stats) TotalEvents() int {
	sum := 0
	for _, n := range st.Events {
		sum += n
	}
	return sum
}

// Add accumulates the counts of other into st. Both Stats must come from the
// same ReactionSet.
func (st *Stats) Add(other *Stats) {
	if st.Events == nil {
		st.Events = make([]int, len(other.Events))
	}
	if len(st.Events) != len(other.Events) {
		panic(fmt.Sprintf("Adding Stats with %d reactions to Stats with %d.",
			len(other.Events), len(st.Events)))
	}
	st.Particles += other.Particles
	st.Candidates += other.Candidates
	for i := range st.Events {
		st.Events[i] += other.Events[i]
	}
	st.Null += other.Null
	st.Rejected += other.Rejected
	st.Saturated += other.Saturated
	st.Created += other.Created
}

// NewReactionSet binds the reactions in cfg to the projectile species with
// handle projectile. Problems with the configuration are returned as
// *goccp.ConfigError values.
func NewReactionSet(
	reg *particle.Registry, projectile particle.Handle, cfg Config,
) (*ReactionSet, error) {
	if !reg.Valid(projectile) {
		return nil, &goccp.ConfigError{
			Msg: fmt.Sprintf("projectile species %d is not registered", projectile),
		}
	} else if len(cfg.Reactions) == 0 {
		return nil, &goccp.ConfigError{Msg: fmt.Sprintf(
			"empty reaction set for species '%s'", reg.Name(projectile),
		)}
	} else if !isFinite(cfg.Dt) || cfg.Dt <= 0 {
		return nil, goccp.ConfigErrorf("Dt", "must be positive, got %g", cfg.Dt)
	} else if err := cfg.Target.Validate(); err != nil {
		return nil, err
	} else if cfg.Dynamics != FastProjectile && cfg.Dynamics != SlowProjectile {
		return nil, &goccp.ConfigError{Msg: fmt.Sprintf(
			"unrecognized relative dynamics %v", cfg.Dynamics,
		)}
	}

	for i := range cfg.Reactions {
		r := &cfg.Reactions[i]
		switch {
		case r.CrossSection == nil:
			return nil, &goccp.ConfigError{Msg: fmt.Sprintf(
				"reaction %d (%s) has no cross section", i, r.Name,
			)}
		case !isFinite(r.Mass) || r.Mass <= 0:
			return nil, &goccp.ConfigError{Msg: fmt.Sprintf(
				"reaction %d (%s) has invalid target mass %g", i, r.Name, r.Mass,
			)}
		case r.Kind < Elastic || r.Kind > ChargeExchange:
			return nil, &goccp.ConfigError{Msg: fmt.Sprintf(
				"reaction %d (%s) has unrecognized kind %v", i, r.Name, r.Kind,
			)}
		case r.Kind == Ionization && !reg.Valid(r.Product):
			return nil, &goccp.ConfigError{Msg: fmt.Sprintf(
				"reaction %d (%s) has unregistered product species %d",
				i, r.Name, r.Product,
			)}
		}
	}

	set := &ReactionSet{
		reg: reg, projectile: projectile, cfg: cfg,
		probs: make([]float64, len(cfg.Reactions)),
	}
	set.cfg.Reactions = append([]Reaction{}, cfg.Reactions...)
	set.nuMax = set.maxFrequency()
	set.pMax = 1 - math.Exp(-set.nuMax*cfg.Dt)
	if set.pMax >= 1 {
		set.pMax = math.Nextafter(1, 0)
	}
	return set, nil
}

// maxFrequency bounds the total collision frequency of a projectile against
// the target over all tabulated energies. Every interval between tabulated
// energies and thresholds is split into subdivisions pieces. The cross
// sections are linear on each piece and the speed increases with energy, so
// the larger endpoint cross section at the upper endpoint speed bounds the
// frequency over the whole piece.
func (set *ReactionSet) maxFrequency() float64 {
	m := set.reg.Get(set.projectile).Mass

	var knots []float64
	for i := range set.cfg.Reactions {
		cs := set.cfg.Reactions[i].CrossSection
		knots = append(knots, cs.Energy...)
		knots = append(knots, cs.Threshold)
	}
	sort.Float64s(knots)

	buf := make([]float64, subdivisions+1)
	nu := []float64{0}
	for i := 0; i < len(knots)-1; i++ {
		if knots[i+1] == knots[i] {
			continue
		}
		floats.Span(buf, knots[i], knots[i+1])
		for j := 0; j < subdivisions; j++ {
			speed := speedAt(buf[j+1], m)
			nu = append(nu, math.Max(
				set.totalFrequency(buf[j], speed),
				set.totalFrequency(buf[j+1], speed),
			))
		}
	}
	return floats.Max(nu)
}

func (set *ReactionSet) totalFrequency(energy, speed float64) float64 {
	sum := 0.0
	for i := range set.cfg.Reactions {
		sum += set.cfg.Reactions[i].Frequency(
			energy, speed, set.cfg.Target.Density,
		)
	}
	return sum
}

// MaxFrequency returns the bound on the total collision frequency [1/s] used
// by the null-collision method.
func (set *ReactionSet) MaxFrequency() float64 { return set.nuMax }

// CollisionProbability returns the probability that a particle is a
// collision candidate during a single step. It is always in [0, 1).
func (set *ReactionSet) CollisionProbability() float64 { return set.pMax }

// Len returns the number of reactions in the set.
func (set *ReactionSet) Len() int { return len(set.cfg.Reactions) }

// Reaction returns the i-th reaction of the set.
func (set *ReactionSet) Reaction(i int) *Reaction { return &set.cfg.Reactions[i] }

// Projectile returns the handle of the projectile species.
func (set *ReactionSet) Projectile() particle.Handle { return set.projectile }

// Dynamics returns the relative dynamics the set was built with.
func (set *ReactionSet) Dynamics() RelativeDynamics { return set.cfg.Dynamics }

// Partition writes the probability of each reaction for a candidate with the
// given relative energy [eV] and speed [m/s] to out, which must have length
// Len(). If the probabilities sum to more than one they are normalized and
// saturated is true. The returned sum never exceeds one; the remainder is the
// probability of a null collision.
func (set *ReactionSet) Partition(
	energy, speed float64, out []float64,
) (sum float64, saturated bool) {
	if set.nuMax == 0 {
		for i := range out {
			out[i] = 0
		}
		return 0, false
	}

	for i := range set.cfg.Reactions {
		out[i] = set.cfg.Reactions[i].Frequency(
			energy, speed, set.cfg.Target.Density,
		) / set.nuMax
	}
	sum = floats.Sum(out)
	if sum > 1 {
		floats.Scale(1/sum, out)
		return 1, true
	}
	return sum, false
}

// ReactAll runs one step of collisions for every particle of the projectile
// species. Particles created by reactions are added after all projectiles
// have been processed.
func (set *ReactionSet) ReactAll(src Source) Stats {
	s := set.reg.Get(set.projectile)
	n := s.N()
	st := Stats{Particles: n, Events: make([]int, len(set.cfg.Reactions))}

	set.pending = set.pending[:0]
	c := &collision{
		s: s, h: set.projectile, target: &set.cfg.Target, src: src,
		out: &set.pending,
	}

	for i := 0; i < n; i++ {
		if src.Uniform(0, 1) >= set.pMax {
			continue
		}
		st.Candidates++

		c.i = i
		c.vg = geom.Vec{}
		if set.cfg.Dynamics == SlowProjectile {
			c.vg = maxwellianVelocity(
				src, set.cfg.Target.Temperature, set.cfg.Target.Mass,
			)
		}
		c.g = s.V[i].Sub(c.vg)
		c.energy = energyOf(c.g, s.Mass)

		_, saturated := set.Partition(c.energy, c.g.Norm(), set.probs)
		if saturated {
			st.Saturated++
		}

		selected := set.choose(src.Uniform(0, 1))
		if selected < 0 {
			st.Null++
		} else if set.cfg.Reactions[selected].apply(c) {
			st.Events[selected]++
		} else {
			st.Rejected++
		}
	}

	for _, p := range set.pending {
		set.reg.Get(p.h).Append(p.x, p.v)
	}
	st.Created = len(set.pending)

	return st
}

// choose returns the index of the partition segment containing u or -1 for a
// null collision.
func (set *ReactionSet) choose(u float64) int {
	cum := 0.0
	for i, p := range set.probs {
		cum += p
		if u < cum {
			return i
		}
	}
	return -1
}
