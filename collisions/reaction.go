package collisions

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/goccp/constants"
	"github.com/phil-mansfield/goccp/geom"
	"github.com/phil-mansfield/goccp/particle"
)

// Kind is the type of a Reaction.
type Kind int

const (
	Elastic Kind = iota
	Excitation
	Ionization
	ChargeExchange
)

var kindNames = []string{"Elastic", "Excitation", "Ionization", "ChargeExchange"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Projectile is the kind of particle a Reaction is written for. It selects
// the scattering law used by Elastic reactions.
type Projectile int

const (
	Electron Projectile = iota
	Ion
)

func (p Projectile) String() string {
	switch p {
	case Electron:
		return "Electron"
	case Ion:
		return "Ion"
	}
	return fmt.Sprintf("Projectile(%d)", int(p))
}

// Reaction is a single collision process between a projectile and the
// background gas. Reactions are immutable once built.
type Reaction struct {
	Name         string
	Kind         Kind
	Projectile   Projectile
	CrossSection *CrossSection
	// Mass is the mass of a background gas particle [kg].
	Mass float64

	// Ionization only. Product is the species created particles are added
	// to and Temperature [K] is the temperature they are sampled at. If
	// EmitSecondary is set, a secondary particle is also added to the
	// projectile species.
	Product       particle.Handle
	Temperature   float64
	EmitSecondary bool
}

// NewElectronElastic creates an elastic electron-neutral reaction with
// screened Coulomb scattering.
func NewElectronElastic(mass float64, cs *CrossSection) Reaction {
	return Reaction{
		Name: "electron elastic", Kind: Elastic, Projectile: Electron,
		CrossSection: cs, Mass: mass,
	}
}

// NewIonElastic creates an elastic ion-neutral reaction with isotropic
// scattering in the center of mass frame.
func NewIonElastic(mass float64, cs *CrossSection) Reaction {
	return Reaction{
		Name: "ion elastic", Kind: Elastic, Projectile: Ion,
		CrossSection: cs, Mass: mass,
	}
}

// NewExcitation creates an electron impact excitation. The energy loss is
// cs.Threshold.
func NewExcitation(mass float64, cs *CrossSection) Reaction {
	return Reaction{
		Name: "excitation", Kind: Excitation, Projectile: Electron,
		CrossSection: cs, Mass: mass,
	}
}

// NewIonization creates an electron impact ionization. The energy loss is
// cs.Threshold and every event adds one particle at temperature t to the
// product species.
func NewIonization(
	mass float64, cs *CrossSection, product particle.Handle, t float64,
) Reaction {
	return Reaction{
		Name: "ionization", Kind: Ionization, Projectile: Electron,
		CrossSection: cs, Mass: mass, Product: product, Temperature: t,
	}
}

// NewChargeExchange creates an ion-neutral charge exchange.
func NewChargeExchange(mass float64, cs *CrossSection) Reaction {
	return Reaction{
		Name: "charge exchange", Kind: ChargeExchange, Projectile: Ion,
		CrossSection: cs, Mass: mass,
	}
}

// Frequency returns the collision frequency [1/s] of a projectile with the
// given energy [eV] and relative speed [m/s] against a gas with the given
// number density [m^-3].
func (r *Reaction) Frequency(energy, speed, density float64) float64 {
	return density * r.CrossSection.At(energy) * speed
}

// Probability returns the probability that the reaction occurs within a
// time dt.
func (r *Reaction) Probability(energy, speed, density, dt float64) float64 {
	return 1 - math.Exp(-r.Frequency(energy, speed, density)*dt)
}

// Threshold returns the energy lost by the projectile in the reaction [eV].
func (r *Reaction) Threshold() float64 { return r.CrossSection.Threshold }

// collision is a single selected projectile along with the state needed to
// apply a reaction to it.
type collision struct {
	s      *particle.Species
	h      particle.Handle
	i      int
	g, vg  geom.Vec // relative velocity and gas velocity
	energy float64  // relative energy [eV]
	target *StaticUniformTarget
	src    Source
	out    *[]pendingParticle
}

// pendingParticle is a particle created by a reaction which is added to its
// species after all projectiles have been processed.
type pendingParticle struct {
	h particle.Handle
	x float64
	v geom.Vec
}

// apply carries out the reaction on the colliding particle. It returns false
// if the event was rejected because the projectile could not afford the
// energy loss.
func (r *Reaction) apply(c *collision) bool {
	switch r.Kind {
	case Elastic:
		switch r.Projectile {
		case Electron:
			cosChi := surendraCosChi(c.energy, c.src.Uniform(0, 1))
			after := c.energy * (1 - 2*c.s.Mass/r.Mass*(1-cosChi))
			c.setRelative(rescatter(c.g, c.energy, after, cosChi, c.phi()))
		case Ion:
			gNew := isotropicDirection(c.src).Scale(c.g.Norm())
			mu := r.Mass / (c.s.Mass + r.Mass)
			c.s.V[c.i] = c.s.V[c.i].Sub(c.g.Sub(gNew).Scale(mu))
		default:
			panic(fmt.Sprintf("Unrecognized projectile %v.", r.Projectile))
		}
		return true

	case Excitation:
		return c.loseEnergy(r.Threshold())

	case Ionization:
		if !c.loseEnergy(r.Threshold()) {
			return false
		}
		x := c.s.X[c.i]
		*c.out = append(*c.out, pendingParticle{
			r.Product, x, maxwellianVelocity(c.src, r.Temperature, r.Mass),
		})
		if r.EmitSecondary {
			*c.out = append(*c.out, pendingParticle{
				c.h, x, maxwellianVelocity(c.src, r.Temperature, c.s.Mass),
			})
		}
		return true

	case ChargeExchange:
		c.s.V[c.i] = maxwellianVelocity(c.src, c.target.Temperature, r.Mass)
		return true
	}
	panic(fmt.Sprintf("Unrecognized reaction kind %v.", r.Kind))
}

// loseEnergy removes loss [eV] from the relative energy and rescatters the
// projectile. It returns false, leaving the projectile untouched, if the
// remaining energy would not be positive.
func (c *collision) loseEnergy(loss float64) bool {
	after := c.energy - loss
	if after <= 0 {
		return false
	}
	cosChi := surendraCosChi(after, c.src.Uniform(0, 1))
	c.setRelative(rescatter(c.g, c.energy, after, cosChi, c.phi()))
	return true
}

func (c *collision) setRelative(g geom.Vec) {
	c.s.V[c.i] = c.vg.Add(g)
}

func (c *collision) phi() float64 {
	return c.src.Uniform(0, 2*constants.Pi)
}
