package channel

import (
	"fmt"

	"github.com/katalvlaran/resonances/spin"
)

// Class is the physical nature of a channel.
type Class int

// Channel classes.
const (
	Fission Class = iota
	Neutron
	ChargedParticle
	Gamma
	Competitive
)

// String implements fmt.Stringer.
func (c Class) String() string {
	switch c {
	case Fission:
		return "fission"
	case Neutron:
		return "neutron"
	case ChargedParticle:
		return "charged-particle"
	case Gamma:
		return "gamma"
	case Competitive:
		return "competitive"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// NoSpin marks a channel whose channel spin is not tracked.
const NoSpin = -1

// Channel is an immutable description of one reaction channel.
type Channel struct {
	// L is the orbital angular momentum.
	L int
	// J2 is twice the total angular momentum.
	J2 int
	// S2 is twice the channel spin, or NoSpin.
	S2 int
	// Reaction names the reaction or particle pair, e.g. "elastic" or "n + Fe56".
	Reaction string
	// Index records the resonance (or table column) that created the channel.
	Index int
	// GFactor is the statistical weight (2J+1)/((2i+1)(2I+1)).
	GFactor float64
	// ParticleA and ParticleB name the outgoing pair, if known.
	ParticleA, ParticleB string
	// Xi is the lab-frame threshold in eV.
	Xi float64
	// Elastic is set when the channel is also the entrance channel.
	Elastic bool
	// Class is the channel's nature.
	Class Class
	// Relativistic requests relativistic kinematics.
	Relativistic bool
	// Eliminated marks a channel folded into the Reich-Moore approximation.
	Eliminated bool
}

// Key is the comparable identity of a Channel.
type Key struct {
	L            int
	J2           int
	S2           int
	Reaction     string
	GFactor      float64
	ParticleA    string
	ParticleB    string
	Elastic      bool
	Class        Class
	Relativistic bool
	Eliminated   bool
}

// Key returns the identity used for map lookups.
func (c Channel) Key() Key {
	return Key{
		L:            c.L,
		J2:           c.J2,
		S2:           c.S2,
		Reaction:     c.Reaction,
		GFactor:      c.GFactor,
		ParticleA:    c.ParticleA,
		ParticleB:    c.ParticleB,
		Elastic:      c.Elastic,
		Class:        c.Class,
		Relativistic: c.Relativistic,
		Eliminated:   c.Eliminated,
	}
}

// Equal reports whether c and o are the same channel.
func (c Channel) Equal(o Channel) bool { return c.Key() == o.Key() }

// J returns the total angular momentum.
func (c Channel) J() float64 { return spin.Half(c.J2) }

// S returns the channel spin and whether it is tracked.
func (c Channel) S() (float64, bool) {
	if c.S2 == NoSpin {
		return 0, false
	}

	return spin.Half(c.S2), true
}

// IsOpen reports whether the channel is open at incident energy e.
func (c Channel) IsOpen(e float64) bool { return e >= c.Xi }

// SameJ reports whether c and o share the total angular momentum.
func (c Channel) SameJ(o Channel) bool { return c.J2 == o.J2 }

// String implements fmt.Stringer.
func (c Channel) String() string {
	s := "-"
	if v, ok := c.S(); ok {
		s = fmt.Sprint(v)
	}

	return fmt.Sprintf("Channel(l=%d, J=%v, reaction=%q, index=%d, s=%s, g=%v, Xi=%v, elastic=%t, class=%s, eliminated=%t)",
		c.L, c.J(), c.Reaction, c.Index, s, c.GFactor, c.Xi, c.Elastic, c.Class, c.Eliminated)
}
