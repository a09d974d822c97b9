package resonance

import (
	"math"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/spin"
)

// Reaction names of the Breit-Wigner and Reich-Moore channels.
const (
	ReactionElastic     = "elastic"
	ReactionCapture     = "capture"
	ReactionFission     = "fission"
	ReactionCompetitive = "competitive"
)

// ChannelSet is the channel view of a resolved region.
type ChannelSet struct {
	// All holds every channel in creation order.
	All *channel.Map
	// Kept are the channels that enter the matrices.
	Kept *channel.Map
	// Eliminated are folded into the Reich-Moore approximation.
	Eliminated *channel.Map
	// LMax is the largest L for which elastic channels exist.
	LMax int
	// Energies are the resonance energies indexed like the channel widths.
	Energies []float64
}

// contribution is one (channel, width) pair produced by a resonance.
type contribution struct {
	ch    channel.Channel
	width float64
}

// EntranceSpins returns the channel spins of a spin-1/2 projectile on a
// target of spin targetSpin.
func EntranceSpins(targetSpin float64) []float64 {
	return spin.AllowedTotalSpinsHalf(0.5, targetSpin)
}

// allowedSpins returns the entrance channel spins that couple l to |j|.
func allowedSpins(l int, j float64, spins []float64) []float64 {
	var out []float64
	for _, s := range spins {
		if spin.Allowed(math.Abs(j), float64(l), s) {
			out = append(out, s)
		}
	}

	return out
}

// resonanceChannels expands one table row into its channels following
// scheme. index is stored on each channel (0 for the shared MLBW/RM view).
func resonanceChannels(r Resonance, index int, kin Kinematics, scheme Scheme, reichMoore bool) ([]contribution, error) {
	spins := EntranceSpins(kin.TargetSpin)
	allowed := allowedSpins(r.L, r.J, spins)
	if len(allowed) == 0 {
		return nil, &CouplingError{L: r.L, J: r.J, TargetSpin: kin.TargetSpin}
	}
	g := kin.GFactor(r.J)
	j2 := spin.Twice(math.Abs(r.J))

	make4 := func(s2 int, gn, gg, gf, gx float64) []contribution {
		base := channel.Channel{L: r.L, J2: j2, S2: s2, Index: index, GFactor: g}
		el := base
		el.Reaction, el.Elastic, el.Class = ReactionElastic, true, channel.Neutron
		cp := base
		cp.Reaction, cp.Class, cp.Eliminated = ReactionCapture, channel.Gamma, reichMoore
		out := []contribution{{el, gn}, {cp, gg}}
		if r.FissionWidthA != 0 {
			f := base
			f.Reaction, f.Class = ReactionFission, channel.Fission
			out = append(out, contribution{f, gf})
		}
		if r.FissionWidthB != 0 {
			x := base
			x.Reaction, x.Class = ReactionCompetitive, channel.Competitive
			out = append(out, contribution{x, gx})
		}

		return out
	}

	var out []contribution
	switch scheme {
	case NJOY:
		out = append(out, make4(spin.Twice(allowed[0]), r.NeutronWidth, r.CaptureWidth, r.FissionWidthA, r.FissionWidthB)...)
		for _, s := range allowed[1:] {
			out = append(out, make4(spin.Twice(s), 0, 0, 0, 0)...)
		}
	case ENDF:
		n := float64(len(allowed))
		for _, s := range allowed {
			out = append(out, make4(spin.Twice(s), r.NeutronWidth/n, r.CaptureWidth/n, r.FissionWidthA/n, r.FissionWidthB/n)...)
		}
	case Ignore:
		out = make4(channel.NoSpin, r.NeutronWidth, r.CaptureWidth, r.FissionWidthA, r.FissionWidthB)
	default:
		return nil, resonanceErrorf("resonanceChannels", ErrUnknownScheme)
	}

	return out, nil
}

// ByChannel regroups an MLBW or Reich-Moore table by channel. Widths are
// keyed by row index. Zero-width elastic channels are added for every
// (l, s, J) with l up to LMax so potential scattering is complete (every
// (l, J) under Ignore). LMax is the larger of lValuesNeeded and the table's
// largest L. With reichMoore set the capture channels are eliminated.
func ByChannel(table Table, kin Kinematics, lValuesNeeded int, scheme Scheme, reichMoore bool) (*ChannelSet, error) {
	all := channel.NewMap()
	lMax := lValuesNeeded
	for iR, r := range table {
		if r.L > lMax {
			lMax = r.L
		}
		cs, err := resonanceChannels(r, 0, kin, scheme, reichMoore)
		if err != nil {
			return nil, resonanceErrorf("ByChannel", err)
		}
		for _, c := range cs {
			all.Add(c.ch, iR, c.width)
		}
	}

	for l := 0; l <= lMax; l++ {
		for _, s := range EntranceSpins(kin.TargetSpin) {
			s2 := spin.Twice(s)
			if scheme == Ignore {
				s2 = channel.NoSpin
			}
			for _, j2 := range spin.AllowedTotalSpins(float64(l), s) {
				c := channel.Channel{
					L: l, J2: j2, S2: s2, Reaction: ReactionElastic,
					GFactor: kin.GFactor(spin.Half(j2)), Elastic: true, Class: channel.Neutron,
				}
				if !all.Contains(c) {
					all.Add(c, 0, 0)
				}
			}
		}
	}

	kept, eliminated := all.Split()
	energies := make([]float64, len(table))
	for i, r := range table {
		energies[i] = r.Energy
	}

	return &ChannelSet{All: all, Kept: kept, Eliminated: eliminated, LMax: lMax, Energies: energies}, nil
}

// ByChannelLevels is the single-level view: one independent channel map
// per resonance, channels indexed by the resonance's row.
func ByChannelLevels(table Table, kin Kinematics, scheme Scheme) ([]*channel.Map, error) {
	levels := make([]*channel.Map, len(table))
	for iR, r := range table {
		cs, err := resonanceChannels(r, iR, kin, scheme, false)
		if err != nil {
			return nil, resonanceErrorf("ByChannelLevels", err)
		}
		m := channel.NewMap()
		for _, c := range cs {
			m.Add(c.ch, iR, c.width)
		}
		levels[iR] = m
	}

	return levels, nil
}
