// SPDX-License-Identifier: MIT

package formalism

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/cmatrix"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/spin"
	"github.com/katalvlaran/resonances/xs"
)

const (
	// legendreTolerance stops the expansion once |B_L| < tol·B_0.
	legendreTolerance = 1e-8
	// normFloor bounds the L=0 term used for renormalization.
	normFloor = 1e-16
)

// angularModel is what the Blatt-Biedenharn sum needs from a formalism.
type angularModel interface {
	viewFor(energies []float64) (*view, error)
	transition(v *view, e float64, opts PhaseOptions) (*cmatrix.Dense, error)
	legendreMax(v *view) int
	k(e float64) float64
	particleSpins(reaction string) (float64, float64, error)
	entranceName() string
}

func (b *base) entranceName() string { return b.ev.EntranceName() }

// particleSpins returns the spins of the two particles of a reaction.
func (b *base) particleSpins(reaction string) (float64, float64, error) {
	switch reaction {
	case resonance.ReactionElastic, resonance.ReactionCompetitive:
		return b.ev.Projectile.Spin, b.ev.Target.Spin, nil
	}
	names, ok := [2]string{}, false
	if rm := b.r.RMatrix; rm != nil {
		if p := rm.Pair(reaction); p != nil {
			names, ok = p.Particles, true
		}
	}
	if !ok {
		parts := strings.SplitN(reaction, " + ", 2)
		if len(parts) != 2 {
			return 0, 0, fmt.Errorf("particleSpins: %w %q", resonance.ErrUnknownParticle, reaction)
		}
		names = [2]string{parts[0], parts[1]}
	}
	pa, err := b.ev.Particle(names[0])
	if err != nil {
		return 0, 0, formalismErrorf("particleSpins", err)
	}
	pb, err := b.ev.Particle(names[1])
	if err != nil {
		return 0, 0, formalismErrorf("particleSpins", err)
	}

	return pa.Spin, pb.Spin, nil
}

// absorption names the reactions left out of the default outgoing set.
var absorption = map[string]bool{
	resonance.ReactionCapture:     true,
	resonance.ReactionFission:     true,
	"fissionA":                    true,
	"fissionB":                    true,
	resonance.ReactionCompetitive: true,
}

func channelsOf(chans []channel.Channel, reaction string) []int {
	var out []int
	for i, c := range chans {
		if c.Reaction == reaction {
			out = append(out, i)
		}
	}

	return out
}

func spinMatches(c channel.Channel, s2 int) bool {
	return c.S2 == channel.NoSpin || c.S2 == s2
}

// angularDistribution evaluates the Blatt-Biedenharn expansion
//
//	B_L = 1/k² / ((2i+1)(2I+1)(2L+1)) Σ (−1)^(S−S')/4 Z̄ Z̄' Re(T* T)
//
// for every outgoing reaction. Each energy keeps its own number of terms,
// always even; the result is padded to the longest.
func angularDistribution(m angularModel, energies []float64, opts AngularOptions) (xs.Legendre, error) {
	v, err := m.viewFor(energies)
	if err != nil {
		return nil, err
	}
	in := m.entranceName()
	incident := channelsOf(v.chans, in)
	if len(incident) == 0 {
		in = resonance.ReactionElastic
		incident = channelsOf(v.chans, in)
	}
	if len(incident) == 0 {
		return nil, formalismErrorf("AngularDistribution", ErrNoChannels)
	}

	outs := opts.Reactions
	if len(outs) == 0 {
		seen := make(map[string]bool)
		for _, c := range v.chans {
			if c.Eliminated || absorption[c.Reaction] || seen[c.Reaction] {
				continue
			}
			seen[c.Reaction] = true
			outs = append(outs, c.Reaction)
		}
		sort.Strings(outs)
	}

	ps, ts, err := m.particleSpins(in)
	if err != nil {
		return nil, err
	}
	allowedS := spin.AllowedTotalSpins(ts, ps)
	lMax := m.legendreMax(v)

	type outgoing struct {
		idx      []int
		allowedS []int
		rows     [][]float64
	}
	reactions := make([]outgoing, len(outs))
	for i, name := range outs {
		sp, tsp, err := m.particleSpins(name)
		if err != nil {
			return nil, err
		}
		reactions[i] = outgoing{
			idx:      channelsOf(v.chans, name),
			allowedS: spin.AllowedTotalSpins(tsp, sp),
			rows:     make([][]float64, len(energies)),
		}
	}

	for ie, e := range energies {
		t, err := m.transition(v, e, opts.PhaseOptions)
		if err != nil {
			return nil, formalismErrorf("AngularDistribution", err)
		}
		k := m.k(e)
		prefactor := 1 / (k * k) / (2*ps + 1) / (2*ts + 1)
		for ri := range reactions {
			o := &reactions[ri]
			var b []float64
			for l := 0; len(b) <= 3 || (math.Abs(b[len(b)-1]) >= legendreTolerance*b[0] && l <= lMax) || l%2 == 1; l++ {
				bl := blattBiedenharn(v.chans, t, incident, o.idx, allowedS, o.allowedS, l)
				b = append(b, prefactor/float64(2*l+1)*bl)
			}
			if opts.Renormalize {
				norm := math.Max(b[0], normFloor)
				for i := range b {
					b[i] /= norm
				}
			}
			o.rows[ie] = b
		}
	}

	out := make(xs.Legendre, len(outs))
	for i, name := range outs {
		out[name] = xs.Transpose(reactions[i].rows)
	}

	return out, nil
}

// blattBiedenharn returns the unnormalized B_L sum.
func blattBiedenharn(chans []channel.Channel, t *cmatrix.Dense, in, out, sIn, sOut []int, l int) float64 {
	var sum float64
	for _, s2 := range sIn {
		for _, sp2 := range sOut {
			if (s2-sp2)%2 != 0 {
				continue
			}
			sf := 0.25
			if ((s2-sp2)/2)%2 != 0 {
				sf = -0.25
			}
			for _, i1 := range in {
				c1 := chans[i1]
				if !spinMatches(c1, s2) {
					continue
				}
				for _, i2 := range in {
					c2 := chans[i2]
					if !spinMatches(c2, s2) {
						continue
					}
					z := spin.ZBar(2*c1.L, c1.J2, 2*c2.L, c2.J2, s2, 2*l)
					if z == 0 {
						continue
					}
					for _, i1p := range out {
						c1p := chans[i1p]
						if c1p.J2 != c1.J2 || !spinMatches(c1p, sp2) {
							continue
						}
						for _, i2p := range out {
							c2p := chans[i2p]
							if c2p.J2 != c2.J2 || !spinMatches(c2p, sp2) {
								continue
							}
							zp := spin.ZBar(2*c1p.L, c1.J2, 2*c2p.L, c2.J2, sp2, 2*l)
							if zp == 0 {
								continue
							}
							sum += sf * z * zp * real(cmplx.Conj(t.Get(i1, i1p))*t.Get(i2, i2p))
						}
					}
				}
			}
		}
	}

	return sum
}
