package resonance

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/penetrability"
	"github.com/katalvlaran/resonances/spin"
)

// PairInfo is what an R-Matrix Limited channel needs from its pair.
type PairInfo struct {
	Pair *ParticlePair
	// A and B are the outgoing particles.
	A, B Particle
	// Xi is the lab-frame threshold, −((M+1)/M)·Q.
	Xi float64
	// Override holds spin-group radius replacements, if any.
	Override *Override
}

// Masses returns the channel masses for k and η.
func (p PairInfo) Masses(ev *Evaluation) penetrability.Masses {
	return penetrability.Masses{A: p.A.Mass, B: p.B.Mass, Projectile: ev.Projectile.Mass, Target: ev.Target.Mass}
}

// TrueRadius is used for penetrabilities and shifts.
func (p PairInfo) TrueRadius(r *ResolvedRegion, targetMass float64) float64 {
	switch {
	case r.CalculateChannelRadius:
		return penetrability.ChannelRadius(targetMass)
	case p.Override != nil && p.Override.ScatteringRadius != 0:
		return p.Override.ScatteringRadius
	case p.Pair.ScatteringRadius != 0:
		return p.Pair.ScatteringRadius
	}

	return r.ScatteringRadius.Constant
}

// EffectiveRadius is used for the hard-sphere phase.
func (p PairInfo) EffectiveRadius(r *ResolvedRegion) float64 {
	switch {
	case p.Override != nil && p.Override.EffectiveRadius != 0:
		return p.Override.EffectiveRadius
	case p.Pair.EffectiveRadius != 0:
		return p.Pair.EffectiveRadius
	case p.Pair.ScatteringRadius != 0:
		return p.Pair.ScatteringRadius
	}

	return r.ScatteringRadius.Constant
}

// ColumnInfo resolves the pair, particles and radius override of one
// spin-group column.
func ColumnInfo(ev *Evaluation, rm *RMatrix, sg SpinGroup, col Column) (PairInfo, error) {
	pair := rm.Pair(col.Pair)
	if pair == nil {
		return PairInfo{}, fmt.Errorf("%w %q", ErrUnknownPair, col.Pair)
	}
	pa, err := ev.Particle(pair.Particles[0])
	if err != nil {
		return PairInfo{}, err
	}
	pb, err := ev.Particle(pair.Particles[1])
	if err != nil {
		return PairInfo{}, err
	}
	info := PairInfo{Pair: pair, A: pa, B: pb, Xi: Threshold(ev, pair)}
	if o, ok := sg.Overrides[pair.Label]; ok {
		info.Override = &o
	}

	return info, nil
}

// RMLChannels is the channel view of an R-Matrix Limited region.
type RMLChannels struct {
	ChannelSet
	// Widths are the total widths matching Energies.
	Widths []float64
	// Info is keyed by channel identity for every kept and eliminated channel.
	Info map[channel.Key]PairInfo
	// Thresholds lists every positive Xi.
	Thresholds []float64
	// GroupIndices maps spin group g, row i to the resonance index.
	GroupIndices [][]int
}

// Threshold returns the lab threshold of pair p.
func Threshold(ev *Evaluation, p *ParticlePair) float64 {
	m := ev.MassRatio()

	return -((m + 1) / m) * p.Q
}

// ChannelClass derives a channel's class from its outgoing particle names.
func ChannelClass(a, b string) channel.Class {
	switch {
	case a == "gamma" || b == "gamma" || a == "photon" || b == "photon":
		return channel.Gamma
	case a == "n" || b == "n":
		return channel.Neutron
	case strings.Contains(a+b, "fission"):
		return channel.Fission
	}

	return channel.ChargedParticle
}

// ByChannelRML builds the channels of an R-Matrix Limited region. Resonance
// indices follow a stable sort of every spin group's energies, so repeated
// energies keep distinct indices. When ein is non-empty, channels closed at
// any of its energies are dropped, with a warning if the grid straddles
// their threshold.
func ByChannelRML(ev *Evaluation, r *ResolvedRegion, ein []float64, log *zap.Logger) (*RMLChannels, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rm := r.RMatrix
	if rm == nil {
		return nil, resonanceErrorf("ByChannelRML", ErrEmptyTable)
	}

	out := &RMLChannels{Info: make(map[channel.Key]PairInfo)}
	out.indexResonances(rm)

	for i := range rm.Pairs {
		if xi := Threshold(ev, &rm.Pairs[i]); xi > 0 {
			out.Thresholds = append(out.Thresholds, xi)
		}
	}

	all := channel.NewMap()
	eMin, eMax := math.Inf(1), math.Inf(-1)
	for _, e := range ein {
		eMin, eMax = math.Min(eMin, e), math.Max(eMax, e)
	}
	index := 0
	for gi, sg := range rm.SpinGroups {
		j2 := spin.Twice(math.Abs(sg.J))
		g := (2*math.Abs(sg.J) + 1) / (2 * (2*ev.Target.Spin + 1))
		for ci, col := range sg.Columns {
			info, err := ColumnInfo(ev, rm, sg, col)
			if err != nil {
				return nil, resonanceErrorf("ByChannelRML", err)
			}
			pair, pa, pb := info.Pair, info.A, info.B
			class := ChannelClass(pa.Name, pb.Name)
			eliminated := rm.Approximation == ApproximationReichMoore && (class == channel.Gamma || pair.Tag == TagCapture)
			if !eliminated && !spin.Allowed(math.Abs(sg.J), float64(col.L), col.ChannelSpin) {
				return nil, resonanceErrorf("ByChannelRML", &CouplingError{L: col.L, J: sg.J, TargetSpin: ev.Target.Spin, Column: col.Pair})
			}
			c := channel.Channel{
				L: col.L, J2: j2, S2: spin.Twice(col.ChannelSpin), Reaction: pair.Name, Index: index,
				GFactor: g, ParticleA: pa.Name, ParticleB: pb.Name, Xi: info.Xi,
				Elastic: pair.Tag == TagElastic, Class: class,
				Relativistic: rm.RelativisticKinematics, Eliminated: eliminated,
			}
			index++

			if len(ein) > 0 && eMin < c.Xi {
				if eMax >= c.Xi {
					log.Warn("energy grid straddles a channel threshold",
						zap.Float64("Xi", c.Xi), zap.String("reaction", c.Reaction),
						zap.Int("l", c.L), zap.Float64("s", col.ChannelSpin), zap.Float64("J", sg.J))
				}
				continue
			}

			out.Info[c.Key()] = info
			for ri, row := range sg.Rows {
				all.Add(c, out.GroupIndices[gi][ri], row.Widths[ci])
			}
		}
	}

	out.All = all
	out.Kept, out.Eliminated = all.Split()
	for _, c := range out.Kept.Channels() {
		if c.L > out.LMax {
			out.LMax = c.L
		}
	}

	return out, nil
}

// indexResonances orders every spin-group row by energy and records each
// row's position.
func (o *RMLChannels) indexResonances(rm *RMatrix) {
	type ref struct {
		e, w  float64
		g, ri int
	}
	var refs []ref
	o.GroupIndices = make([][]int, len(rm.SpinGroups))
	for gi, sg := range rm.SpinGroups {
		o.GroupIndices[gi] = make([]int, len(sg.Rows))
		for ri, row := range sg.Rows {
			w := 0.0
			for _, x := range row.Widths {
				w += x
			}
			refs = append(refs, ref{e: row.Energy, w: w, g: gi, ri: ri})
		}
	}
	sort.SliceStable(refs, func(a, b int) bool { return refs[a].e < refs[b].e })
	o.Energies = make([]float64, len(refs))
	o.Widths = make([]float64, len(refs))
	for i, rf := range refs {
		o.Energies[i], o.Widths[i] = rf.e, rf.w
		o.GroupIndices[rf.g][rf.ri] = i
	}
}
