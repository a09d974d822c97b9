// SPDX-License-Identifier: MIT

package unresolved

import (
	"errors"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/penetrability"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/xs"
)

// Region reconstructs one evaluation's unresolved region.
type Region struct {
	ev  *resonance.Evaluation
	u   *resonance.UnresolvedRegion
	opt Options
	log *zap.Logger
}

// New prepares the unresolved region of ev.
func New(ev *resonance.Evaluation, opts Options) (*Region, error) {
	if ev == nil || ev.Unresolved == nil {
		return nil, unresolvedErrorf("New", ErrNoRegion)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	u := ev.Unresolved
	log.Info("reconstructing unresolved region",
		zap.Float64("lowerBound", u.LowerBound), zap.Float64("upperBound", u.UpperBound))

	return &Region{ev: ev, u: u, opt: opts, log: log}, nil
}

// Bounds returns the region's energy range.
func (r *Region) Bounds() (lo, hi float64) { return r.u.LowerBound, r.u.UpperBound }

// SelfShieldingOnly reports whether the region only carries self-shielding
// data and adds nothing to the cross sections.
func (r *Region) SelfShieldingOnly() bool { return r.u.SelfShieldingOnly }

// Sequences lists the region's (L, J) sequences in table order.
func (r *Region) Sequences() []Sequence {
	var out []Sequence
	for _, l := range r.u.LValues {
		for _, j := range l.JValues {
			out = append(out, Sequence{L: l.L, J: j.J})
		}
	}

	return out
}

// EnergyGrid returns the union of the tabulated energies, with the bounds
// standing in for constant sequences. Where neighbors differ by more than
// a factor of 3 the gap is filled with 10^i·{1, 1.25, ..., 8.5}; interpolate
// then reports true so widths are interpolated onto the filled points.
func (r *Region) EnergyGrid() (egrid []float64, interpolate bool, err error) {
	for _, l := range r.u.LValues {
		for _, j := range l.JValues {
			if j.Table != nil && len(j.Table.Energies) > 0 {
				egrid = append(egrid, j.Table.Energies...)
			} else {
				egrid = append(egrid, r.u.LowerBound, r.u.UpperBound)
			}
		}
	}
	if len(egrid) == 0 {
		egrid = append(egrid, r.u.LowerBound, r.u.UpperBound)
	}
	slices.Sort(egrid)
	egrid = slices.Compact(egrid)
	if egrid[0] > r.u.LowerBound || egrid[len(egrid)-1] < r.u.UpperBound {
		return nil, false, unresolvedErrorf("EnergyGrid", ErrGridSpan)
	}

	interpolate = r.opt.InterpolateWidths
	var extra []float64
	for i := 0; i+1 < len(egrid); i++ {
		low, high := egrid[i], egrid[i+1]
		if high/low <= gapRatio {
			continue
		}
		lowPow, highPow := int(math.Log10(low)), int(math.Ceil(math.Log10(high)))
		for p := lowPow; p <= highPow; p++ {
			for _, m := range gapFill {
				if e := m * math.Pow10(p); e > low && e < high {
					extra = append(extra, e)
				}
			}
		}
	}
	if len(extra) > 0 {
		r.log.Warn("filling large gaps in unresolved energy grid", zap.Int("points", len(extra)))
		egrid = append(egrid, extra...)
		slices.Sort(egrid)
		egrid = slices.Compact(egrid)
		interpolate = true
	}

	return egrid, interpolate, nil
}

// WidthsAndSpacings puts every sequence's level spacing and average widths
// on egrid. A constant value wins over a tabulated column. Without
// interpolate a column must already have one value per grid energy.
func (r *Region) WidthsAndSpacings(egrid []float64, interpolate bool) ([]Averages, error) {
	var out []Averages
	for _, l := range r.u.LValues {
		for _, j := range l.JValues {
			seq := Sequence{L: l.L, J: j.J}
			a := Averages{
				Sequence: seq,
				DOF:      DOF{Neutron: j.NeutronDOF, Fission: j.FissionDOF, Competitive: j.CompetitiveDOF},
			}
			var table resonance.URRWidthTable
			if j.Table != nil {
				table = *j.Table
			}
			targets := []struct {
				dst      *[]float64
				constant *float64
				column   []float64
			}{
				{&a.Spacing, j.Constant.LevelSpacing, table.LevelSpacing},
				{&a.Neutron, j.Constant.NeutronWidth, table.NeutronWidth},
				{&a.Capture, j.Constant.CaptureWidth, table.CaptureWidth},
				{&a.Fission, j.Constant.FissionWidthA, table.FissionWidthA},
				{&a.Competitive, j.Constant.CompetitiveWidth, table.CompetitiveWidth},
			}
			for _, t := range targets {
				col, err := r.column(seq, egrid, t.constant, table.Energies, t.column, interpolate)
				if err != nil {
					return nil, err
				}
				*t.dst = col
			}
			for _, d := range a.Spacing {
				if d <= 0 {
					return nil, unresolvedErrorf("WidthsAndSpacings", ErrNoLevelSpacing)
				}
			}
			out = append(out, a)
		}
	}

	return out, nil
}

func (r *Region) column(seq Sequence, egrid []float64, constant *float64, energies, values []float64, interpolate bool) ([]float64, error) {
	out := make([]float64, len(egrid))
	switch {
	case constant != nil:
		for i := range out {
			out[i] = *constant
		}
	case len(values) == 0:
	case !interpolate:
		if len(values) != len(egrid) {
			return nil, unresolvedErrorf("WidthsAndSpacings", ErrInconsistentTable)
		}
		copy(out, values)
	default:
		p, err := xs.NewPointwise(energies, values, r.u.Interpolation)
		if err != nil {
			return nil, unresolvedErrorf("WidthsAndSpacings", ErrInconsistentTable)
		}
		fallback := false
		for i, e := range egrid {
			v, linLin, err := interpolateAt(p, e)
			if err != nil {
				return nil, unresolvedErrorf("WidthsAndSpacings", err)
			}
			out[i] = v
			fallback = fallback || linLin
		}
		if fallback {
			r.log.Warn("unresolved resonance widths contain an invalid interpolation, using lin-lin",
				zap.Stringer("sequence", seq), zap.Stringer("interpolation", r.u.Interpolation))
		}
	}

	return out, nil
}

// interpolateAt evaluates p at e, holding the end values outside its
// domain. linLin reports a fallback from a law invalid for the data.
func interpolateAt(p xs.Pointwise, e float64) (v float64, linLin bool, err error) {
	lo, hi := p.Domain()
	switch {
	case e <= lo:
		return p.Values[0], false, nil
	case e >= hi:
		return p.Values[p.Len()-1], false, nil
	}
	v, err = p.At(e)
	if errors.Is(err, xs.ErrInvalidInterpolation) {
		p.Interpolation = xs.LinLin
		v, err = p.At(e)
		linLin = true
	}

	return v, linLin, err
}

func (r *Region) k(e float64) float64 { return penetrability.WaveNumber(r.ev.MassRatio(), e) }

// rho uses the ENDF channel radius, which the unresolved region always
// calculates.
func (r *Region) rho(e float64) float64 {
	return r.k(e) * penetrability.ChannelRadius(r.ev.Target.Mass)
}

func (r *Region) gFactor(j float64) float64 {
	return (2*math.Abs(j) + 1) / (2 * (2*r.ev.Target.Spin + 1))
}
