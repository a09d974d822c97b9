// SPDX-License-Identifier: MIT

package unresolved

import (
	"math"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/penetrability"
	"github.com/katalvlaran/resonances/spin"
	"github.com/katalvlaran/resonances/xs"
)

// CrossSection reconstructs the average cross sections on EnergyGrid and
// returns them with the region's interpolation law, restricted to its
// bounds.
func (r *Region) CrossSection() (map[string]xs.Pointwise, error) {
	egrid, interpolate, err := r.EnergyGrid()
	if err != nil {
		return nil, err
	}
	aves, err := r.WidthsAndSpacings(egrid, interpolate)
	if err != nil {
		return nil, err
	}
	set := r.Evaluate(egrid, aves)

	out := make(map[string]xs.Pointwise, len(set))
	for name, values := range set {
		p, err := xs.NewPointwise(egrid, values, r.u.Interpolation)
		if err != nil {
			return nil, unresolvedErrorf("CrossSection", err)
		}
		if out[name], err = p.DomainSlice(r.u.LowerBound, r.u.UpperBound); err != nil {
			return nil, unresolvedErrorf("CrossSection", err)
		}
	}

	return out, nil
}

// Evaluate sums the average cross sections of aves, which must be laid out
// on energies as WidthsAndSpacings does.
func (r *Region) Evaluate(energies []float64, aves []Averages) xs.Set {
	out := xs.NewSet(len(energies), xs.Total, xs.Elastic, xs.Capture, xs.Fission, xs.Nonelastic)
	radius := r.u.ScatteringRadius

	for i, e := range energies {
		k := r.k(e)
		rho, rhoHat := r.rho(e), radius*k
		var capture, elastic, fission float64
		seen := make(map[int]bool)
		for _, a := range aves {
			sin := math.Sin(penetrability.Phase(a.L, rhoHat))
			sin2 := sin * sin
			if !seen[a.L] {
				seen[a.L] = true
				elastic += 4 * float64(2*a.L+1) * sin2
			}
			// tabulated neutron widths are reduced widths
			vl := a.DOF.Neutron * penetrability.Penetrability(a.L, rho) / rho
			w := Widths{
				Neutron:     vl * math.Sqrt(e) * a.Neutron[i],
				Capture:     a.Capture[i],
				Fission:     a.Fission[i],
				Competitive: a.Competitive[i],
			}
			rn, rc, rf := FluctuationIntegrals(w, a.DOF)
			comfac := 2 * math.Pi * r.gFactor(a.J) * w.Neutron / a.Spacing[i]
			capture += rc * w.Capture * comfac
			fission += rf * w.Fission * comfac
			elastic += (rn*w.Neutron - 2*sin2) * comfac
		}
		beta := math.Pi / (k * k)
		out[xs.Capture][i] = beta * capture
		out[xs.Elastic][i] = beta * elastic
		out[xs.Fission][i] = beta * fission
	}
	for _, name := range []string{xs.Capture, xs.Elastic, xs.Fission} {
		xs.Clamp(out[name])
	}
	for i := range energies {
		out[xs.Nonelastic][i] = out[xs.Capture][i] + out[xs.Fission][i]
		out[xs.Total][i] = out[xs.Elastic][i] + out[xs.Nonelastic][i]
	}

	return out
}

// Transmission holds one sequence channel's transmission coefficients on
// the region's energy grid.
type Transmission struct {
	Channel  channel.Channel
	Energies []float64
	Tc       []float64
}

// SumRuleTc is 2η²(√(1+1/η²) − 1) with η = πΓ/D, or 0 when η is 0.
func SumRuleTc(width, spacing float64) float64 {
	eta := math.Pi * width / spacing
	if eta == 0 {
		return 0
	}
	eta2 := eta * eta

	return 2 * eta2 * (math.Sqrt(1+1/eta2) - 1)
}

// TransmissionCoefficients applies Moldauer's sum rule to the average
// widths of every sequence, for the elastic, capture and (unless
// skipFission) fission channels in that order. Neutron widths are turned
// into ordinary widths with √E·P_l(ρ)/ρ.
func (r *Region) TransmissionCoefficients(skipFission bool) ([]Transmission, error) {
	egrid, interpolate, err := r.EnergyGrid()
	if err != nil {
		return nil, err
	}
	aves, err := r.WidthsAndSpacings(egrid, interpolate)
	if err != nil {
		return nil, err
	}

	reactions := []struct {
		name  string
		class channel.Class
		width func(a Averages, i int, e float64) float64
	}{
		{xs.Elastic, channel.Neutron, func(a Averages, i int, e float64) float64 {
			rho := r.rho(e)
			return math.Sqrt(e) * penetrability.Penetrability(a.L, rho) / rho * a.Neutron[i]
		}},
		{xs.Capture, channel.Gamma, func(a Averages, i int, _ float64) float64 { return a.Capture[i] }},
		{xs.Fission, channel.Fission, func(a Averages, i int, _ float64) float64 { return a.Fission[i] }},
	}

	var out []Transmission
	for _, rx := range reactions {
		if rx.name == xs.Fission && skipFission {
			continue
		}
		for _, a := range aves {
			if rx.name == xs.Fission && allZero(a.Fission) {
				continue
			}
			c := channel.Channel{
				L: a.L, J2: spin.Twice(math.Abs(a.J)), S2: spin.Twice(math.Abs(float64(a.L) - a.J)),
				Reaction: rx.name, Index: len(out), GFactor: r.gFactor(a.J),
				Elastic: rx.name == xs.Elastic, Class: rx.class,
			}
			t := Transmission{Channel: c, Energies: egrid, Tc: make([]float64, len(egrid))}
			for i, e := range egrid {
				t.Tc[i] = SumRuleTc(rx.width(a, i, e), a.Spacing[i])
			}
			out = append(out, t)
		}
	}

	return out, nil
}

func allZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}

	return true
}
