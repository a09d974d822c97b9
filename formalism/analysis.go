// SPDX-License-Identifier: MIT

package formalism

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/penetrability"
)

const (
	// DefaultResonancesPerBin is the target bin population of AverageQuantities.
	DefaultResonancesPerBin = 10

	// noSpacing marks a bin with too few resonances for a level spacing.
	noSpacing = -1e9

	// scatteringLengthEnergy is where the potential cross section is taken.
	scatteringLengthEnergy = 1e-5
)

// channelViewer is implemented by reconstructors with a channel view.
type channelViewer interface {
	channelView() (*view, *base)
}

func (m *mlbw) channelView() (*view, *base)        { return m.v, &m.base }
func (rm *reichMoore) channelView() (*view, *base) { return rm.v, &rm.base }
func (m *rml) channelView() (*view, *base)         { return m.v, &m.base }

func viewOf(r Reconstructor) (*view, *base, error) {
	cv, ok := r.(channelViewer)
	if !ok {
		return nil, nil, ErrNoChannels
	}
	v, b := cv.channelView()
	if v == nil {
		return nil, nil, ErrNoChannels
	}

	return v, b, nil
}

// allChannels lists kept channels, then eliminated ones.
func (v *view) allChannels() []channel.Channel {
	return append(v.kept.Channels(), v.elim.Channels()...)
}

func (v *view) widths(c channel.Channel) map[int]float64 {
	if c.Eliminated {
		return v.elim.Widths(c)
	}

	return v.kept.Widths(c)
}

// Averages are per-bin mean widths and level spacings of one channel.
type Averages struct {
	Channel channel.Channel
	// Bins are len(Widths)+1 log-spaced edges.
	Bins []float64
	// Widths and Spacings are bin means; a bin with fewer than two
	// spacings reports a spacing of -1e9.
	Widths, Spacings []float64
	// WidthsSD and SpacingsSD are population standard deviations.
	WidthsSD, SpacingsSD []float64
}

// AverageQuantities bins each channel's resonances in equal-lethargy bins
// from its first resonance to the region's upper bound, aiming for perBin
// resonances per bin.
func AverageQuantities(r Reconstructor, perBin int) ([]Averages, error) {
	v, b, err := viewOf(r)
	if err != nil {
		return nil, formalismErrorf("AverageQuantities", err)
	}
	if perBin <= 0 {
		perBin = DefaultResonancesPerBin
	}
	lower, upper := b.Bounds()

	var out []Averages
	for _, c := range v.allChannels() {
		ws := v.widths(c)
		idx := make([]int, 0, len(ws))
		for iR := range ws {
			idx = append(idx, iR)
		}
		sort.Ints(idx)
		if len(idx) == 0 {
			continue
		}
		sort.SliceStable(idx, func(x, y int) bool { return v.energies[idx[x]] < v.energies[idx[y]] })

		first := math.Max(lower, v.energies[minIndex(ws)])
		n := max(len(idx)/perBin, 1) + 1
		bins := make([]float64, n)
		floats.LogSpan(bins, first, upper)

		a := Averages{
			Channel:    c,
			Bins:       bins,
			Widths:     make([]float64, n-1),
			Spacings:   make([]float64, n-1),
			WidthsSD:   make([]float64, n-1),
			SpacingsSD: make([]float64, n-1),
		}
		for ib := 0; ib < n-1; ib++ {
			var widths, spacings []float64
			last, haveLast := 0.0, false
			for _, iR := range idx {
				er := v.energies[iR]
				if er < bins[ib] || er > bins[ib+1] {
					continue
				}
				widths = append(widths, ws[iR])
				if haveLast && last > lower && er > lower {
					spacings = append(spacings, er-last)
				}
				last, haveLast = er, true
			}
			switch {
			case len(spacings) > 1:
				mean, variance := stat.PopMeanVariance(spacings, nil)
				a.Spacings[ib], a.SpacingsSD[ib] = mean, math.Sqrt(variance)
				mean, variance = stat.PopMeanVariance(widths, nil)
				a.Widths[ib], a.WidthsSD[ib] = mean, math.Sqrt(variance)
			case len(widths) == 1:
				a.Spacings[ib], a.Widths[ib] = noSpacing, widths[0]
			default:
				a.Spacings[ib] = noSpacing
			}
		}
		out = append(out, a)
	}

	return out, nil
}

func minIndex(ws map[int]float64) int {
	first := math.MaxInt
	for iR := range ws {
		if iR < first {
			first = iR
		}
	}

	return first
}

// Transmission holds sum-rule transmission coefficients per bin.
type Transmission struct {
	Channel channel.Channel
	Bins    []float64
	Tc      []float64
}

// SumRuleTc returns Moldauer's ½x²(√(1+4/x²) − 1) with x = 2πΓ/D, or 0
// when x < 1e-16.
func SumRuleTc(width, spacing float64) float64 {
	x := 2 * math.Pi * width / spacing
	if x < 1e-16 {
		return 0
	}

	return 0.5 * x * x * (math.Sqrt(1+4/(x*x)) - 1)
}

// TransmissionCoefficients applies Moldauer's sum rule to AverageQuantities.
func TransmissionCoefficients(r Reconstructor, perBin int) ([]Transmission, error) {
	aves, err := AverageQuantities(r, perBin)
	if err != nil {
		return nil, err
	}
	out := make([]Transmission, len(aves))
	for i, a := range aves {
		t := Transmission{Channel: a.Channel, Bins: a.Bins, Tc: make([]float64, len(a.Widths))}
		for ib := range a.Widths {
			t.Tc[ib] = SumRuleTc(a.Widths[ib], a.Spacings[ib])
		}
		out[i] = t
	}

	return out, nil
}

// PoleStrength is s_c = T_c/(4πP_c) per bin, P_c taken at the bin's lower edge.
type PoleStrength struct {
	Transmission
	Sc []float64
}

func PoleStrengths(r Reconstructor, perBin int) ([]PoleStrength, error) {
	tcs, err := TransmissionCoefficients(r, perBin)
	if err != nil {
		return nil, err
	}
	_, b, _ := viewOf(r)
	out := make([]PoleStrength, len(tcs))
	for i, t := range tcs {
		p := PoleStrength{Transmission: t, Sc: make([]float64, len(t.Tc))}
		for ib, tc := range t.Tc {
			pen := penetrability.Penetrability(t.Channel.L, b.kin.Rho(t.Bins[ib], t.Channel.L))
			p.Sc[ib] = tc / (4 * math.Pi * pen)
		}
		out[i] = p
	}

	return out, nil
}

// ChannelValue pairs a channel with a scalar result.
type ChannelValue struct {
	Channel channel.Channel
	Value   float64
}

// StrengthFunctions returns the first bin's pole strength, or the second
// bin's when the first is not positive.
func StrengthFunctions(r Reconstructor, perBin int) ([]ChannelValue, error) {
	scs, err := PoleStrengths(r, perBin)
	if err != nil {
		return nil, err
	}
	out := make([]ChannelValue, 0, len(scs))
	for _, s := range scs {
		if len(s.Sc) == 0 {
			continue
		}
		v := s.Sc[0]
		if v <= 0 && len(s.Sc) > 1 {
			v = s.Sc[1]
		}
		out = append(out, ChannelValue{Channel: s.Channel, Value: v})
	}

	return out, nil
}

// ScatteringLength returns R' = √(σ_pot/4π) in b^1/2 with σ_pot the
// g-weighted hard-sphere cross section of the elastic channels at 1e-5 eV.
func ScatteringLength(r Reconstructor) (float64, error) {
	v, b, err := viewOf(r)
	if err != nil {
		return 0, formalismErrorf("ScatteringLength", err)
	}
	e := scatteringLengthEnergy
	k := b.k(e)
	var sig float64
	for _, c := range v.kept.Channels() {
		if !c.Elastic {
			continue
		}
		s := math.Sin(penetrability.Phase(c.L, b.kin.Rho(e, c.L)))
		sig += c.GFactor * 4 * math.Pi * s * s / (k * k)
	}

	return math.Sqrt(sig / (4 * math.Pi)), nil
}

// PorterThomasDOF estimates each channel's χ² degrees of freedom by the
// method of moments, ν = 2·mean²/variance, from widths of resonances in
// [emin, emax]; emax <= 0 means no upper limit. Eliminated channels give 0;
// too few or identical widths give 1.
func PorterThomasDOF(r Reconstructor, emin, emax float64) ([]ChannelValue, error) {
	v, _, err := viewOf(r)
	if err != nil {
		return nil, formalismErrorf("PorterThomasDOF", err)
	}
	var out []ChannelValue
	for _, c := range v.allChannels() {
		cv := ChannelValue{Channel: c, Value: 1}
		ws := v.widths(c)
		switch {
		case c.Eliminated:
			cv.Value = 0
		case len(ws) >= 2:
			var widths []float64
			for iR, w := range ws {
				er := v.energies[iR]
				if er < emin || (emax > 0 && er > emax) {
					continue
				}
				widths = append(widths, w)
			}
			if len(widths) < 2 || floats.Min(widths) == floats.Max(widths) {
				break
			}
			mean := stat.Mean(widths, nil)
			scaled := make([]float64, len(widths))
			floats.ScaleTo(scaled, 1/mean, widths)
			_, variance := stat.PopMeanVariance(scaled, nil)
			cv.Value = 2 / variance
		}
		out = append(out, cv)
	}

	return out, nil
}

// BackgroundRMatrix is Froehner's background R matrix over [emin, emax]:
//
//	2s(atanh(2ΔE/I) + iΓI/(4B)) + R∞,  I = emax − emin, B = I²/4 − ΔE²
//
// It is zero where B vanishes.
func BackgroundRMatrix(energies []float64, emin, emax, gammaWidth, poleStrength, rInf float64) ([]complex128, error) {
	out := make([]complex128, len(energies))
	width := emax - emin
	mid := 0.5 * (emax + emin)
	for i, e := range energies {
		if e < emin || e > emax {
			return nil, formalismErrorf("BackgroundRMatrix", ErrBackgroundRange)
		}
		de := e - mid
		bb := width*width/4 - de*de
		if bb == 0 {
			continue
		}
		out[i] = 2*complex(poleStrength, 0)*complex(math.Atanh(2*de/width), gammaWidth*width/4/bb) + complex(rInf, 0)
	}

	return out, nil
}
