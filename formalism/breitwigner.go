// SPDX-License-Identifier: MIT

package formalism

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/cmatrix"
	"github.com/katalvlaran/resonances/penetrability"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/xs"
)

// breitWigner holds the sorted table both Breit-Wigner flavours iterate.
type breitWigner struct {
	base
	sorted *resonance.Sorted
}

func newBreitWigner(b base) breitWigner {
	bw := breitWigner{base: b, sorted: resonance.SortLandJ(b.r.Resonances, b.kin)}
	bw.setResonances(bw.sorted.Energies, bw.sorted.Widths)

	return bw
}

// lWave is the per-energy state of one partial wave.
type lWave struct {
	phi, p, halfS float64
}

func (bw *breitWigner) wave(l int, rho, rhohat float64) lWave {
	return lWave{
		phi:   penetrability.Phase(l, rhohat),
		p:     penetrability.Penetrability(l, rho),
		halfS: 0.5 * penetrability.Shift(l, rho),
	}
}

// finish applies π/k², clamps and fills total and nonelastic.
func finish(set xs.Set, i int, k, el, capt, fis float64) {
	beta := math.Pi / (k * k)
	el, capt, fis = math.Max(beta*el, 0), math.Max(beta*capt, 0), math.Max(beta*fis, 0)
	set[Elastic][i] = el
	set[Capture][i] = capt
	set[Fission][i] = fis
	set[Total][i] = el + capt + fis
	set[Nonelastic][i] = capt + fis
}

func newStandardSet(n int) xs.Set {
	return xs.NewSet(n, Total, Elastic, Capture, Fission, Nonelastic)
}

// slbw is the single-level Breit-Wigner reconstructor.
type slbw struct {
	breitWigner
	levels []*channel.Map
}

func newSLBW(b base, opts Options) (Reconstructor, error) {
	s := &slbw{breitWigner: newBreitWigner(b)}
	if opts.Angular {
		levels, err := resonance.ByChannelLevels(b.r.Resonances, b.kin, opts.Scheme)
		if err != nil {
			return nil, formalismErrorf("New", err)
		}
		s.levels = levels
	}

	return s, nil
}

// CrossSection sums independent levels; each L adds its full hard-sphere
// term 4(2l+1)sin²φ.
func (s *slbw) CrossSection(energies []float64) (xs.Set, error) {
	out := newStandardSet(len(energies))
	for i, e := range energies {
		rho := s.kin.Rho(e, -1)
		rhohat := s.kin.RhoHat(e, -1)
		var el, capt, fis float64
		for _, lg := range s.sorted.Ls {
			w := s.wave(lg.L, rho, rhohat)
			sinPhi, cosPhi := math.Sincos(w.phi)
			for _, jg := range lg.Js {
				for _, seq := range jg.Spins {
					for r, er := range seq.Energies {
						gn := w.p * seq.NeutronWidths[r]
						de := e - (er + seq.NeutronWidths[r]*(seq.ShiftFactors[r]-w.halfS))
						gt := gn + seq.CaptureWidths[r] + seq.FissionWidthsA[r]
						den := de*de + gt*gt/4
						capt += jg.GFactor * gn * seq.CaptureWidths[r] / den
						fis += jg.GFactor * gn * seq.FissionWidthsA[r] / den
						el += jg.GFactor * gn * (gn - 2*sinPhi*sinPhi*gt + 4*sinPhi*cosPhi*(e-er)) / den
					}
				}
			}
			el += 4 * float64(2*lg.L+1) * sinPhi * sinPhi
		}
		finish(out, i, s.k(e), el, capt, fis)
	}

	return out, nil
}

func (s *slbw) SupportsAngularDistribution() bool { return false }

func (s *slbw) AngularDistribution([]float64, AngularOptions) (xs.Legendre, error) {
	return nil, ErrAngularUnsupported
}

// LevelScatteringMatrices returns one collision matrix per level at e.
func (s *slbw) LevelScatteringMatrices(e float64, opts PhaseOptions) ([]*cmatrix.Dense, error) {
	if s.levels == nil {
		return nil, ErrNoChannels
	}
	rhohat := s.kin.RhoHat(e, -1)
	if opts.ComputedRadius {
		rhohat = s.kin.Rho(e, -1)
	}
	table := s.r.Resonances
	out := make([]*cmatrix.Dense, len(s.levels))
	for iL, m := range s.levels {
		chans := m.Channels()
		er := table[iL].Energy
		erp, gtot := er, 0.0
		sqrtG := make([]float64, len(chans))
		phases := make([]complex128, len(chans))
		for ic, c := range chans {
			g, _ := m.Width(c, iL)
			phases[ic] = 1
			if c.Reaction == resonance.ReactionElastic {
				pE := penetrability.Evaluate(c.L, s.kin.Rho(e, c.L))
				pR := penetrability.Evaluate(c.L, s.kin.Rho(math.Abs(er), c.L))
				erp += (pR.S - pE.S) * g / (2 * pR.P)
				g = g * pE.P / pR.P
				phases[ic] = cmplx.Exp(complex(0, -penetrability.Phase(c.L, rhohat)))
			}
			sqrtG[ic] = math.Sqrt(g)
			gtot += g
		}
		u := cmatrix.MustIdentity(len(chans))
		den := complex(erp-e, -gtot/2)
		for i1, c1 := range chans {
			for i2, c2 := range chans {
				if c1.Index != c2.Index {
					continue
				}
				u.AddAt(i1, i2, complex(0, sqrtG[i1]*sqrtG[i2])/den)
				u.Put(i1, i2, u.Get(i1, i2)*phases[i1]*phases[i2])
			}
		}
		out[iL] = u
	}

	return out, nil
}

// mlbw is the multi-level Breit-Wigner reconstructor.
type mlbw struct {
	breitWigner
	set *resonance.ChannelSet
	v   *view
}

func newMLBW(b base, opts Options) (Reconstructor, error) {
	m := &mlbw{breitWigner: newBreitWigner(b)}
	if opts.Angular {
		set, err := resonance.ByChannel(b.r.Resonances, b.kin, b.r.LValuesNeeded, opts.Scheme, false)
		if err != nil {
			return nil, formalismErrorf("New", err)
		}
		m.set = set
		m.v = newView(set.Kept, set.Eliminated, set.Energies)
	}

	return m, nil
}

// CrossSection uses RECENT's elastic expression, which is stable where
// |1 − U|² loses precision, and adds hard-sphere scattering for J values
// the table does not list.
func (m *mlbw) CrossSection(energies []float64) (xs.Set, error) {
	out := newStandardSet(len(energies))
	for i, e := range energies {
		rho := m.kin.Rho(e, -1)
		rhohat := m.kin.RhoHat(e, -1)
		var el, capt, fis float64
		for _, lg := range m.sorted.Ls {
			w := m.wave(lg.L, rho, rhohat)
			sinPhi, cosPhi := math.Sincos(w.phi)
			sin2ps := 2 * sinPhi * cosPhi
			sinps2 := 2 * sinPhi * sinPhi
			for _, jg := range lg.Js {
				for _, seq := range jg.Spins {
					var t1, t2 float64
					for r, er := range seq.Energies {
						de := e - (er + seq.NeutronWidths[r]*(seq.ShiftFactors[r]-w.halfS))
						gt := w.p*seq.NeutronWidths[r] + seq.CaptureWidths[r] + seq.FissionWidthsA[r]
						common := w.p * seq.NeutronWidths[r] / (de*de + gt*gt/4)
						capt += jg.GFactor * common * seq.CaptureWidths[r]
						fis += jg.GFactor * common * seq.FissionWidthsA[r]
						t1 += gt / 2 * common
						t2 += de * common
					}
					el += jg.GFactor * ((sinps2-t1)*(sinps2-t1) + (sin2ps+t2)*(sin2ps+t2))
				}
			}
			el += 2 * sinPhi * sinPhi * 2 * m.sorted.MissingG[lg.L]
		}
		finish(out, i, m.k(e), el, capt, fis)
	}

	return out, nil
}

func (m *mlbw) SupportsAngularDistribution() bool { return true }

func (m *mlbw) Channels() []channel.Channel {
	if m.v == nil {
		return nil
	}

	return append([]channel.Channel(nil), m.v.chans...)
}

// ScatteringMatrix builds U directly from level widths: energies move by
// the shift-factor difference and elastic widths scale with P(E)/P(|Er|).
// A tabulated total width larger than the sum of partials is kept as an
// implicit competitive width.
func (m *mlbw) ScatteringMatrix(e float64, opts PhaseOptions) (*cmatrix.Dense, error) {
	if m.v == nil {
		return nil, ErrNoChannels
	}
	if err := checkOpen(m.v, e); err != nil {
		return nil, err
	}
	table := m.r.Resonances
	nR, nC := len(table), len(m.v.chans)
	sqrtG := make([][]float64, nC)
	gtot := make([]float64, nR)
	erp := make([]float64, nR)
	for iR, r := range table {
		erp[iR] = r.Energy
	}
	for ic, c := range m.v.chans {
		sqrtG[ic] = make([]float64, nR)
		for iR, g := range m.v.kept.Widths(c) {
			if c.Reaction == resonance.ReactionElastic {
				er := table[iR].Energy
				pE := penetrability.Evaluate(c.L, m.kin.Rho(e, c.L))
				pR := penetrability.Evaluate(c.L, m.kin.Rho(math.Abs(er), c.L))
				erp[iR] += (pR.S - pE.S) * g / 2 / pR.P
				g = g * pE.P / pR.P
			}
			sqrtG[ic][iR] = math.Sqrt(g)
			gtot[iR] += g
		}
	}
	for iR := range gtot {
		gtot[iR] = math.Max(gtot[iR], m.sorted.Widths[iR])
	}

	phases := m.hardSpherePhases(m.v, e, opts)
	u := cmatrix.MustIdentity(nC)
	for i1 := 0; i1 < nC; i1++ {
		for i2 := i1; i2 < nC; i2++ {
			var sum complex128
			for iR := 0; iR < nR; iR++ {
				sum += complex(sqrtG[i1][iR]*sqrtG[i2][iR], 0) / complex(erp[iR]-e, -gtot[iR]/2)
			}
			v := (u.Get(i1, i2) + 1i*sum) * phases[i1] * phases[i2]
			u.Put(i1, i2, v)
			u.Put(i2, i1, v)
		}
	}

	return u, nil
}

func (m *mlbw) TMatrix(e float64, opts PhaseOptions) (*cmatrix.Dense, error) {
	u, err := m.ScatteringMatrix(e, opts)
	if err != nil {
		return nil, err
	}

	return transitionMatrix(u, nil), nil
}

func (m *mlbw) AngularDistribution(energies []float64, opts AngularOptions) (xs.Legendre, error) {
	if m.v == nil {
		return nil, ErrNoChannels
	}

	return angularDistribution(m, energies, opts)
}

func (m *mlbw) viewFor([]float64) (*view, error) { return m.v, nil }

func (m *mlbw) transition(_ *view, e float64, opts PhaseOptions) (*cmatrix.Dense, error) {
	return m.TMatrix(e, opts)
}

func (m *mlbw) legendreMax(*view) int { return lMaxFromL(len(m.sorted.Ls) - 1) }
