// SPDX-License-Identifier: MIT

package formalism

import (
	"math"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/cmatrix"
	"github.com/katalvlaran/resonances/penetrability"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/xs"
)

// levelInverse returns RI and SI with (I + R + iS)(I + RI + iSI) = I, where
//
//	R_ij = p_i p_j Σ_r w_ir w_jr Γ_r / ((Er − E)² + Γ_r²)
//	S_ij = p_i p_j Σ_r w_ir w_jr (Er − E) / ((Er − E)² + Γ_r²)
//
// widths[i][r] are reduced widths, pens[i] the √P factors at E and
// half[r] the eliminated half-widths.
func levelInverse(e float64, er, half []float64, widths [][]float64, pens []float64) (ri, si *cmatrix.Dense, err error) {
	dim := len(widths)
	m := cmatrix.MustIdentity(dim)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			var r, s float64
			for k, ek := range er {
				de := ek - e
				den := de*de + half[k]*half[k]
				wij := widths[i][k] * widths[j][k]
				r += wij * half[k] / den
				s += wij * de / den
			}
			pij := pens[i] * pens[j]
			v := complex(pij*r, pij*s)
			m.AddAt(i, j, v)
			if i != j {
				m.AddAt(j, i, v)
			}
		}
	}
	inv, err := cmatrix.Inverse(m)
	if err != nil {
		return nil, nil, err
	}
	ri = cmatrix.MustIdentity(dim)
	si = cmatrix.MustIdentity(dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			x := inv.Get(i, j)
			d := 0.0
			if i == j {
				d = 1
			}
			ri.Put(i, j, complex(real(x)-d, 0))
			si.Put(i, j, complex(imag(x), 0))
		}
	}

	return ri, si, nil
}

// eliminatedAbsorption returns (Y R Y†)_dd for Y = (I + R + iS)⁻¹, the
// share of entrance channel d lost to the eliminated channels. With
// R = Σ_r v_r v_rᵀ Γ_r/((Er − E)² + Γ_r²) it is a sum of non-negative
// terms, so it keeps full precision where |U_dd| is close to 1.
func eliminatedAbsorption(e float64, er, half []float64, widths [][]float64, pens []float64, ri, si *cmatrix.Dense, d int) float64 {
	var sum float64
	for k, ek := range er {
		if half[k] == 0 {
			continue
		}
		de := ek - e
		den := de*de + half[k]*half[k]
		var yr, yi float64
		for i := range widths {
			v := pens[i] * widths[i][k]
			y := re(ri, d, i)
			if i == d {
				y++
			}
			yr += y * v
			yi += re(si, d, i) * v
		}
		sum += half[k] / den * (yr*yr + yi*yi)
	}

	return sum
}

// re returns the real part of element (i, j).
func re(m *cmatrix.Dense, i, j int) float64 { return real(m.Get(i, j)) }

func signedSqrt(x float64) float64 {
	return math.Copysign(math.Sqrt(math.Abs(x)), x)
}

// reichMoore is the LRF=3 reconstructor.
type reichMoore struct {
	breitWigner
	haveFission bool
	set         *resonance.ChannelSet
	v           *view
}

func newReichMoore(b base, opts Options) (Reconstructor, error) {
	rm := &reichMoore{breitWigner: newBreitWigner(b), haveFission: b.r.Resonances.HasFission()}
	if opts.Angular {
		set, err := resonance.ByChannel(b.r.Resonances, b.kin, b.r.LValuesNeeded, opts.Scheme, true)
		if err != nil {
			return nil, formalismErrorf("New", err)
		}
		rm.set = set
		rm.v = newView(set.Kept, set.Eliminated, set.Energies)
	}

	return rm, nil
}

// CrossSection inverts one level matrix per (L, J, s) sequence: the
// neutron channel alone, or neutron plus two fission channels.
func (rm *reichMoore) CrossSection(energies []float64) (xs.Set, error) {
	out := newStandardSet(len(energies))
	for i, e := range energies {
		var el, capt, fis float64
		for _, lg := range rm.sorted.Ls {
			l := lg.L
			phi := penetrability.Phase(l, rm.kin.RhoHat(e, l))
			sqrtP := math.Sqrt(penetrability.Penetrability(l, rm.kin.Rho(e, l)))
			sinPhi, cosPhi := math.Sincos(phi)
			for _, jg := range lg.Js {
				for _, seq := range jg.Spins {
					n := seq.Len()
					half := make([]float64, n)
					neutron := make([]float64, n)
					for r := 0; r < n; r++ {
						half[r] = seq.CaptureWidths[r] * 0.5
						neutron[r] = math.Sqrt(seq.NeutronWidths[r] * 0.5)
					}
					widths := [][]float64{neutron}
					pens := []float64{sqrtP}
					if rm.haveFission {
						fa := make([]float64, n)
						fb := make([]float64, n)
						for r := 0; r < n; r++ {
							fa[r] = signedSqrt(seq.FissionWidthsA[r] * 0.5)
							fb[r] = signedSqrt(seq.FissionWidthsB[r] * 0.5)
						}
						widths = append(widths, fa, fb)
						pens = append(pens, 1, 1)
					}
					ri, si, err := levelInverse(e, seq.Energies, half, widths, pens)
					if err != nil {
						return nil, formalismErrorf("CrossSection", err)
					}
					r00, s00 := re(ri, 0, 0), re(si, 0, 0)
					a := 2*sinPhi*sinPhi + 2*r00
					b := 2*sinPhi*cosPhi + 2*s00
					el += jg.GFactor * (a*a + b*b)
					capt += 4 * jg.GFactor * eliminatedAbsorption(e, seq.Energies, half, widths, pens, ri, si, 0)
					if rm.haveFission {
						for c := 1; c <= 2; c++ {
							fis += 4 * jg.GFactor * (re(ri, 0, c)*re(ri, 0, c) + re(si, 0, c)*re(si, 0, c))
						}
					}
				}
			}
			el += 2 * sinPhi * sinPhi * 2 * rm.sorted.MissingG[l]
		}

		finish(out, i, rm.k(e), el, capt, fis)
	}

	return out, nil
}

func (rm *reichMoore) SupportsAngularDistribution() bool { return true }

func (rm *reichMoore) Channels() []channel.Channel {
	if rm.v == nil {
		return nil
	}

	return append([]channel.Channel(nil), rm.v.chans...)
}

// l0 uses S = 0 and B = 0, so L⁰ = iP.
func (rm *reichMoore) l0(v *view, e float64) ([]complex128, error) {
	out := make([]complex128, len(v.chans))
	for i, c := range v.chans {
		out[i] = complex(0, penetrability.Penetrability(c.L, rm.kin.Rho(e-c.Xi, c.L)))
	}

	return out, nil
}

// rMatrix sums γ_c γ_c' / (Er − E − iΓγ/2) over resonances.
func (rm *reichMoore) rMatrix(v *view, e float64) (*cmatrix.Dense, error) {
	n := len(v.chans)
	r, err := cmatrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	red := make([]float64, n)
	has := make([]bool, n)
	for iR, er := range v.energies {
		gam := v.gammaWidth(iR)
		if gam == 0 {
			return nil, formalismErrorf("rMatrix", ErrMissingGammaWidth)
		}
		for ic, c := range v.chans {
			w, ok := v.kept.Width(c, iR)
			has[ic], red[ic] = ok, 0
			if !ok {
				continue
			}
			pen := 1.0
			if c.Reaction == resonance.ReactionElastic {
				pen = penetrability.Penetrability(c.L, rm.kin.Rho(math.Abs(er), c.L))
			}
			red[ic] = math.Copysign(math.Sqrt(math.Abs(w)/(2*math.Abs(pen))), w)
		}
		den := complex(er-e, -gam/2)
		for i1 := 0; i1 < n; i1++ {
			if !has[i1] {
				continue
			}
			for i2 := 0; i2 <= i1; i2++ {
				if !has[i2] {
					continue
				}
				d := complex(red[i1]*red[i2], 0) / den
				r.AddAt(i1, i2, d)
				if i1 != i2 {
					r.AddAt(i2, i1, d)
				}
			}
		}
	}

	return r, nil
}

func (rm *reichMoore) eiphis(v *view, e float64, opts PhaseOptions) ([]complex128, error) {
	return rm.hardSpherePhases(v, e, opts), nil
}

func (rm *reichMoore) ScatteringMatrix(e float64, opts PhaseOptions) (*cmatrix.Dense, error) {
	if rm.v == nil {
		return nil, ErrNoChannels
	}

	return collisionMatrix(rm, rm.v, e, opts)
}

func (rm *reichMoore) TMatrix(e float64, opts PhaseOptions) (*cmatrix.Dense, error) {
	u, err := rm.ScatteringMatrix(e, opts)
	if err != nil {
		return nil, err
	}

	return transitionMatrix(u, nil), nil
}

func (rm *reichMoore) AngularDistribution(energies []float64, opts AngularOptions) (xs.Legendre, error) {
	if rm.v == nil {
		return nil, ErrNoChannels
	}

	return angularDistribution(rm, energies, opts)
}

func (rm *reichMoore) viewFor([]float64) (*view, error) { return rm.v, nil }

func (rm *reichMoore) transition(v *view, e float64, opts PhaseOptions) (*cmatrix.Dense, error) {
	u, err := collisionMatrix(rm, v, e, opts)
	if err != nil {
		return nil, err
	}

	return transitionMatrix(u, nil), nil
}

func (rm *reichMoore) legendreMax(*view) int { return lMaxFromL(len(rm.sorted.Ls) - 1) }

// RMatrix returns the channel R matrix at e.
func (rm *reichMoore) RMatrix(e float64) (*cmatrix.Dense, error) {
	if rm.v == nil {
		return nil, ErrNoChannels
	}

	return rm.rMatrix(rm.v, e)
}

func (rm *reichMoore) L0Matrix(e float64) (*cmatrix.Dense, error) {
	if rm.v == nil {
		return nil, ErrNoChannels
	}

	return l0Matrix(rm, rm.v, e)
}

func (rm *reichMoore) XMatrix(e float64) (*cmatrix.Dense, error) {
	if rm.v == nil {
		return nil, ErrNoChannels
	}

	return xMatrix(rm, rm.v, e)
}

func (rm *reichMoore) WMatrix(e float64) (*cmatrix.Dense, error) {
	if rm.v == nil {
		return nil, ErrNoChannels
	}

	return wMatrix(rm, rm.v, e)
}
