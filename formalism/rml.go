// SPDX-License-Identifier: MIT

package formalism

import (
	"math"
	"math/cmplx"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/cmatrix"
	"github.com/katalvlaran/resonances/penetrability"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/xs"
)

// phaseFloor zeroes hard-sphere phases with φ/ρ below it.
const phaseFloor = 1e-6

// rmlColumn is one width column of a spin group with its pair resolved.
type rmlColumn struct {
	l       int
	info    resonance.PairInfo
	class   channel.Class
	capture bool
	// reduced holds signed reduced widths per row.
	reduced []float64
}

func (c *rmlColumn) elastic() bool { return c.info.Pair.Tag == resonance.TagElastic }

func (c *rmlColumn) fission() bool {
	return c.class == channel.Fission || c.info.Pair.Tag == resonance.TagFission
}

func (c *rmlColumn) open(e float64) bool { return c.info.Xi <= 0 || e > c.info.Xi }

type rmlGroup struct {
	g        float64
	energies []float64
	// half is Γγ/2 per row, zero without a capture column.
	half []float64
	cols []rmlColumn
}

// rml is the R-Matrix Limited reconstructor.
type rml struct {
	base
	groups      []rmlGroup
	competitive []string
	ch          *resonance.RMLChannels
	v           *view
}

func newRML(b base, opts Options) (Reconstructor, error) {
	rm := b.r.RMatrix
	ch, err := resonance.ByChannelRML(b.ev, b.r, nil, b.log)
	if err != nil {
		return nil, formalismErrorf("New", err)
	}
	m := &rml{base: b, ch: ch}
	m.setResonances(ch.Energies, ch.Widths)
	m.thresholds = append([]float64(nil), ch.Thresholds...)
	m.v = newView(ch.Kept, ch.Eliminated, ch.Energies)
	m.v.info = ch.Info

	seen := make(map[string]bool)
	warned := false
	for _, sg := range rm.SpinGroups {
		grp := rmlGroup{
			g:        (2*math.Abs(sg.J) + 1) / (2 * (2*b.ev.Target.Spin + 1)),
			energies: make([]float64, len(sg.Rows)),
			half:     make([]float64, len(sg.Rows)),
		}
		for ri, row := range sg.Rows {
			grp.energies[ri] = row.Energy
		}
		for ci, col := range sg.Columns {
			info, err := resonance.ColumnInfo(b.ev, rm, sg, col)
			if err != nil {
				return nil, formalismErrorf("New", err)
			}
			c := rmlColumn{l: col.L, info: info, class: resonance.ChannelClass(info.A.Name, info.B.Name)}
			c.capture = c.class == channel.Gamma || info.Pair.Tag == resonance.TagCapture
			if c.capture {
				for ri, row := range sg.Rows {
					grp.half[ri] = row.Widths[ci] / 2
				}
				continue
			}
			c.reduced = make([]float64, len(sg.Rows))
			for ri, row := range sg.Rows {
				pen, err := m.penetrability(&c, math.Abs(math.Abs(row.Energy)-info.Xi))
				if err != nil {
					return nil, formalismErrorf("New", err)
				}
				if pen > 0 {
					w := row.Widths[ci]
					c.reduced[ri] = math.Copysign(math.Sqrt(math.Abs(w)/(2*pen)), w)
				}
			}
			switch {
			case c.fission():
				if !warned {
					b.log.Warn("fission columns are summed into the fission cross section",
						zap.String("pair", info.Pair.Name))
					warned = true
				}
			case !c.elastic() && !seen[info.Pair.Name]:
				seen[info.Pair.Name] = true
				m.competitive = append(m.competitive, info.Pair.Name)
			}
			grp.cols = append(grp.cols, c)
		}
		m.groups = append(m.groups, grp)
	}
	sort.Strings(m.competitive)

	return m, nil
}

// penetrability returns P for column c at ex above its threshold. Fission
// and photon columns have unit penetrability.
func (m *rml) penetrability(c *rmlColumn, ex float64) (float64, error) {
	if c.class == channel.Gamma || c.class == channel.Fission {
		return 1, nil
	}
	masses := c.info.Masses(m.ev)
	rho := penetrability.WaveNumberPair(masses, ex) * c.info.TrueRadius(m.r, m.ev.Target.Mass)
	eta := penetrability.Sommerfeld(c.info.A.Charge, c.info.B.Charge, masses, ex)
	if eta <= 0 {
		return penetrability.Penetrability(c.l, rho), nil
	}
	if ex <= 0 {
		return 0, nil
	}
	f, err := penetrability.CoulombFactors(c.l, rho, eta)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f.P) {
		return 0, ErrNaN
	}

	return f.P, nil
}

// CrossSection evaluates every spin group over the columns open at each
// energy, in the Reich-Moore approximation for capture.
func (m *rml) CrossSection(energies []float64) (xs.Set, error) {
	names := append([]string{Total, Elastic, Capture, Fission, Nonelastic}, m.competitive...)
	out := xs.NewSet(len(energies), names...)
	comp := make(map[string]float64, len(m.competitive))
	for i, e := range energies {
		k := m.k(e)
		var el, capt, fis float64
		for name := range comp {
			delete(comp, name)
		}
		for gi := range m.groups {
			grp := &m.groups[gi]
			var open []*rmlColumn
			for ci := range grp.cols {
				if grp.cols[ci].open(e) {
					open = append(open, &grp.cols[ci])
				}
			}
			if len(open) == 0 {
				continue
			}
			widths := make([][]float64, len(open))
			pens := make([]float64, len(open))
			var ids []int
			for oi, c := range open {
				p, err := m.penetrability(c, math.Max(e-c.info.Xi, 0))
				if err != nil {
					return nil, formalismErrorf("CrossSection", err)
				}
				widths[oi], pens[oi] = c.reduced, math.Sqrt(p)
				if c.elastic() {
					ids = append(ids, oi)
				}
			}
			ri, si, err := levelInverse(e, grp.energies, grp.half, widths, pens)
			if err != nil {
				return nil, formalismErrorf("CrossSection", err)
			}

			var elas, absorb float64
			for _, id := range ids {
				absorb += eliminatedAbsorption(e, grp.energies, grp.half, widths, pens, ri, si, id)
				c := open[id]
				rhohat := c.info.EffectiveRadius(m.r) * k
				phi := penetrability.Phase(c.l, rhohat)
				if rhohat == 0 || phi/rhohat < phaseFloor {
					phi = 0
				}
				sinPhi, cosPhi := math.Sincos(phi)
				s2, sc := sinPhi*sinPhi, sinPhi*cosPhi
				elas += s2*(s2+2*re(ri, id, id)) + sc*(sc+2*re(si, id, id))
			}
			for _, i1 := range ids {
				for _, i2 := range ids {
					elas += re(ri, i1, i2)*re(ri, i1, i2) + re(si, i1, i2)*re(si, i1, i2)
				}
			}
			el += 4 * grp.g * elas
			capt += 4 * grp.g * absorb

			for oi, c := range open {
				if c.elastic() {
					continue
				}
				var sum float64
				for _, id := range ids {
					sum += re(ri, oi, id)*re(ri, oi, id) + re(si, oi, id)*re(si, oi, id)
				}
				if c.fission() {
					fis += 4 * grp.g * sum
				} else {
					comp[c.info.Pair.Name] += 4 * grp.g * sum
				}
			}
		}

		beta := math.Pi / (k * k)
		el, capt, fis = math.Max(beta*el, 0), math.Max(beta*capt, 0), math.Max(beta*fis, 0)
		nonelastic := capt + fis
		for _, name := range m.competitive {
			v := math.Max(beta*comp[name], 0)
			out[name][i] = v
			nonelastic += v
		}
		out[Elastic][i] = el
		out[Fission][i] = fis
		out[Capture][i] = capt
		out[Total][i] = el + nonelastic
		out[Nonelastic][i] = nonelastic
	}

	return out, nil
}

func (m *rml) SupportsAngularDistribution() bool { return true }

func (m *rml) Channels() []channel.Channel { return append([]channel.Channel(nil), m.v.chans...) }

// pairKinematics returns ρ and η of channel c at ex above threshold, for
// radius a.
func (m *rml) pairKinematics(info resonance.PairInfo, ex, a float64) (rho, eta float64) {
	masses := info.Masses(m.ev)
	rho = penetrability.WaveNumberPair(masses, ex) * a
	eta = penetrability.Sommerfeld(info.A.Charge, info.B.Charge, masses, ex)

	return rho, eta
}

func (m *rml) factors(c channel.Channel, info resonance.PairInfo, ex, a float64) (penetrability.Factors, error) {
	rho, eta := m.pairKinematics(info, ex, a)
	if c.Class == channel.ChargedParticle {
		f, err := penetrability.CoulombFactors(c.L, rho, eta)
		if err != nil {
			return f, err
		}
		if math.IsNaN(f.P) {
			return f, ErrNaN
		}

		return f, nil
	}

	return penetrability.Evaluate(c.L, rho), nil
}

// l0 returns S + iP − B, or iP when the pair has no boundary condition.
func (m *rml) l0(v *view, e float64) ([]complex128, error) {
	out := make([]complex128, len(v.chans))
	for i, c := range v.chans {
		if c.Class == channel.Fission || c.Class == channel.Gamma {
			out[i] = 1i
			continue
		}
		info := v.info[c.Key()]
		f, err := m.factors(c, info, e-c.Xi, info.TrueRadius(m.r, m.ev.Target.Mass))
		if err != nil {
			return nil, formalismErrorf("l0", err)
		}
		if bc := info.Pair.BoundaryCondition; bc != 0 {
			out[i] = complex(f.S-bc, f.P)
		} else {
			out[i] = complex(0, f.P)
		}
	}

	return out, nil
}

// rMatrix sums γ_c γ_c' / (Er − E − iΓγ/2); a resonance without an
// eliminated width has none.
func (m *rml) rMatrix(v *view, e float64) (*cmatrix.Dense, error) {
	n := len(v.chans)
	r, err := cmatrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	red := make([]float64, n)
	for iR, er := range v.energies {
		den := complex(er-e, -v.gammaWidth(iR)/2)
		for ic, c := range v.chans {
			red[ic] = 0
			w, ok := v.kept.Width(c, iR)
			if !ok || w == 0 {
				continue
			}
			pen := 1.0
			if c.Class == channel.Neutron || c.Class == channel.ChargedParticle {
				info := v.info[c.Key()]
				f, err := m.factors(c, info, math.Abs(er-c.Xi), info.TrueRadius(m.r, m.ev.Target.Mass))
				if err != nil {
					return nil, formalismErrorf("rMatrix", err)
				}
				pen = f.P
			}
			if pen != 0 {
				red[ic] = math.Copysign(math.Sqrt(math.Abs(w)/(2*math.Abs(pen))), w)
			}
		}
		for i1 := 0; i1 < n; i1++ {
			if red[i1] == 0 {
				continue
			}
			for i2 := 0; i2 <= i1; i2++ {
				if red[i2] == 0 {
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

func (m *rml) eiphis(v *view, e float64, opts PhaseOptions) ([]complex128, error) {
	out := make([]complex128, len(v.chans))
	for i, c := range v.chans {
		if c.Class == channel.Fission || c.Class == channel.Gamma {
			out[i] = 1
			continue
		}
		info := v.info[c.Key()]
		a := info.EffectiveRadius(m.r)
		if opts.ComputedRadius {
			a = info.TrueRadius(m.r, m.ev.Target.Mass)
		}
		f, err := m.factors(c, info, e-c.Xi, a)
		if err != nil {
			return nil, formalismErrorf("eiphis", err)
		}
		phase := -f.Phi
		if c.Class == channel.ChargedParticle && opts.ExtraCoulombPhase {
			_, eta := m.pairKinematics(info, e-c.Xi, a)
			phase += penetrability.Omega(c.L, eta)
		}
		out[i] = cmplx.Exp(complex(0, phase))
	}

	return out, nil
}

// omegas are the Coulomb phase shifts of v's channels at e.
func (m *rml) omegas(v *view, e float64) []float64 {
	out := make([]float64, len(v.chans))
	for i, c := range v.chans {
		if c.Class != channel.ChargedParticle {
			continue
		}
		info := v.info[c.Key()]
		_, eta := m.pairKinematics(info, e-c.Xi, info.EffectiveRadius(m.r))
		out[i] = penetrability.Omega(c.L, eta)
	}

	return out
}

func (m *rml) ScatteringMatrix(e float64, opts PhaseOptions) (*cmatrix.Dense, error) {
	return collisionMatrix(m, m.v, e, opts)
}

func (m *rml) TMatrix(e float64, opts PhaseOptions) (*cmatrix.Dense, error) {
	return m.transition(m.v, e, opts)
}

func (m *rml) AngularDistribution(energies []float64, opts AngularOptions) (xs.Legendre, error) {
	return angularDistribution(m, energies, opts)
}

// viewFor drops channels closed anywhere on energies.
func (m *rml) viewFor(energies []float64) (*view, error) {
	ch, err := resonance.ByChannelRML(m.ev, m.r, energies, m.log)
	if err != nil {
		return nil, formalismErrorf("AngularDistribution", err)
	}
	v := newView(ch.Kept, ch.Eliminated, ch.Energies)
	v.info = ch.Info

	return v, nil
}

func (m *rml) transition(v *view, e float64, opts PhaseOptions) (*cmatrix.Dense, error) {
	u, err := collisionMatrix(m, v, e, opts)
	if err != nil {
		return nil, err
	}
	if opts.ExtraCoulombPhase {
		return transitionMatrix(u, m.omegas(v, e)), nil
	}

	return transitionMatrix(u, nil), nil
}

func (m *rml) legendreMax(v *view) int {
	lmax := 0
	for _, c := range v.chans {
		if c.L > lmax {
			lmax = c.L
		}
	}

	return lMaxFromL(lmax)
}

func (m *rml) RMatrix(e float64) (*cmatrix.Dense, error) { return m.rMatrix(m.v, e) }

func (m *rml) L0Matrix(e float64) (*cmatrix.Dense, error) { return l0Matrix(m, m.v, e) }

func (m *rml) XMatrix(e float64) (*cmatrix.Dense, error) { return xMatrix(m, m.v, e) }

func (m *rml) WMatrix(e float64) (*cmatrix.Dense, error) { return wMatrix(m, m.v, e) }
