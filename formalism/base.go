// SPDX-License-Identifier: MIT

package formalism

import (
	"math"
	"math/cmplx"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/cmatrix"
	"github.com/katalvlaran/resonances/grid"
	"github.com/katalvlaran/resonances/penetrability"
	"github.com/katalvlaran/resonances/resonance"
)

// maxLegendreOrder caps getLMax-style estimates.
const maxLegendreOrder = 10

// base carries what every formalism shares.
type base struct {
	ev  *resonance.Evaluation
	r   *resonance.ResolvedRegion
	kin resonance.Kinematics
	log *zap.Logger

	// gridEnergies and gridWidths are sorted by energy.
	gridEnergies []float64
	gridWidths   []float64
	thresholds   []float64
}

func newBase(ev *resonance.Evaluation, r *resonance.ResolvedRegion, log *zap.Logger) base {
	return base{ev: ev, r: r, kin: resonance.NewKinematics(ev, r), log: log}
}

func (b *base) Formalism() resonance.Formalism { return b.r.Formalism }

func (b *base) Bounds() (float64, float64) { return b.r.LowerBound, b.r.UpperBound }

func (b *base) Resonances() ([]float64, []float64) {
	return append([]float64(nil), b.gridEnergies...), append([]float64(nil), b.gridWidths...)
}

func (b *base) Thresholds() []float64 { return append([]float64(nil), b.thresholds...) }

// setResonances stores energies and widths sorted by energy.
func (b *base) setResonances(energies, widths []float64) {
	idx := make([]int, len(energies))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, c int) bool { return energies[idx[a]] < energies[idx[c]] })
	b.gridEnergies = make([]float64, len(idx))
	b.gridWidths = make([]float64, len(idx))
	for i, j := range idx {
		b.gridEnergies[i], b.gridWidths[i] = energies[j], widths[j]
	}
}

func (b *base) EnergyGrid() ([]float64, error) {
	return grid.Generate(b.gridEnergies, b.gridWidths, b.r.LowerBound, b.r.UpperBound, b.thresholds)
}

func (b *base) k(e float64) float64 { return b.kin.WaveNumber(e) }

// view is the channel set one evaluation pass works on.
type view struct {
	kept  *channel.Map
	elim  *channel.Map
	chans []channel.Channel
	// energies are resonance energies by channel-width index.
	energies []float64
	// info is set for R-Matrix Limited channels.
	info map[channel.Key]resonance.PairInfo
}

func newView(kept, elim *channel.Map, energies []float64) *view {
	return &view{kept: kept, elim: elim, chans: kept.Channels(), energies: energies}
}

// gammaWidth returns the eliminated width of resonance iR from the first
// eliminated channel that carries a non-zero one.
func (v *view) gammaWidth(iR int) float64 {
	for _, c := range v.elim.Channels() {
		if w, ok := v.elim.Width(c, iR); ok && w != 0 {
			return w
		}
	}

	return 0
}

// rmatrixModel supplies the formalism-specific pieces of the general
// R-matrix collision matrix.
type rmatrixModel interface {
	l0(v *view, e float64) ([]complex128, error)
	rMatrix(v *view, e float64) (*cmatrix.Dense, error)
	eiphis(v *view, e float64, opts PhaseOptions) ([]complex128, error)
}

func checkOpen(v *view, e float64) error {
	if len(v.chans) == 0 {
		return ErrNoChannels
	}
	for _, c := range v.chans {
		if !c.IsOpen(e) {
			return ErrChannelClosed
		}
	}

	return nil
}

// xMatrix returns X = √P (I − R L⁰)⁻¹ R √P, with √P applied within the
// same J only.
func xMatrix(m rmatrixModel, v *view, e float64) (*cmatrix.Dense, error) {
	if err := checkOpen(v, e); err != nil {
		return nil, err
	}
	l0, err := m.l0(v, e)
	if err != nil {
		return nil, err
	}
	r, err := m.rMatrix(v, e)
	if err != nil {
		return nil, err
	}
	n := len(v.chans)

	a := cmatrix.MustIdentity(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.AddAt(i, j, -r.Get(i, j)*l0[j])
		}
	}
	inv, err := cmatrix.Inverse(a)
	if err != nil {
		return nil, err
	}
	x, err := cmatrix.Mul(inv, r)
	if err != nil {
		return nil, err
	}

	pen := make([]float64, n)
	for i, c := range v.chans {
		pen[i] = 1
		if c.Class == channel.Neutron || c.Class == channel.ChargedParticle {
			pen[i] = math.Sqrt(imag(l0[i]))
		}
	}
	for i, ci := range v.chans {
		for j, cj := range v.chans {
			if ci.SameJ(cj) {
				x.Put(i, j, x.Get(i, j)*complex(pen[i]*pen[j], 0))
			}
		}
	}

	return x, nil
}

// wMatrix returns W = I + 2iX.
func wMatrix(m rmatrixModel, v *view, e float64) (*cmatrix.Dense, error) {
	x, err := xMatrix(m, v, e)
	if err != nil {
		return nil, err
	}

	x2i, err := cmatrix.Scale(x, 2i)
	if err != nil {
		return nil, err
	}

	return cmatrix.Add(cmatrix.MustIdentity(x.Rows()), x2i)
}

// l0Matrix returns L⁰ as a diagonal matrix.
func l0Matrix(m rmatrixModel, v *view, e float64) (*cmatrix.Dense, error) {
	l0, err := m.l0(v, e)
	if err != nil {
		return nil, err
	}
	out, err := cmatrix.NewDense(len(l0), len(l0))
	if err != nil {
		return nil, err
	}
	for i, x := range l0 {
		out.Put(i, i, x)
	}

	return out, nil
}

// collisionMatrix builds U = Ω W Ω.
func collisionMatrix(m rmatrixModel, v *view, e float64, opts PhaseOptions) (*cmatrix.Dense, error) {
	w, err := wMatrix(m, v, e)
	if err != nil {
		return nil, err
	}
	phases, err := m.eiphis(v, e, opts)
	if err != nil {
		return nil, err
	}
	for i := range v.chans {
		for j := range v.chans {
			w.Put(i, j, w.Get(i, j)*phases[i]*phases[j])
		}
	}

	return w, nil
}

// transitionMatrix returns T = I − U, or diag(e^{2iω}) − U.
func transitionMatrix(u *cmatrix.Dense, omegas []float64) *cmatrix.Dense {
	n := u.Rows()
	t := cmatrix.MustIdentity(n)
	for i := 0; i < n; i++ {
		if omegas != nil {
			t.Put(i, i, cmplx.Exp(complex(0, 2*omegas[i])))
		}
		for j := 0; j < n; j++ {
			t.AddAt(i, j, -u.Get(i, j))
		}
	}

	return t
}

// hardSpherePhases is the MLBW and Reich-Moore Ω: e^{−iφ_l} on elastic
// channels and 1 elsewhere.
func (b *base) hardSpherePhases(v *view, e float64, opts PhaseOptions) []complex128 {
	out := make([]complex128, len(v.chans))
	for i, c := range v.chans {
		out[i] = 1
		if !c.Elastic {
			continue
		}
		ex := e - c.Xi
		rho := b.kin.RhoHat(ex, c.L)
		if opts.ComputedRadius {
			rho = b.kin.Rho(ex, c.L)
		}
		out[i] = cmplx.Exp(complex(0, -penetrability.Phase(c.L, rho)))
	}

	return out
}

// lMaxFromL caps 2·lmax at maxLegendreOrder.
func lMaxFromL(lmax int) int {
	if 2*lmax < maxLegendreOrder {
		return 2 * lmax
	}

	return maxLegendreOrder
}
