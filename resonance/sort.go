package resonance

import (
	"math"
	"sort"

	"github.com/katalvlaran/resonances/penetrability"
)

// SpinSequence holds the resonances of one (L, J, channel spin) triple as
// parallel columns.
type SpinSequence struct {
	ChannelSpin float64
	Energies    []float64
	// NeutronWidths are reduced: Γn divided by P(L, ρ(|Er|)).
	NeutronWidths  []float64
	CaptureWidths  []float64
	FissionWidthsA []float64
	FissionWidthsB []float64
	// ShiftFactors are S(L, ρ(|Er|))/2 with the L-independent radius.
	ShiftFactors []float64
}

// Len returns the number of resonances.
func (s SpinSequence) Len() int { return len(s.Energies) }

// JGroup collects the channel-spin sequences sharing J.
type JGroup struct {
	J       float64
	GFactor float64
	Spins   []SpinSequence
}

// LGroup collects the J groups sharing L.
type LGroup struct {
	L  int
	Js []JGroup
}

// Sorted is a Breit-Wigner or Reich-Moore table regrouped by L, J and
// channel spin.
type Sorted struct {
	// Ls has one entry per L from 0 to the largest L, possibly empty.
	Ls []LGroup
	// MissingG is 2L+1 minus the g-factor sum of L, indexed by L. A
	// positive value means potential scattering for absent J is missing.
	MissingG []float64
	// Energies and Widths are every resonance in table order; Widths are
	// total widths, summed from the partials when none is tabulated.
	Energies []float64
	Widths   []float64
}

// SortLandJ groups a resonance table by L, then J (ascending, signed),
// then channel spin.
func SortLandJ(table Table, kin Kinematics) *Sorted {
	if len(table) == 0 {
		return &Sorted{}
	}
	maxL := table.MaxL()
	out := &Sorted{
		Ls:       make([]LGroup, 0, maxL+1),
		MissingG: make([]float64, maxL+1),
	}
	for l := 0; l <= maxL; l++ {
		group := LGroup{L: l}
		rowsL := table.filter(func(r Resonance) bool { return r.L == l })
		for _, j := range distinct(rowsL, func(r Resonance) float64 { return r.J }) {
			rowsJ := rowsL.filter(func(r Resonance) bool { return r.J == j })
			jg := JGroup{J: j, GFactor: kin.GFactor(j)}
			for _, s := range distinct(rowsJ, func(r Resonance) float64 { return r.ChannelSpin }) {
				rowsS := rowsJ.filter(func(r Resonance) bool { return r.ChannelSpin == s })
				jg.Spins = append(jg.Spins, newSpinSequence(l, s, rowsS, kin))
			}
			group.Js = append(group.Js, jg)
		}
		out.Ls = append(out.Ls, group)
	}

	for _, g := range out.Ls {
		sum := 0.0
		for _, jg := range g.Js {
			sum += jg.GFactor * float64(len(jg.Spins))
		}
		out.MissingG[g.L] = float64(2*g.L+1) - sum
	}

	out.Energies = make([]float64, len(table))
	out.Widths = make([]float64, len(table))
	anyTotal := false
	for i, r := range table {
		out.Energies[i] = r.Energy
		out.Widths[i] = r.TotalWidth
		anyTotal = anyTotal || r.TotalWidth != 0
	}
	if !anyTotal {
		for i, r := range table {
			out.Widths[i] = r.NeutronWidth + r.CaptureWidth + r.FissionWidthA + r.FissionWidthB
		}
	}

	return out
}

func newSpinSequence(l int, s float64, rows Table, kin Kinematics) SpinSequence {
	n := len(rows)
	seq := SpinSequence{
		ChannelSpin:    s,
		Energies:       make([]float64, n),
		NeutronWidths:  make([]float64, n),
		CaptureWidths:  make([]float64, n),
		FissionWidthsA: make([]float64, n),
		FissionWidthsB: make([]float64, n),
		ShiftFactors:   make([]float64, n),
	}
	for i, r := range rows {
		ae := math.Abs(r.Energy)
		seq.Energies[i] = r.Energy
		seq.NeutronWidths[i] = r.NeutronWidth / penetrability.Penetrability(l, kin.Rho(ae, l))
		seq.CaptureWidths[i] = r.CaptureWidth
		seq.FissionWidthsA[i] = r.FissionWidthA
		seq.FissionWidthsB[i] = r.FissionWidthB
		seq.ShiftFactors[i] = 0.5 * penetrability.Shift(l, kin.Rho(ae, -1))
	}

	return seq
}

func (t Table) filter(keep func(Resonance) bool) Table {
	var out Table
	for _, r := range t {
		if keep(r) {
			out = append(out, r)
		}
	}

	return out
}

func distinct(t Table, key func(Resonance) float64) []float64 {
	seen := make(map[float64]struct{})
	var out []float64
	for _, r := range t {
		v := key(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)

	return out
}
