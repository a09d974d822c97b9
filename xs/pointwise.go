package xs

import "sort"

// Piecewise is implemented by Pointwise and Regions.
type Piecewise interface {
	// Domain returns the first and last energy.
	Domain() (float64, float64)
	// At evaluates the data at energy e.
	At(e float64) (float64, error)
}

// Pointwise is a tabulated function of energy.
type Pointwise struct {
	Energies      []float64
	Values        []float64
	Interpolation Interpolation
}

// NewPointwise validates and wraps energies and values. The slices are not
// copied.
func NewPointwise(energies, values []float64, law Interpolation) (Pointwise, error) {
	if len(energies) != len(values) {
		return Pointwise{}, xsErrorf("NewPointwise", ErrLengthMismatch)
	}
	if len(energies) == 0 {
		return Pointwise{}, xsErrorf("NewPointwise", ErrEmpty)
	}
	for i := 1; i < len(energies); i++ {
		if energies[i] <= energies[i-1] {
			return Pointwise{}, xsErrorf("NewPointwise", ErrNotAscending)
		}
	}

	return Pointwise{Energies: energies, Values: values, Interpolation: law}, nil
}

// Len returns the number of points.
func (p Pointwise) Len() int { return len(p.Energies) }

// Domain implements Piecewise.
func (p Pointwise) Domain() (float64, float64) {
	if len(p.Energies) == 0 {
		return 0, 0
	}

	return p.Energies[0], p.Energies[len(p.Energies)-1]
}

// At implements Piecewise.
func (p Pointwise) At(e float64) (float64, error) {
	n := len(p.Energies)
	if n == 0 {
		return 0, xsErrorf("At", ErrEmpty)
	}
	if e < p.Energies[0] || e > p.Energies[n-1] {
		return 0, xsErrorf("At", ErrOutOfDomain)
	}
	i := sort.SearchFloat64s(p.Energies, e)
	if p.Energies[i] == e {
		return p.Values[i], nil
	}

	return Interpolate(p.Interpolation, p.Energies[i-1], p.Values[i-1], p.Energies[i], p.Values[i], e)
}

// DomainSlice restricts p to [lo, hi], inserting interpolated end points
// when lo or hi fall between tabulated energies.
func (p Pointwise) DomainSlice(lo, hi float64) (Pointwise, error) {
	first, last := p.Domain()
	if len(p.Energies) == 0 {
		return Pointwise{}, xsErrorf("DomainSlice", ErrEmpty)
	}
	if lo < first {
		lo = first
	}
	if hi > last {
		hi = last
	}
	if lo > hi {
		return Pointwise{}, xsErrorf("DomainSlice", ErrOutOfDomain)
	}

	y, err := p.At(lo)
	if err != nil {
		return Pointwise{}, err
	}
	es, vs := []float64{lo}, []float64{y}
	for i, e := range p.Energies {
		if e > lo && e < hi {
			es, vs = append(es, e), append(vs, p.Values[i])
		}
	}
	if hi > lo {
		y, err := p.At(hi)
		if err != nil {
			return Pointwise{}, err
		}
		es, vs = append(es, hi), append(vs, y)
	}

	return Pointwise{Energies: es, Values: vs, Interpolation: p.Interpolation}, nil
}

// Regions is a sequence of adjacent Pointwise pieces.
type Regions []Pointwise

// Domain implements Piecewise.
func (r Regions) Domain() (float64, float64) {
	if len(r) == 0 {
		return 0, 0
	}
	lo, _ := r[0].Domain()
	_, hi := r[len(r)-1].Domain()

	return lo, hi
}

// At implements Piecewise. At a shared boundary the later region wins.
func (r Regions) At(e float64) (float64, error) {
	for i := len(r) - 1; i >= 0; i-- {
		lo, hi := r[i].Domain()
		if e >= lo && e <= hi {
			return r[i].At(e)
		}
	}

	return 0, xsErrorf("At", ErrOutOfDomain)
}
