package xs

import "sort"

// Set maps a reaction name to values aligned with an energy grid.
type Set map[string][]float64

// NewSet returns a Set with zeroed arrays of length n for each name.
func NewSet(n int, names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		s[name] = make([]float64, n)
	}

	return s
}

// Names returns the reaction names in sorted order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Len returns the common length of the arrays, or 0 for an empty Set.
func (s Set) Len() int {
	for _, v := range s {
		return len(v)
	}

	return 0
}

// Slice returns a Set viewing [lo, hi) of every array.
func (s Set) Slice(lo, hi int) Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v[lo:hi]
	}

	return out
}

// Put writes src into s starting at offset, creating missing arrays of
// length n.
func (s Set) Put(src Set, offset, n int) {
	for k, v := range src {
		dst, ok := s[k]
		if !ok {
			dst = make([]float64, n)
			s[k] = dst
		}
		copy(dst[offset:], v)
	}
}

// AllZero reports whether every value of the reaction is zero (or absent).
func (s Set) AllZero(name string) bool {
	for _, v := range s[name] {
		if v != 0 {
			return false
		}
	}

	return true
}

// Clamp replaces non-positive values with zero in place.
func Clamp(values []float64) {
	for i, v := range values {
		if v <= 0 {
			values[i] = 0
		}
	}
}

// Legendre maps a reaction to Legendre coefficients indexed [L][energy].
type Legendre map[string][][]float64

// Order returns the number of Legendre terms for the reaction.
func (l Legendre) Order(name string) int { return len(l[name]) }

// At returns the coefficients of reaction name at energy index i.
func (l Legendre) At(name string, i int) []float64 {
	terms := l[name]
	out := make([]float64, len(terms))
	for k, t := range terms {
		out[k] = t[i]
	}

	return out
}

// Put copies src into l at energy offset, where l spans n energies. Orders
// missing on either side are zero.
func (l Legendre) Put(src Legendre, offset, n int) {
	for name, terms := range src {
		dst := l[name]
		for len(dst) < len(terms) {
			dst = append(dst, make([]float64, n))
		}
		for k, t := range terms {
			copy(dst[k][offset:], t)
		}
		l[name] = dst
	}
}

// Transpose turns per-energy coefficient rows of any length into [L][energy]
// terms, padding short rows with zeros.
func Transpose(rows [][]float64) [][]float64 {
	order := 0
	for _, r := range rows {
		if len(r) > order {
			order = len(r)
		}
	}
	out := make([][]float64, order)
	for k := range out {
		out[k] = make([]float64, len(rows))
		for i, r := range rows {
			if k < len(r) {
				out[k][i] = r[k]
			}
		}
	}

	return out
}
