package spin

// AllowedTotalSpins returns every total angular momentum J reachable by
// coupling l and s, as doubled integers: range(|2l−2s|, 2l+2s+2, 2).
//
// The result is symmetric in (l, s) and always non-empty for non-negative
// inputs.
func AllowedTotalSpins(l, s float64) []int {
	l2, s2 := Twice(l), Twice(s)
	lo, hi := abs(l2-s2), l2+s2
	out := make([]int, 0, (hi-lo)/2+1)
	for j := lo; j <= hi; j += 2 {
		out = append(out, j)
	}

	return out
}

// AllowedTotalSpinsHalf is AllowedTotalSpins with the results converted back
// to spin values (1/2, 3/2, ...).
func AllowedTotalSpinsHalf(l, s float64) []float64 {
	twice := AllowedTotalSpins(l, s)
	out := make([]float64, len(twice))
	for i, j := range twice {
		out[i] = Half(j)
	}

	return out
}

// Allowed reports whether j is one of the couplings of l and s.
func Allowed(j, l, s float64) bool {
	j2 := Twice(j)
	for _, v := range AllowedTotalSpins(l, s) {
		if v == j2 {
			return true
		}
	}

	return false
}
