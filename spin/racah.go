package spin

import "math"

// lnFact returns ln(n!) for n ≥ 0.
func lnFact(n int) float64 {
	v, _ := math.Lgamma(float64(n) + 1)
	return v
}

// parity returns (−1)^n.
func parity(n int) float64 {
	if n%2 == 0 {
		return 1
	}

	return -1
}

// lnDelta is ln Δ(abc) for doubled a, b, c satisfying the triangle rule.
func lnDelta(a, b, c int) float64 {
	return 0.5 * (lnFact((a+b-c)/2) + lnFact((a-b+c)/2) + lnFact((-a+b+c)/2) - lnFact((a+b+c)/2+1))
}

// ClebschGordan returns ⟨j1 m1 j2 m2 | J M⟩ for doubled arguments.
// Forbidden couplings return 0.
//
// Implementation:
//   - Stage 1: selection rules (m1+m2 = M, |m| ≤ j, parity of j±m, triangle).
//   - Stage 2: Racah's single-sum formula, accumulated in log space.
//
// Complexity:
//   - Time O(min(j1, j2)), Space O(1).
func ClebschGordan(j1, m1, j2, m2, jj, mm int) float64 {
	if m1+m2 != mm {
		return 0
	}
	if abs(m1) > j1 || abs(m2) > j2 || abs(mm) > jj {
		return 0
	}
	if (j1+m1)%2 != 0 || (j2+m2)%2 != 0 || (jj+mm)%2 != 0 {
		return 0
	}
	if !Triangle(j1, j2, jj) {
		return 0
	}

	pre := 0.5 * (math.Log(float64(jj+1)) +
		lnFact((jj+j1-j2)/2) + lnFact((jj-j1+j2)/2) + lnFact((j1+j2-jj)/2) - lnFact((j1+j2+jj)/2+1) +
		lnFact((jj+mm)/2) + lnFact((jj-mm)/2) +
		lnFact((j1-m1)/2) + lnFact((j1+m1)/2) +
		lnFact((j2-m2)/2) + lnFact((j2+m2)/2))

	kmin := max(0, (j2-jj-m1)/2, (j1-jj+m2)/2)
	kmax := min((j1+j2-jj)/2, (j1-m1)/2, (j2+m2)/2)

	var sum float64
	for k := kmin; k <= kmax; k++ {
		den := lnFact(k) + lnFact((j1+j2-jj)/2-k) + lnFact((j1-m1)/2-k) +
			lnFact((j2+m2)/2-k) + lnFact((jj-j2+m1)/2+k) + lnFact((jj-j1-m2)/2+k)
		sum += parity(k) * math.Exp(pre-den)
	}

	return sum
}

// SixJ returns the Wigner 6-j symbol {j1 j2 j3; j4 j5 j6} for doubled
// arguments, or 0 when any of its four triads violates the triangle rule.
func SixJ(j1, j2, j3, j4, j5, j6 int) float64 {
	if !Triangle(j1, j2, j3) || !Triangle(j1, j5, j6) || !Triangle(j4, j2, j6) || !Triangle(j4, j5, j3) {
		return 0
	}

	pre := lnDelta(j1, j2, j3) + lnDelta(j1, j5, j6) + lnDelta(j4, j2, j6) + lnDelta(j4, j5, j3)

	a1 := (j1 + j2 + j3) / 2
	a2 := (j1 + j5 + j6) / 2
	a3 := (j4 + j2 + j6) / 2
	a4 := (j4 + j5 + j3) / 2
	b1 := (j1 + j2 + j4 + j5) / 2
	b2 := (j2 + j3 + j5 + j6) / 2
	b3 := (j3 + j1 + j6 + j4) / 2

	tmin := max(a1, a2, a3, a4)
	tmax := min(b1, b2, b3)

	var sum float64
	for t := tmin; t <= tmax; t++ {
		ln := lnFact(t+1) - lnFact(t-a1) - lnFact(t-a2) - lnFact(t-a3) - lnFact(t-a4) -
			lnFact(b1-t) - lnFact(b2-t) - lnFact(b3-t)
		sum += parity(t) * math.Exp(pre+ln)
	}

	return sum
}

// Racah returns the Racah coefficient W(abcd; ef) for doubled arguments,
// related to the 6-j symbol by W(abcd;ef) = (−1)^(a+b+c+d) {a b e; d c f}.
func Racah(a, b, c, d, e, f int) float64 {
	six := SixJ(a, b, e, d, c, f)
	if six == 0 {
		return 0
	}

	return parity((a+b+c+d)/2) * six
}

// ZBar returns the Blatt-Biedenharn coefficient
//
//	Z̄(l1 J1 l2 J2; S L) = √((2l1+1)(2l2+1)(2J1+1)(2J2+1)) ⟨l1 0 l2 0 | L 0⟩ W(l1 J1 l2 J2; S L)
//
// for doubled arguments. It vanishes whenever l1+l2+L is odd or a coupling
// is forbidden.
func ZBar(l1, j1, l2, j2, s, ll int) float64 {
	cg := ClebschGordan(l1, 0, l2, 0, ll, 0)
	if cg == 0 {
		return 0
	}
	w := Racah(l1, j1, l2, j2, s, ll)
	if w == 0 {
		return 0
	}

	return math.Sqrt(float64((l1+1)*(l2+1)*(j1+1)*(j2+1))) * cg * w
}
