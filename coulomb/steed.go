package coulomb

import (
	"math"
	"math/cmplx"
)

// cf1 returns F′_L/F_L from the continued fraction
//
//	S_{L+1} − R²_{L+1}/(T_{L+1} − R²_{L+2}/(T_{L+2} − …))
//
// with S_k = k/ρ + η/k, R²_k = 1 + η²/k² and T_k = S_k + S_{k+1}.
func cf1(l int, eta, rho float64) (float64, error) {
	s := func(k float64) float64 { return k/rho + eta/k }
	f := s(float64(l + 1))
	if f == 0 {
		f = tiny
	}
	c, d := f, 0.0
	for j := 1; j <= MaxIterations; j++ {
		k := float64(l + j)
		a := -(1 + eta*eta/(k*k))
		b := s(k) + s(k+1)
		d = b + a*d
		if d == 0 {
			d = tiny
		}
		c = b + a/c
		if c == 0 {
			c = tiny
		}
		d = 1 / d
		delta := c * d
		f *= delta
		if math.Abs(delta-1) < epsilon {
			return f, nil
		}
	}

	return 0, coulombErrorf(opCF1, l, eta, rho, ErrNotConverged)
}

// cf2 returns p + iq = (G′+iF′)/(G+iF) from
//
//	i(1 − η/ρ) + (i/ρ)·a₁/(b₁ + a₂/(b₂ + …))
//
// with a_k = (iη − L + k − 1)(iη + L + k) and b_k = 2(ρ − η) + 2ik.
// For η = 0 the fraction terminates after L+1 terms.
func cf2(l int, eta, rho float64) (complex128, error) {
	fl := float64(l)
	f := complex(tiny, 0)
	c, d := f, complex(0, 0)
	for k := 1; k <= MaxIterations; k++ {
		fk := float64(k)
		a := complex(fk-1-fl, eta) * complex(fl+fk, eta)
		b := complex(2*(rho-eta), 2*fk)
		d = b + a*d
		if d == 0 {
			d = tiny
		}
		c = b + a/c
		if c == 0 {
			c = tiny
		}
		d = 1 / d
		delta := c * d
		f *= delta
		if cmplx.Abs(delta-1) < epsilon {
			return complex(0, 1-eta/rho) + complex(0, 1/rho)*f, nil
		}
	}

	return 0, coulombErrorf(opCF2, l, eta, rho, ErrNotConverged)
}

// ratios runs both fractions and returns f = F′/F and p + iq.
func ratios(l int, eta, rho float64) (float64, float64, float64, error) {
	if l < 0 || rho < 0 || math.IsNaN(rho) || math.IsNaN(eta) {
		return 0, 0, 0, coulombErrorf(opEvaluate, l, eta, rho, ErrBadArgument)
	}
	f, err := cf1(l, eta, rho)
	if err != nil {
		return 0, 0, 0, err
	}
	pq, err := cf2(l, eta, rho)
	if err != nil {
		return 0, 0, 0, err
	}
	p, q := real(pq), imag(pq)
	if !finite(f) || !finite(p) || !finite(q) || q == 0 {
		return 0, 0, 0, coulombErrorf(opEvaluate, l, eta, rho, ErrNaN)
	}

	return f, p, q, nil
}

// Evaluate returns F_L, G_L and their derivatives at (η, ρ) for ρ > 0.
// F is taken positive; G then follows from G = F·(f − p)/q.
func Evaluate(l int, eta, rho float64) (WaveFunctions, error) {
	if rho == 0 {
		return WaveFunctions{}, coulombErrorf(opEvaluate, l, eta, rho, ErrBadArgument)
	}
	f, p, q, err := ratios(l, eta, rho)
	if err != nil {
		return WaveFunctions{}, err
	}
	gamma := (f - p) / q
	ff := 1 / math.Sqrt(q*(1+gamma*gamma))
	gg := gamma * ff
	w := WaveFunctions{
		F:  ff,
		G:  gg,
		DF: f * ff,
		DG: p*gg - q*ff,
	}
	if !finite(w.F) || !finite(w.G) {
		return WaveFunctions{}, coulombErrorf(opEvaluate, l, eta, rho, ErrNaN)
	}

	return w, nil
}

// FactorsAt returns P, S and φ at (η, ρ). The normalisation of Evaluate
// cancels in all three, so only the fraction values are used. At ρ = 0 it
// returns the limits P = 0, S = −L, φ = 0.
func FactorsAt(l int, eta, rho float64) (Factors, error) {
	if rho == 0 {
		return Factors{P: 0, S: -float64(l), Phi: 0}, nil
	}
	f, p, q, err := ratios(l, eta, rho)
	if err != nil {
		return Factors{}, err
	}

	return Factors{P: rho * q, S: rho * p, Phi: math.Atan(q / (f - p))}, nil
}

// Omega returns the Coulomb phase difference ω_L = σ_L − σ_0 as
// Σ_{n=1..L} atan2(η, n).
func Omega(l int, eta float64) float64 {
	var w float64
	for n := 1; n <= l; n++ {
		w += math.Atan2(eta, float64(n))
	}

	return w
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
