package penetrability

import (
	"fmt"
	"math"

	"github.com/katalvlaran/resonances/coulomb"
)

// closedFormMax is the highest L with a rational closed form.
const closedFormMax = 4

// Penetrability returns P_L(ρ).
func Penetrability(l int, rho float64) float64 { return Evaluate(l, rho).P }

// Shift returns S_L(ρ).
func Shift(l int, rho float64) float64 { return Evaluate(l, rho).S }

// Phase returns φ_L(ρ).
func Phase(l int, rho float64) float64 { return Evaluate(l, rho).Phi }

// Evaluate returns all three factors for one L. Negative L yields NaNs.
func Evaluate(l int, rho float64) Factors {
	if l < 0 {
		return Factors{P: math.NaN(), S: math.NaN(), Phi: math.NaN()}
	}
	if l <= closedFormMax {
		return closedForm(l, rho)
	}

	return Table(l, rho)[l]
}

// Table returns factors for every L in 0..lMax, bottom-up: closed forms up to
// L = 4, recursion from there on.
func Table(lMax int, rho float64) []Factors {
	if lMax < 0 {
		return nil
	}
	out := make([]Factors, lMax+1)
	for l := 0; l <= lMax && l <= closedFormMax; l++ {
		out[l] = closedForm(l, rho)
	}
	for l := closedFormMax + 1; l <= lMax; l++ {
		out[l] = step(l, rho, out[l-1])
	}

	return out
}

// Recursive computes L from the L = 0 forms by recursion alone.
func Recursive(l int, rho float64) Factors {
	f := closedForm(0, rho)
	for i := 1; i <= l; i++ {
		f = step(i, rho, f)
	}

	return f
}

// step raises prev (at L−1) to L.
func step(l int, rho float64, prev Factors) Factors {
	a := float64(l) - prev.S
	den := a*a + prev.P*prev.P

	return Factors{
		P:   rho * rho * prev.P / den,
		S:   rho*rho*a/den - float64(l),
		Phi: prev.Phi - math.Atan(prev.P/a),
	}
}

func closedForm(l int, rho float64) Factors {
	r2 := rho * rho
	r4 := r2 * r2
	switch l {
	case 0:
		return Factors{P: rho, S: 0, Phi: rho}
	case 1:
		d := 1 + r2
		return Factors{P: r2 * rho / d, S: -1 / d, Phi: rho - math.Atan(rho)}
	case 2:
		d := 9 + 3*r2 + r4
		return Factors{
			P:   r4 * rho / d,
			S:   -(18 + 3*r2) / d,
			Phi: rho - math.Atan(3*rho/(3-r2)),
		}
	case 3:
		d := 225 + 45*r2 + 6*r4 + r4*r2
		return Factors{
			P:   r4 * r2 * rho / d,
			S:   -(675 + 90*r2 + 6*r4) / d,
			Phi: rho - math.Atan(rho*(15-r2)/(15-6*r2)),
		}
	default:
		d := 11025 + 1575*r2 + 135*r4 + 10*r4*r2 + r4*r4
		return Factors{
			P:   r4 * r4 * rho / d,
			S:   -(44100 + 4725*r2 + 270*r4 + 10*r4*r2) / d,
			Phi: rho - math.Atan(rho*(105-10*r2)/(105-45*r2+r4)),
		}
	}
}

// CoulombFactors returns the charged-particle factors for Sommerfeld
// parameter eta. With eta = 0 the neutral forms are used.
func CoulombFactors(l int, rho, eta float64) (Factors, error) {
	if l < 0 {
		return Factors{}, fmt.Errorf("CoulombFactors(L=%d): %w", l, ErrNegativeL)
	}
	if eta == 0 {
		return Evaluate(l, rho), nil
	}
	f, err := coulomb.FactorsAt(l, eta, rho)
	if err != nil {
		return Factors{}, err
	}

	return Factors{P: f.P, S: f.S, Phi: f.Phi}, nil
}

// Omega is the Coulomb phase difference Σ_{n=1..L} atan2(η, n).
func Omega(l int, eta float64) float64 { return coulomb.Omega(l, eta) }
