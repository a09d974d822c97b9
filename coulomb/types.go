package coulomb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConverged is returned when a continued fraction fails to settle
	// within MaxIterations terms.
	ErrNotConverged = errors.New("coulomb: continued fraction did not converge")

	// ErrNaN is returned when an intermediate value turns into NaN or Inf.
	ErrNaN = errors.New("coulomb: non-finite wave function")

	// ErrBadArgument is returned for negative L or ρ.
	ErrBadArgument = errors.New("coulomb: invalid argument")
)

const (
	// MaxIterations bounds the number of terms taken from either fraction.
	MaxIterations = 1_000_000

	// epsilon is the relative accuracy at which the Lentz iteration stops.
	epsilon = 1e-15

	// tiny replaces zero denominators in the Lentz iteration.
	tiny = 1e-300
)

const (
	opCF1      = "CF1"
	opCF2      = "CF2"
	opEvaluate = "Evaluate"
)

// WaveFunctions holds the regular and irregular solutions and their
// derivatives with respect to ρ.
type WaveFunctions struct {
	F, G   float64
	DF, DG float64
}

// Factors is the R-matrix view of the wave functions at the channel radius.
type Factors struct {
	// P is the penetrability ρ/(F²+G²).
	P float64
	// S is the shift ρ(FF′+GG′)/(F²+G²).
	S float64
	// Phi is the hard-sphere phase arctan(F/G).
	Phi float64
}

func coulombErrorf(op string, l int, eta, rho float64, err error) error {
	return fmt.Errorf("%s(L=%d, η=%g, ρ=%g): %w", op, l, eta, rho, err)
}
