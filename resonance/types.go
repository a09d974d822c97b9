package resonance

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidCoupling is the sentinel behind CouplingError.
	ErrInvalidCoupling = errors.New("resonance: invalid spin coupling")

	// ErrEmptyTable is returned when a region holds no resonances.
	ErrEmptyTable = errors.New("resonance: empty resonance table")

	// ErrBadBounds is returned when a region's bounds are not ordered.
	ErrBadBounds = errors.New("resonance: lower bound must be below upper bound")

	// ErrUnknownFormalism is returned for an unrecognised formalism name.
	ErrUnknownFormalism = errors.New("resonance: unknown formalism")

	// ErrUnknownScheme is returned by ParseScheme.
	ErrUnknownScheme = errors.New("resonance: unknown multiple-spin scheme")

	// ErrUnknownParticle is returned when a particle name has no record.
	ErrUnknownParticle = errors.New("resonance: unknown particle")

	// ErrUnknownPair is returned when a spin-group column names no particle pair.
	ErrUnknownPair = errors.New("resonance: unknown particle pair")

	// ErrColumnMismatch is returned when a spin-group row has the wrong
	// number of widths.
	ErrColumnMismatch = errors.New("resonance: row width count differs from column count")

	// ErrNoRegion is returned when an evaluation has no region to reconstruct.
	ErrNoRegion = errors.New("resonance: evaluation has no resonance region")

	// ErrRegionIndex is returned for an out-of-range resolved region index.
	ErrRegionIndex = errors.New("resonance: resolved region index out of range")
)

// CouplingError reports a resonance whose J cannot be built from L and any
// channel spin allowed by the projectile and target spins.
type CouplingError struct {
	L          int
	J          float64
	TargetSpin float64
	// Column is set for R-Matrix Limited spin-group columns.
	Column string
}

// Error implements error.
func (e *CouplingError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("resonance: cannot couple up to J = %v with L = %d for %q", e.J, e.L, e.Column)
	}

	return fmt.Sprintf("resonance: cannot couple up to J = %v with I = %v, i = 0.5 and L = %d", e.J, e.TargetSpin, e.L)
}

// Unwrap lets errors.Is match ErrInvalidCoupling.
func (e *CouplingError) Unwrap() error { return ErrInvalidCoupling }

// Formalism names a resolved-region reconstruction method.
type Formalism string

// Supported formalisms.
const (
	SLBW           Formalism = "SLBW"
	MLBW           Formalism = "MLBW"
	ReichMoore     Formalism = "ReichMoore"
	RMatrixLimited Formalism = "RMatrixLimited"
)

// Valid reports whether f is a known formalism.
func (f Formalism) Valid() bool {
	switch f {
	case SLBW, MLBW, ReichMoore, RMatrixLimited:
		return true
	}

	return false
}

// Scheme selects how a width is shared when several channel spins can
// couple L to J.
type Scheme int

const (
	// NJOY gives the full width to the first allowed spin and zero to the
	// others, which stay in the sum for potential scattering.
	NJOY Scheme = iota
	// ENDF divides the width evenly among all allowed spins.
	ENDF
	// Ignore drops channel-spin bookkeeping altogether.
	Ignore
)

var schemeNames = [...]string{"NJOY", "ENDF", "ignore"}

// String implements fmt.Stringer.
func (s Scheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}

	return schemeNames[s]
}

// ParseScheme maps "NJOY", "ENDF" or "ignore" to a Scheme.
func ParseScheme(s string) (Scheme, error) {
	for i, n := range schemeNames {
		if n == s {
			return Scheme(i), nil
		}
	}

	return NJOY, fmt.Errorf("ParseScheme(%q): %w", s, ErrUnknownScheme)
}

// MarshalYAML writes the scheme name.
func (s Scheme) MarshalYAML() (interface{}, error) { return s.String(), nil }

// UnmarshalYAML reads the scheme name.
func (s *Scheme) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	v, err := ParseScheme(name)
	if err != nil {
		return err
	}
	*s = v

	return nil
}

func resonanceErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
