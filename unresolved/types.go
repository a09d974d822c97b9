// SPDX-License-Identifier: MIT

package unresolved

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrNoRegion is returned by New for an evaluation without an
	// unresolved region.
	ErrNoRegion = errors.New("unresolved: evaluation has no unresolved region")

	// ErrGridSpan is returned when the tabulated energies do not cover the
	// region's bounds.
	ErrGridSpan = errors.New("unresolved: energy grid doesn't span stated energy range")

	// ErrInconsistentTable is returned when a width column cannot be used on
	// the energy grid without interpolation.
	ErrInconsistentTable = errors.New("unresolved: inconsistent energy arrays")

	// ErrNoLevelSpacing is returned for a sequence without a level spacing.
	ErrNoLevelSpacing = errors.New("unresolved: sequence has no level spacing")
)

const (
	// gapRatio is the largest ratio of neighboring grid energies left alone.
	gapRatio = 3.0

	// quadraturePoints is the size of each GNRL3 quadrature.
	quadraturePoints = 10

	// fixedDOF selects the single-point quadrature of undistributed widths.
	fixedDOF = 5
)

// gapFill are the mantissas inserted into wide grid gaps.
var gapFill = [...]float64{1.0, 1.25, 1.5, 1.7, 2.0, 2.5, 3.0, 3.5, 4.0, 5.0, 6.0, 7.2, 8.5}

// Options configures New.
type Options struct {
	// InterpolateWidths evaluates widths on the grid with the region's
	// interpolation law instead of requiring one column value per energy.
	InterpolateWidths bool
	// Logger receives the banner and warnings; nil discards them.
	Logger *zap.Logger
}

// Sequence identifies one (L, J) spin sequence.
type Sequence struct {
	L int
	J float64
}

func (s Sequence) String() string { return fmt.Sprintf("L=%d J=%g", s.L, s.J) }

// DOF holds the χ² degrees of freedom of the distributed widths. Capture
// is always treated as undistributed.
type DOF struct {
	Neutron, Fission, Competitive float64
}

// Widths are the partial widths of one fluctuation integral in eV.
type Widths struct {
	Neutron, Capture, Fission, Competitive float64
}

// Averages are one sequence's parameters on an energy grid. An absent
// width is all zeros.
type Averages struct {
	Sequence
	DOF DOF
	// Spacing is the average level spacing D(E).
	Spacing []float64
	// Neutron is the reduced average neutron width Γn⁰ as tabulated.
	Neutron     []float64
	Capture     []float64
	Fission     []float64
	Competitive []float64
}

func unresolvedErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
