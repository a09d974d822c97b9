// SPDX-License-Identifier: MIT

package grid

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/xs"
)

const (
	// DefaultTolerance is the relative linear-interpolation tolerance.
	DefaultTolerance = 0.01

	// DefaultMaxIterations caps refinement passes.
	DefaultMaxIterations = 20

	// ThermalEnergy is always on the grid when inside the bounds.
	ThermalEnergy = 0.0253

	// pointsPerDecade sets the coarse mesh density.
	pointsPerDecade = 10

	// thresholdScale shrinks the resonance template above a threshold.
	thresholdScale = 1e-2

	// smallCrossSection switches to an absolute test near true zeros.
	smallCrossSection = 1e-50

	// absoluteTolerance is the absolute test used below smallCrossSection.
	absoluteTolerance = 1e-3

	// iterationLimitMessage is reported when MaxIterations is reached.
	iterationLimitMessage = "Iteration limit exceeded when refining interpolation grid!"
)

var (
	// ErrBounds is returned for a non-positive or empty energy range.
	ErrBounds = errors.New("grid: bounds must satisfy 0 < lower < upper")

	// ErrLengthMismatch is returned when energies and widths differ in length.
	ErrLengthMismatch = errors.New("grid: energies and widths differ in length")

	// ErrIterationLimit is returned by Refine with FailOnLimit set.
	ErrIterationLimit = errors.New("grid: refinement iteration limit exceeded")

	// ErrEvaluatorLength is returned when an Evaluator answers with the
	// wrong number of values.
	ErrEvaluatorLength = errors.New("grid: evaluator returned wrong number of values")
)

// ResonancePositions is the relative offset template, in units of the total
// width, that resolves an isolated peak to about 1% with lin-lin
// interpolation.
var ResonancePositions = [...]float64{
	0, 0.001, 0.002, 0.003, 0.004, 0.005, 0.006, 0.007, 0.008, 0.009, 0.01, 0.02,
	0.03, 0.04, 0.05, 0.06, 0.07, 0.08, 0.09, 0.1, 0.11, 0.12, 0.13, 0.14,
	0.15, 0.16, 0.17, 0.18, 0.19, 0.2, 0.21, 0.22, 0.23, 0.24, 0.25, 0.26,
	0.28, 0.3, 0.32, 0.34, 0.36, 0.38, 0.4, 0.42, 0.44, 0.46, 0.48, 0.5,
	0.55, 0.6, 0.65, 0.7, 0.75, 0.8, 0.85, 0.9, 0.95, 1, 1.05, 1.1,
	1.15, 1.2, 1.25, 1.3, 1.35, 1.4, 1.45, 1.5, 1.55, 1.6, 1.65, 1.7,
	1.75, 1.8, 1.85, 1.9, 1.95, 2, 2.05, 2.1, 2.15, 2.2, 2.25, 2.3,
	2.35, 2.4, 2.45, 2.5, 2.6, 2.7, 2.8, 2.9, 3, 3.1, 3.2, 3.3,
	3.4, 3.6, 3.8, 4, 4.2, 4.4, 4.6, 4.8, 5, 5.2, 5.4, 5.6,
	5.8, 6, 6.2, 6.4, 6.5, 6.8, 7, 7.5, 8, 8.5, 9, 9.5,
	10, 10.5, 11, 11.5, 12, 12.5, 13, 13.5, 14, 14.5, 15, 15.5,
	16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27,
	28, 29, 30, 31, 32, 33, 34, 36, 38, 40, 42, 44,
	46, 48, 50, 53, 56, 59, 62, 66, 70, 74, 78, 82,
	86, 90, 94, 98, 102, 106, 109.8, 114, 118, 123.2, 126, 130,
	138.2, 155, 160, 173.9, 180, 195.1, 200, 210, 218.9, 230, 245.6, 250,
	260, 275.6, 309.2, 320, 346.9, 360, 389.2, 400, 420, 436.7, 460, 480,
	500, 600, 700, 800, 900, 1000,
}

// Evaluator computes cross sections at the given energies.
type Evaluator func(ctx context.Context, energies []float64) (xs.Set, error)

// RefineOptions configures Refine.
//
// Fields:
//   - MaxIterations: refinement passes before giving up (default 20).
//   - FailOnLimit: return ErrIterationLimit instead of a best-effort grid.
//   - Logger: receives per-pass Debug counts and the cap Warn; nil
//     discards them.
type RefineOptions struct {
	MaxIterations int
	FailOnLimit   bool
	Logger        *zap.Logger
}

// DefaultRefineOptions returns the 20-pass, non-fatal configuration.
func DefaultRefineOptions() RefineOptions {
	return RefineOptions{MaxIterations: DefaultMaxIterations}
}

func gridErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
