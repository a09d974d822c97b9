package reconstruct

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/formalism"
	"github.com/katalvlaran/resonances/grid"
	"github.com/katalvlaran/resonances/parallel"
	"github.com/katalvlaran/resonances/resonance"
)

var (
	// ErrMultipleRegionsAngular is returned by AngularDistributions for an
	// evaluation with more than one resolved region.
	ErrMultipleRegionsAngular = errors.New("reconstruct: angular reconstruction supports a single resolved region")

	// ErrNoResolvedRegion is returned by AngularDistributions for an
	// evaluation without resolved regions.
	ErrNoResolvedRegion = errors.New("reconstruct: evaluation has no resolved region")
)

// Options configures CrossSections and AngularDistributions.
type Options struct {
	// Tolerance is the relative lin-lin interpolation tolerance the
	// resolved grids are refined to; 0 skips refinement.
	Tolerance float64
	// Refine bounds the refinement passes.
	Refine grid.RefineOptions
	// Scheme shares widths among channel spins.
	Scheme resonance.Scheme
	// Parallel controls block evaluation of long grids.
	Parallel parallel.Options
	// InterpolateWidths interpolates unresolved widths instead of cross
	// sections.
	InterpolateWidths bool
	// Angular configures AngularDistributions.
	Angular formalism.AngularOptions
	// Logger receives progress; nil discards it.
	Logger *zap.Logger
}

// DefaultOptions returns a 1% tolerance, 20 refinement passes, the NJOY
// scheme, 8 blocks above 1000 energies and renormalized Legendre moments.
func DefaultOptions() Options {
	return Options{
		Tolerance: grid.DefaultTolerance,
		Refine:    grid.DefaultRefineOptions(),
		Scheme:    resonance.NJOY,
		Parallel:  parallel.DefaultOptions(),
		Angular:   formalism.DefaultAngularOptions(),
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}

	return o.Logger
}

func reconstructErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
