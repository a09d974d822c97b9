// SPDX-License-Identifier: MIT

package formalism

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/cmatrix"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/xs"
)

var (
	// ErrAngularUnsupported is returned by SLBW's AngularDistribution.
	ErrAngularUnsupported = errors.New("formalism: angular distributions cannot be reconstructed with single-level Breit-Wigner")

	// ErrNoChannels is returned when the channel view was not built.
	ErrNoChannels = errors.New("formalism: channel view not available, enable Options.Angular")

	// ErrChannelClosed is returned when a channel is closed at a requested energy.
	ErrChannelClosed = errors.New("formalism: one or more channels are closed at a requested energy")

	// ErrMissingGammaWidth is returned when a Reich-Moore resonance has no
	// eliminated capture width.
	ErrMissingGammaWidth = errors.New("formalism: no eliminated gamma width for resonance")

	// ErrNaN is returned when a penetrability or R-matrix element is NaN.
	ErrNaN = errors.New("formalism: NaN in R-matrix")

	// ErrBackgroundRange is returned by BackgroundRMatrix.
	ErrBackgroundRange = errors.New("formalism: energy outside background window")
)

// Channel names in CrossSection results.
const (
	Total      = xs.Total
	Elastic    = xs.Elastic
	Capture    = xs.Capture
	Fission    = xs.Fission
	Nonelastic = xs.Nonelastic
)

// Options configures New.
type Options struct {
	// Scheme shares widths among channel spins in the channel view.
	Scheme resonance.Scheme
	// Angular builds the channel view used by ScatteringMatrix and
	// AngularDistribution.
	Angular bool
	// Logger receives the banner and warnings; nil discards them.
	Logger *zap.Logger
}

// PhaseOptions tune the collision matrix.
type PhaseOptions struct {
	// ComputedRadius uses the penetrability radius for hard-sphere phases
	// instead of the tabulated scattering radius.
	ComputedRadius bool
	// ExtraCoulombPhase multiplies charged-particle phases by e^{iω}.
	ExtraCoulombPhase bool
}

// AngularOptions tune AngularDistribution.
type AngularOptions struct {
	PhaseOptions
	// Renormalize divides every moment by the L=0 term.
	Renormalize bool
	// Reactions restricts the outgoing reactions; empty means all
	// non-eliminated, non-absorption channels.
	Reactions []string
}

// DefaultAngularOptions renormalizes and uses tabulated radii.
func DefaultAngularOptions() AngularOptions {
	return AngularOptions{Renormalize: true}
}

// Reconstructor evaluates one resolved region.
type Reconstructor interface {
	// Formalism names the method.
	Formalism() resonance.Formalism
	// Bounds returns the region's energy range.
	Bounds() (lo, hi float64)
	// Resonances returns resonance energies (ascending) and total widths
	// for grid generation.
	Resonances() (energies, widths []float64)
	// Thresholds lists reaction thresholds inside the region's reach.
	Thresholds() []float64
	// EnergyGrid returns the initial reconstruction grid of the region.
	EnergyGrid() ([]float64, error)
	// CrossSection evaluates every reaction on energies.
	CrossSection(energies []float64) (xs.Set, error)
	// SupportsAngularDistribution reports whether AngularDistribution works.
	SupportsAngularDistribution() bool
	// AngularDistribution returns Legendre moments per outgoing reaction.
	AngularDistribution(energies []float64, opts AngularOptions) (xs.Legendre, error)
}

// Scatterer is implemented by reconstructors with a channel view: MLBW,
// Reich-Moore and R-Matrix Limited.
type Scatterer interface {
	Reconstructor
	// Channels lists the kept channels in matrix order.
	Channels() []channel.Channel
	// ScatteringMatrix returns the collision matrix U at e.
	ScatteringMatrix(e float64, opts PhaseOptions) (*cmatrix.Dense, error)
	// TMatrix returns I − U, with Coulomb phases on the diagonal if asked.
	TMatrix(e float64, opts PhaseOptions) (*cmatrix.Dense, error)
}

// RMatrixer exposes the intermediate matrices of the R-matrix formalisms.
type RMatrixer interface {
	Scatterer
	RMatrix(e float64) (*cmatrix.Dense, error)
	L0Matrix(e float64) (*cmatrix.Dense, error)
	XMatrix(e float64) (*cmatrix.Dense, error)
	WMatrix(e float64) (*cmatrix.Dense, error)
}

// LevelScatterer is implemented by SLBW, whose collision matrix is one
// block per level.
type LevelScatterer interface {
	Reconstructor
	LevelScatteringMatrices(e float64, opts PhaseOptions) ([]*cmatrix.Dense, error)
}

// New returns the Reconstructor for resolved region index of ev.
func New(ev *resonance.Evaluation, index int, opts Options) (Reconstructor, error) {
	r, err := ev.Region(index)
	if err != nil {
		return nil, formalismErrorf("New", err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("reconstructing resolved region",
		zap.String("formalism", string(r.Formalism)),
		zap.Float64("lowerBound", r.LowerBound),
		zap.Float64("upperBound", r.UpperBound))

	b := newBase(ev, r, log)
	switch r.Formalism {
	case resonance.SLBW:
		return newSLBW(b, opts)
	case resonance.MLBW:
		return newMLBW(b, opts)
	case resonance.ReichMoore:
		return newReichMoore(b, opts)
	case resonance.RMatrixLimited:
		return newRML(b, opts)
	}

	return nil, fmt.Errorf("New: %w %q", resonance.ErrUnknownFormalism, r.Formalism)
}

func formalismErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

var (
	_ LevelScatterer = (*slbw)(nil)
	_ Scatterer      = (*mlbw)(nil)
	_ RMatrixer      = (*reichMoore)(nil)
	_ RMatrixer      = (*rml)(nil)
)
