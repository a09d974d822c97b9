package reconstruct

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/formalism"
	"github.com/katalvlaran/resonances/parallel"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/xs"
)

// Angular holds Legendre moments of each outgoing reaction on a grid.
type Angular struct {
	Energies []float64
	Legendre xs.Legendre
}

// AngularDistributions reconstructs the Legendre moments of the single
// resolved region of ev on its energy grid. The grid is split at every
// threshold that lies on it, so channels open inside a piece throughout.
func AngularDistributions(ctx context.Context, ev *resonance.Evaluation, opts Options) (*Angular, error) {
	switch len(ev.Resolved) {
	case 0:
		return nil, reconstructErrorf("AngularDistributions", ErrNoResolvedRegion)
	case 1:
	default:
		return nil, reconstructErrorf("AngularDistributions", ErrMultipleRegionsAngular)
	}
	log := opts.logger()
	r, err := formalism.New(ev, 0, formalism.Options{Scheme: opts.Scheme, Angular: true, Logger: log})
	if err != nil {
		return nil, reconstructErrorf("AngularDistributions", err)
	}
	if !r.SupportsAngularDistribution() {
		return nil, reconstructErrorf("AngularDistributions", formalism.ErrAngularUnsupported)
	}
	egrid, err := r.EnergyGrid()
	if err != nil {
		return nil, reconstructErrorf("AngularDistributions", err)
	}

	out := &Angular{Energies: egrid, Legendre: xs.Legendre{}}
	for _, piece := range splitAt(egrid, r.Thresholds()) {
		sub := egrid[piece[0]:piece[1]]
		log.Debug("angular subgrid", zap.Float64("from", sub[0]), zap.Float64("to", sub[len(sub)-1]), zap.Int("points", len(sub)))
		l, err := parallel.Map(ctx, sub, parallel.Legendre(), opts.Parallel,
			func(_ context.Context, block []float64) (xs.Legendre, error) {
				return r.AngularDistribution(block, opts.Angular)
			})
		if err != nil {
			return nil, reconstructErrorf("AngularDistributions", err)
		}
		out.Legendre.Put(l, piece[0], len(egrid))
	}

	return out, nil
}

// splitAt returns [lo, hi) index ranges of egrid, cut at each threshold
// found exactly on the grid. A threshold starts the piece above it.
func splitAt(egrid, thresholds []float64) [][2]int {
	cuts := []int{0}
	for _, xi := range thresholds {
		if i, ok := slices.BinarySearch(egrid, xi); ok && i > 0 {
			cuts = append(cuts, i)
		}
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)
	cuts = append(cuts, len(egrid))

	out := make([][2]int, 0, len(cuts)-1)
	for k := 0; k+1 < len(cuts); k++ {
		out = append(out, [2]int{cuts[k], cuts[k+1]})
	}

	return out
}
