package reconstruct

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/formalism"
	"github.com/katalvlaran/resonances/grid"
	"github.com/katalvlaran/resonances/parallel"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/unresolved"
	"github.com/katalvlaran/resonances/xs"
)

// CrossSections reconstructs every region of ev. Each reaction maps to an
// xs.Pointwise for a single region or to xs.Regions, ordered resolved then
// unresolved, for several. A reaction missing from a region is zero there.
func CrossSections(ctx context.Context, ev *resonance.Evaluation, opts Options) (map[string]xs.Piecewise, error) {
	log := opts.logger()
	var parts []map[string]xs.Pointwise
	for i := range ev.Resolved {
		part, err := resolvedCrossSections(ctx, ev, i, opts, log.With(zap.Int("region", i)))
		if err != nil {
			return nil, reconstructErrorf("CrossSections", err)
		}
		parts = append(parts, part)
	}

	if u := ev.Unresolved; u != nil {
		if u.SelfShieldingOnly {
			log.Info("skipping unresolved region: for self shielding only")
		} else {
			r, err := unresolved.New(ev, unresolved.Options{InterpolateWidths: opts.InterpolateWidths, Logger: log})
			if err != nil {
				return nil, reconstructErrorf("CrossSections", err)
			}
			part, err := r.CrossSection()
			if err != nil {
				return nil, reconstructErrorf("CrossSections", err)
			}
			parts = append(parts, part)
		}
	}

	return combine(parts), nil
}

func resolvedCrossSections(ctx context.Context, ev *resonance.Evaluation, index int, opts Options, log *zap.Logger) (map[string]xs.Pointwise, error) {
	r, err := formalism.New(ev, index, formalism.Options{Scheme: opts.Scheme, Logger: log})
	if err != nil {
		return nil, err
	}
	egrid, err := r.EnergyGrid()
	if err != nil {
		return nil, err
	}
	eval := func(ctx context.Context, energies []float64) (xs.Set, error) {
		return parallel.Map(ctx, energies, parallel.CrossSections(), opts.Parallel,
			func(_ context.Context, block []float64) (xs.Set, error) { return r.CrossSection(block) })
	}
	set, err := eval(ctx, egrid)
	if err != nil {
		return nil, err
	}

	if opts.Tolerance > 0 {
		refine := opts.Refine
		refine.Logger = log
		var msgs []string
		egrid, set, msgs, err = grid.Refine(ctx, egrid, set, opts.Tolerance, eval, refine)
		if err != nil {
			return nil, err
		}
		for _, m := range msgs {
			log.Info(m)
		}
	}

	out := make(map[string]xs.Pointwise, len(set))
	for name, values := range set {
		p, err := xs.NewPointwise(egrid, values, xs.LinLin)
		if err != nil {
			return nil, err
		}
		out[name] = p
	}

	return out, nil
}

func combine(parts []map[string]xs.Pointwise) map[string]xs.Piecewise {
	names := make(map[string]bool)
	for _, p := range parts {
		for name := range p {
			names[name] = true
		}
	}
	out := make(map[string]xs.Piecewise, len(names))
	if len(parts) == 1 {
		for name, p := range parts[0] {
			out[name] = p
		}

		return out
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)
	for _, name := range sorted {
		regions := make(xs.Regions, len(parts))
		for k, p := range parts {
			if pw, ok := p[name]; ok {
				regions[k] = pw
				continue
			}
			ref := p[xs.Total]
			regions[k] = xs.Pointwise{
				Energies:      ref.Energies,
				Values:        make([]float64, len(ref.Energies)),
				Interpolation: ref.Interpolation,
			}
		}
		out[name] = regions
	}

	return out
}
