package reconstruct_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/resonances/formalism"
	"github.com/katalvlaran/resonances/reconstruct"
	"github.com/katalvlaran/resonances/resonance"
)

func TestAngularDistributions_SplitsAtThreshold(t *testing.T) {
	ev := load(t, "testdata/rml.yaml")
	core, logs := observer.New(zapcore.WarnLevel)
	opts := reconstruct.DefaultOptions()
	opts.Logger = zap.New(core)

	out, err := reconstruct.AngularDistributions(context.Background(), ev, opts)
	require.NoError(t, err)
	assert.Zero(t, logs.FilterMessage("energy grid straddles a channel threshold").Len())

	r, err := formalism.New(ev, 0, formalism.Options{})
	require.NoError(t, err)
	egrid, err := r.EnergyGrid()
	require.NoError(t, err)
	require.Equal(t, egrid, out.Energies)
	xi := r.Thresholds()[0]

	elastic := out.Legendre["n + Fe56"]
	require.NotEmpty(t, elastic)
	for i := range out.Energies {
		assert.InDelta(t, 1, elastic[0][i], 1e-12, "renormalized at %g", out.Energies[i])
	}

	inelastic := out.Legendre["n + Fe56_e1"]
	require.NotEmpty(t, inelastic)
	for i, e := range out.Energies {
		if e < xi {
			for l := range inelastic {
				assert.Zero(t, inelastic[l][i], "closed below threshold at %g", e)
			}
		}
	}
	last := len(out.Energies) - 1
	assert.InDelta(t, 1, inelastic[0][last], 1e-12)
}

func TestAngularDistributions_Errors(t *testing.T) {
	ctx := context.Background()
	opts := reconstruct.DefaultOptions()

	_, err := reconstruct.AngularDistributions(ctx, load(t, "testdata/multi.yaml"), opts)
	assert.ErrorIs(t, err, reconstruct.ErrMultipleRegionsAngular)

	urrOnly := load(t, "testdata/multi.yaml")
	urrOnly.Resolved = nil
	_, err = reconstruct.AngularDistributions(ctx, urrOnly, opts)
	assert.ErrorIs(t, err, reconstruct.ErrNoResolvedRegion)

	slbw := load(t, "testdata/multi.yaml")
	slbw.Resolved = slbw.Resolved[:1]
	require.Equal(t, resonance.SLBW, slbw.Resolved[0].Formalism)
	_, err = reconstruct.AngularDistributions(ctx, slbw, opts)
	assert.ErrorIs(t, err, formalism.ErrAngularUnsupported)
}

func TestAngularDistributions_Blocks(t *testing.T) {
	ev := parse(t, mlbw)
	serial := reconstruct.DefaultOptions()
	serial.Parallel.Blocks = 1
	blocked := reconstruct.DefaultOptions()
	blocked.Parallel.Threshold = 16

	a, err := reconstruct.AngularDistributions(context.Background(), ev, serial)
	require.NoError(t, err)
	b, err := reconstruct.AngularDistributions(context.Background(), ev, blocked)
	require.NoError(t, err)
	require.Equal(t, a.Energies, b.Energies)
	for i := range a.Energies {
		assert.InDeltaSlice(t, a.Legendre.At("elastic", i), b.Legendre.At("elastic", i), 1e-12)
	}
}
