package reconstruct_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/resonances/formalism"
	"github.com/katalvlaran/resonances/parallel"
	"github.com/katalvlaran/resonances/reconstruct"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/xs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const mlbw = `
target: {name: Fe56, mass: 55.9349, spin: 0}
resolved:
  - formalism: MLBW
    lowerBound: 1.0e-5
    upperBound: 1.0e5
    scatteringRadius: 0.54
    lValuesNeeded: 1
    resonances:
      - {energy: 1150.0, L: 0, J: 0.5, neutronWidth: 0.05, captureWidth: 0.6}
      - {energy: 5000.0, L: 1, J: 1.5, neutronWidth: 0.2, captureWidth: 0.5}
`

func parse(t testing.TB, doc string) *resonance.Evaluation {
	t.Helper()
	ev, err := resonance.ParseEvaluation([]byte(doc))
	require.NoError(t, err)

	return ev
}

func load(t testing.TB, path string) *resonance.Evaluation {
	t.Helper()
	ev, err := resonance.LoadEvaluation(path)
	require.NoError(t, err)

	return ev
}

func pointwise(t *testing.T, p xs.Piecewise) xs.Pointwise {
	t.Helper()
	pw, ok := p.(xs.Pointwise)
	require.True(t, ok, "got %T", p)

	return pw
}

func TestCrossSections_SingleRegion(t *testing.T) {
	ev := parse(t, mlbw)
	out, err := reconstruct.CrossSections(context.Background(), ev, reconstruct.DefaultOptions())
	require.NoError(t, err)

	total := pointwise(t, out[xs.Total])
	el, ne := pointwise(t, out[xs.Elastic]), pointwise(t, out[xs.Nonelastic])
	lo, hi := total.Domain()
	assert.Equal(t, 1e-5, lo)
	assert.Equal(t, 1e5, hi)
	assert.Equal(t, xs.LinLin, total.Interpolation)
	for i := range total.Energies {
		assert.InDelta(t, el.Values[i]+ne.Values[i], total.Values[i], 1e-9*total.Values[i])
	}

	r, err := formalism.New(ev, 0, formalism.Options{})
	require.NoError(t, err)
	generated, err := r.EnergyGrid()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total.Len(), len(generated))

	opts := reconstruct.DefaultOptions()
	opts.Tolerance = 0
	raw, err := reconstruct.CrossSections(context.Background(), ev, opts)
	require.NoError(t, err)
	assert.Equal(t, generated, pointwise(t, raw[xs.Total]).Energies, "no refinement")
}

func TestCrossSections_ParallelMatchesSerial(t *testing.T) {
	ev := parse(t, mlbw)
	serial := reconstruct.DefaultOptions()
	serial.Parallel = parallel.Options{Blocks: 1}
	blocked := reconstruct.DefaultOptions()
	blocked.Parallel = parallel.Options{Threshold: 10, Blocks: 4}

	a, err := reconstruct.CrossSections(context.Background(), ev, serial)
	require.NoError(t, err)
	b, err := reconstruct.CrossSections(context.Background(), ev, blocked)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCrossSections_Regions(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	opts := reconstruct.DefaultOptions()
	opts.Logger = zap.New(core)
	ev := load(t, "testdata/multi.yaml")

	out, err := reconstruct.CrossSections(context.Background(), ev, opts)
	require.NoError(t, err)
	regions, ok := out[xs.Capture].(xs.Regions)
	require.True(t, ok, "got %T", out[xs.Capture])
	require.Len(t, regions, 3)
	lo, hi := regions.Domain()
	assert.Equal(t, 1e-5, lo)
	assert.Equal(t, 8e5, hi)
	assert.Equal(t, xs.LogLog, regions[2].Interpolation, "unresolved keeps its law")

	for _, e := range []float64{500, 1150, 2e5} {
		v, err := regions.At(e)
		require.NoError(t, err)
		assert.Greater(t, v, 0.0, "capture at %g", e)
	}
	assert.Equal(t, 2, logs.FilterMessage("reconstructing resolved region").Len())
	assert.Equal(t, 1, logs.FilterMessage("reconstructing unresolved region").Len())

	ev.Unresolved.SelfShieldingOnly = true
	out, err = reconstruct.CrossSections(context.Background(), ev, opts)
	require.NoError(t, err)
	assert.Len(t, out[xs.Total].(xs.Regions), 2)
	assert.Equal(t, 1, logs.FilterMessage("skipping unresolved region: for self shielding only").Len())
}

func TestCrossSections_MissingReactionIsZero(t *testing.T) {
	ev := load(t, "testdata/rml.yaml")
	ev.Unresolved = load(t, "testdata/multi.yaml").Unresolved
	ev.Unresolved.LowerBound, ev.Unresolved.UpperBound = 2e6, 3e6

	opts := reconstruct.DefaultOptions()
	opts.Tolerance = 0
	out, err := reconstruct.CrossSections(context.Background(), ev, opts)
	require.NoError(t, err)
	comp, ok := out["n + Fe56_e1"].(xs.Regions)
	require.True(t, ok)
	require.Len(t, comp, 2)
	for _, v := range comp[1].Values {
		assert.Zero(t, v)
	}
	assert.Equal(t, comp[1].Energies, out[xs.Total].(xs.Regions)[1].Energies)
}

func TestCrossSections_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reconstruct.CrossSections(ctx, parse(t, mlbw), reconstruct.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
