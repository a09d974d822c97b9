package grid_test

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/resonances/grid"
	"github.com/katalvlaran/resonances/xs"
)

func lorentz(er, gamma float64) grid.Evaluator {
	return func(_ context.Context, energies []float64) (xs.Set, error) {
		s := xs.NewSet(len(energies), xs.Total, xs.Capture)
		for i, e := range energies {
			d := e - er
			s[xs.Total][i] = 1 + gamma*gamma/4/(d*d+gamma*gamma/4)
		}

		return s, nil
	}
}

func TestResonancePositions(t *testing.T) {
	assert.Len(t, grid.ResonancePositions, 210)
	assert.Equal(t, 0.0, grid.ResonancePositions[0])
	assert.Equal(t, 1000.0, grid.ResonancePositions[len(grid.ResonancePositions)-1])
	assert.True(t, sort.Float64sAreSorted(grid.ResonancePositions[:]), "template must ascend")
}

func TestGenerate_Errors(t *testing.T) {
	_, err := grid.Generate([]float64{1}, nil, 1, 10, nil)
	assert.ErrorIs(t, err, grid.ErrLengthMismatch)

	_, err = grid.Generate(nil, nil, 0, 10, nil)
	assert.ErrorIs(t, err, grid.ErrBounds)

	_, err = grid.Generate(nil, nil, 10, 10, nil)
	assert.ErrorIs(t, err, grid.ErrBounds)
}

func TestGenerate_Shape(t *testing.T) {
	g, err := grid.Generate([]float64{-20, 5, 300}, []float64{1, 0.1, 2}, 1e-5, 1000, []float64{500})
	require.NoError(t, err)

	assert.Equal(t, 1e-5, g[0], "starts at lower bound")
	assert.Equal(t, 1000.0, g[len(g)-1], "ends at upper bound")
	for i := 1; i < len(g); i++ {
		require.Less(t, g[i-1], g[i], "grid must increase strictly at %d", i)
	}
	for _, want := range []float64{grid.ThermalEnergy, 5, 300, 500, 500.01} {
		i := sort.SearchFloat64s(g, want*(1-1e-12))
		require.Less(t, i, len(g))
		assert.InDelta(t, want, g[i], 1e-9*want, "missing %g", want)
	}
	assert.Greater(t, len(g), 2*len(grid.ResonancePositions), "dense template around both peaks")
}

func TestGenerate_SkipsNegativeResonances(t *testing.T) {
	with, err := grid.Generate([]float64{-20, 5}, []float64{1, 0.1}, 1, 100, nil)
	require.NoError(t, err)
	without, err := grid.Generate([]float64{5}, []float64{0.1}, 1, 100, nil)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(without, with, cmpopts.EquateApprox(0, 1e-12)))
}

func TestRefine_MeetsTolerance(t *testing.T) {
	eval := lorentz(10, 0.5)
	g, err := grid.Generate([]float64{10}, []float64{0.5}, 1, 20, nil)
	require.NoError(t, err)
	set, err := eval(context.Background(), g)
	require.NoError(t, err)

	g, set, msgs, err := grid.Refine(context.Background(), g, set, 1e-2, eval, grid.DefaultRefineOptions())
	require.NoError(t, err)
	require.NotEmpty(t, msgs)
	assert.NotContains(t, msgs[0], "Iteration limit")
	require.Len(t, set[xs.Total], len(g))

	mids := make([]float64, len(g)-1)
	for i := range mids {
		mids[i] = (g[i] + g[i+1]) / 2
	}
	exact, err := eval(context.Background(), mids)
	require.NoError(t, err)
	for i, m := range mids {
		lin := set[xs.Total][i] + (set[xs.Total][i+1]-set[xs.Total][i])*(m-g[i])/(g[i+1]-g[i])
		require.InEpsilon(t, exact[xs.Total][i], lin, 1e-2, "midpoint %g", m)
	}
}

func TestRefine_OnlyEvaluatesNewPoints(t *testing.T) {
	base := lorentz(10, 0.5)
	var seen []float64
	eval := func(ctx context.Context, e []float64) (xs.Set, error) {
		seen = append(seen, e...)
		return base(ctx, e)
	}
	g := []float64{1, 5, 9, 10, 11, 15, 20}
	set, _ := base(context.Background(), g)

	out, _, _, err := grid.Refine(context.Background(), g, set, 1e-2, eval, grid.DefaultRefineOptions())
	require.NoError(t, err)
	assert.Equal(t, len(g)+len(seen), len(out))
	for _, x := range g {
		assert.NotContains(t, seen, x)
	}
}

func TestRefine_SkipsZeroReactions(t *testing.T) {
	calls := 0
	eval := func(_ context.Context, e []float64) (xs.Set, error) {
		calls++
		return xs.NewSet(len(e), xs.Capture), nil
	}
	g := []float64{1, 2, 3, 4}
	_, _, msgs, err := grid.Refine(context.Background(), g, xs.NewSet(4, xs.Capture), 1e-2, eval, grid.DefaultRefineOptions())
	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Equal(t, []string{"0 points were added (for total of 4) to achieve tolerance of 1%"}, msgs)
}

func TestRefine_IterationLimit(t *testing.T) {
	step := func(_ context.Context, e []float64) (xs.Set, error) {
		s := xs.NewSet(len(e), xs.Total)
		for i, x := range e {
			s[xs.Total][i] = 1
			if x > math.Pi {
				s[xs.Total][i] = 2
			}
		}

		return s, nil
	}
	g := []float64{1, 2, 3, 4, 5}
	set, _ := step(context.Background(), g)

	core, logs := observer.New(zapcore.WarnLevel)
	opts := grid.RefineOptions{MaxIterations: 3, Logger: zap.New(core)}
	out, _, msgs, err := grid.Refine(context.Background(), g, set, 1e-2, step, opts)
	require.NoError(t, err)
	assert.Greater(t, len(out), len(g))
	assert.Equal(t, "Iteration limit exceeded when refining interpolation grid!", msgs[0])
	assert.Equal(t, 1, logs.FilterMessage("refinement stopped at iteration limit").Len())

	opts.FailOnLimit = true
	_, _, _, err = grid.Refine(context.Background(), g, set, 1e-2, step, opts)
	assert.ErrorIs(t, err, grid.ErrIterationLimit)
}

func TestRefine_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := []float64{1, 2, 3}
	set, _ := lorentz(2, 0.1)(ctx, g)

	_, _, _, err := grid.Refine(ctx, g, set, 1e-2, lorentz(2, 0.1), grid.DefaultRefineOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRefine_EvaluatorLength(t *testing.T) {
	bad := func(_ context.Context, e []float64) (xs.Set, error) {
		return xs.NewSet(len(e)+1, xs.Total), nil
	}
	g := []float64{1, 2, 3}
	set, _ := lorentz(2, 0.1)(context.Background(), g)

	_, _, _, err := grid.Refine(context.Background(), g, set, 1e-2, bad, grid.DefaultRefineOptions())
	assert.ErrorIs(t, err, grid.ErrEvaluatorLength)
}
