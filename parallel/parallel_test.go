package parallel_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/resonances/parallel"
	"github.com/katalvlaran/resonances/xs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func grid(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}

	return out
}

// square evaluates e² and counts its calls.
func square(calls *atomic.Int32) func(context.Context, []float64) (xs.Set, error) {
	return func(_ context.Context, e []float64) (xs.Set, error) {
		calls.Add(1)
		s := xs.NewSet(len(e), xs.Total)
		for i, x := range e {
			s[xs.Total][i] = x * x
		}
		return s, nil
	}
}

func TestMap_BelowThreshold(t *testing.T) {
	var calls atomic.Int32
	out, err := parallel.Map(context.Background(), grid(parallel.DefaultThreshold), parallel.CrossSections(), parallel.DefaultOptions(), square(&calls))
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
	assert.Len(t, out[xs.Total], parallel.DefaultThreshold)
}

func TestMap_SplitsIntoBlocks(t *testing.T) {
	var calls atomic.Int32
	energies := grid(2500)
	out, err := parallel.Map(context.Background(), energies, parallel.CrossSections(), parallel.DefaultOptions(), square(&calls))
	require.NoError(t, err)
	assert.EqualValues(t, parallel.DefaultBlocks, calls.Load())

	want, err := square(&calls)(context.Background(), energies)
	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestMap_MoreBlocksThanEnergies(t *testing.T) {
	var calls atomic.Int32
	out, err := parallel.Map(context.Background(), grid(3), parallel.CrossSections(), parallel.Options{Threshold: 0, Blocks: 8}, square(&calls))
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
	assert.Equal(t, []float64{1, 4, 9}, out[xs.Total])
}

func TestMap_LegendrePadsOrders(t *testing.T) {
	// blocks starting above 5 carry two extra orders
	fn := func(_ context.Context, e []float64) (xs.Legendre, error) {
		order := 2
		if e[0] > 5 {
			order = 4
		}
		rows := make([][]float64, len(e))
		for i, x := range e {
			rows[i] = make([]float64, order)
			for k := range rows[i] {
				rows[i][k] = x
			}
		}
		return xs.Legendre{"elastic": xs.Transpose(rows)}, nil
	}
	out, err := parallel.Map(context.Background(), grid(10), parallel.Legendre(), parallel.Options{Threshold: 1, Blocks: 2}, fn)
	require.NoError(t, err)
	require.Equal(t, 4, out.Order("elastic"))
	assert.Equal(t, []float64{1, 1, 0, 0}, out.At("elastic", 0))
	assert.Equal(t, []float64{10, 10, 10, 10}, out.At("elastic", 9))
}

func TestMap_Errors(t *testing.T) {
	boom := errors.New("boom")
	fn := func(_ context.Context, e []float64) (xs.Set, error) {
		if e[0] > 100 {
			return nil, boom
		}
		return xs.NewSet(len(e), xs.Total), nil
	}
	_, err := parallel.Map(context.Background(), grid(2000), parallel.CrossSections(), parallel.DefaultOptions(), fn)
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	_, err = parallel.Map(ctx, grid(2000), parallel.CrossSections(), parallel.DefaultOptions(), square(&calls))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}
