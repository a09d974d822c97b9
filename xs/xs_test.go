package xs_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/resonances/xs"
)

func TestInterpolate_Laws(t *testing.T) {
	y, err := xs.Interpolate(xs.LinLin, 1, 10, 3, 30, 2)
	require.NoError(t, err)
	assert.InDelta(t, 20, y, 1e-12)

	// y = x² is exact under log-log.
	y, err = xs.Interpolate(xs.LogLog, 1, 1, 10, 100, 3)
	require.NoError(t, err)
	assert.InDelta(t, 9, y, 1e-9)

	// y = e^x is exact under lin-log.
	y, err = xs.Interpolate(xs.LinLog, 0, 1, 2, math.Exp(2), 1)
	require.NoError(t, err)
	assert.InDelta(t, math.E, y, 1e-12)

	// y = ln x is exact under log-lin.
	y, err = xs.Interpolate(xs.LogLin, 1, 0, math.E*math.E, 2, math.E)
	require.NoError(t, err)
	assert.InDelta(t, 1, y, 1e-12)

	_, err = xs.Interpolate(xs.LogLog, 1, 0, 10, 100, 3)
	assert.ErrorIs(t, err, xs.ErrInvalidInterpolation)
}

func TestParseInterpolation(t *testing.T) {
	for _, law := range []xs.Interpolation{xs.LinLin, xs.LinLog, xs.LogLin, xs.LogLog} {
		got, err := xs.ParseInterpolation(law.String())
		require.NoError(t, err)
		assert.Equal(t, law, got)
	}
	got, err := xs.ParseInterpolation("")
	require.NoError(t, err)
	assert.Equal(t, xs.LinLin, got)

	_, err = xs.ParseInterpolation("charted")
	assert.ErrorIs(t, err, xs.ErrUnknownInterpolation)
}

func TestInterpolation_YAML(t *testing.T) {
	var doc struct {
		Law xs.Interpolation `yaml:"law"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("law: log-log\n"), &doc))
	assert.Equal(t, xs.LogLog, doc.Law)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "law: log-log\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("law: bogus\n"), &doc))
}

func TestPointwise(t *testing.T) {
	_, err := xs.NewPointwise([]float64{1, 2}, []float64{1}, xs.LinLin)
	assert.ErrorIs(t, err, xs.ErrLengthMismatch)
	_, err = xs.NewPointwise([]float64{1, 1}, []float64{1, 2}, xs.LinLin)
	assert.ErrorIs(t, err, xs.ErrNotAscending)
	_, err = xs.NewPointwise(nil, nil, xs.LinLin)
	assert.ErrorIs(t, err, xs.ErrEmpty)

	p, err := xs.NewPointwise([]float64{1, 2, 4}, []float64{0, 10, 30}, xs.LinLin)
	require.NoError(t, err)
	v, err := p.At(3)
	require.NoError(t, err)
	assert.InDelta(t, 20, v, 1e-12)
	v, err = p.At(2)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
	_, err = p.At(5)
	assert.ErrorIs(t, err, xs.ErrOutOfDomain)

	s, err := p.DomainSlice(1.5, 3)
	require.NoError(t, err)
	want := xs.Pointwise{Energies: []float64{1.5, 2, 3}, Values: []float64{5, 10, 20}}
	assert.Empty(t, cmp.Diff(want, s, cmpopts.EquateApprox(0, 1e-12)))

	_, err = p.DomainSlice(5, 6)
	assert.ErrorIs(t, err, xs.ErrOutOfDomain)
}

func TestRegions(t *testing.T) {
	a := xs.Pointwise{Energies: []float64{1, 2}, Values: []float64{1, 1}}
	b := xs.Pointwise{Energies: []float64{2, 3}, Values: []float64{5, 5}}
	r := xs.Regions{a, b}

	lo, hi := r.Domain()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 3.0, hi)

	v, err := r.At(2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
	v, err = r.At(1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	_, err = r.At(4)
	assert.ErrorIs(t, err, xs.ErrOutOfDomain)

	var _ xs.Piecewise = r
	var _ xs.Piecewise = a
}

func TestSet(t *testing.T) {
	s := xs.NewSet(4, xs.Total, xs.Elastic)
	assert.Equal(t, []string{xs.Elastic, xs.Total}, s.Names())
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.AllZero(xs.Total))

	part := xs.Set{xs.Total: {1, 2}, xs.Capture: {3, 4}}
	s.Put(part, 2, 4)
	assert.Equal(t, []float64{0, 0, 1, 2}, s[xs.Total])
	assert.Equal(t, []float64{0, 0, 3, 4}, s[xs.Capture])
	assert.Equal(t, []float64{1, 2}, s.Slice(2, 4)[xs.Total])
	assert.False(t, s.AllZero(xs.Total))

	v := []float64{-1, 0, 2, math.Copysign(0, -1)}
	xs.Clamp(v)
	assert.Equal(t, []float64{0, 0, 2, 0}, v)
	assert.Equal(t, 0, xs.Set{}.Len())
}

func TestLegendre(t *testing.T) {
	l := xs.Legendre{"elastic": {{1, 1, 1}, {0.1, 0.2, 0.3}}}
	assert.Equal(t, 2, l.Order("elastic"))
	assert.Equal(t, []float64{1, 0.2}, l.At("elastic", 1))
}
