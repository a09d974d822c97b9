package spin_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/resonances/spin"
)

func TestAllowedTotalSpins_Range(t *testing.T) {
	// doubled-integer convention: range(|2L-2S|, 2L+2S+2, 2)
	assert.Equal(t, []int{1, 3}, spin.AllowedTotalSpins(1, 0.5))
	assert.Equal(t, []int{0, 2}, spin.AllowedTotalSpins(0.5, 0.5))
	assert.Equal(t, []int{1}, spin.AllowedTotalSpins(0, 0.5))
	assert.Equal(t, []int{2, 4, 6, 8, 10}, spin.AllowedTotalSpins(3, 2))
	assert.Equal(t, []float64{2.5, 3.5}, spin.AllowedTotalSpinsHalf(3, 0.5))
}

func TestAllowedTotalSpins_SymmetricAndTriangle(t *testing.T) {
	values := []float64{0, 0.5, 1, 1.5, 2, 3.5, 4}
	for _, l := range values {
		for _, s := range values {
			js := spin.AllowedTotalSpins(l, s)
			require.Equal(t, js, spin.AllowedTotalSpins(s, l), "l=%v s=%v", l, s)
			require.NotEmpty(t, js)
			for _, j2 := range js {
				j := spin.Half(j2)
				assert.GreaterOrEqual(t, j, math.Abs(l-s))
				assert.LessOrEqual(t, j, l+s)
				assert.True(t, spin.Allowed(j, l, s))
			}
		}
	}
}

func TestTwiceChecked(t *testing.T) {
	v, err := spin.TwiceChecked(1.5)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = spin.TwiceChecked(0.3)
	assert.ErrorIs(t, err, spin.ErrNotHalfInteger)
	assert.True(t, spin.Equal(0.5, 0.5000000001))
	assert.False(t, spin.Equal(0.5, 1.5))
}

func TestClebschGordan_KnownValues(t *testing.T) {
	cases := []struct {
		name                   string
		j1, m1, j2, m2, jj, mm int
		want                   float64
	}{
		{"half-half triplet", 1, 1, 1, -1, 2, 0, 1 / math.Sqrt2},
		{"half-half singlet", 1, 1, 1, -1, 0, 0, 1 / math.Sqrt2},
		{"half-half singlet swapped", 1, -1, 1, 1, 0, 0, -1 / math.Sqrt2},
		{"1x1 to 0", 2, 0, 2, 0, 0, 0, -1 / math.Sqrt(3)},
		{"1x1 to 2", 2, 0, 2, 0, 4, 0, math.Sqrt(2.0 / 3.0)},
		{"1x1 to 1 vanishes", 2, 0, 2, 0, 2, 0, 0},
		{"stretched", 4, 4, 2, 2, 6, 6, 1},
		{"m mismatch", 2, 2, 2, 0, 2, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := spin.ClebschGordan(tc.j1, tc.m1, tc.j2, tc.m2, tc.jj, tc.mm)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestSixJAndRacah(t *testing.T) {
	assert.InDelta(t, 1.0/6.0, spin.SixJ(2, 2, 2, 2, 2, 2), 1e-12)
	assert.InDelta(t, 0.5, spin.SixJ(1, 1, 2, 1, 1, 0), 1e-12)
	// broken triad
	assert.Zero(t, spin.SixJ(2, 2, 6, 2, 2, 2))
	// W(abcd;ef) = (-1)^(a+b+c+d) {a b e; d c f}
	assert.InDelta(t, spin.SixJ(2, 2, 2, 2, 2, 2), spin.Racah(2, 2, 2, 2, 2, 2), 1e-12)
}

func TestZBar(t *testing.T) {
	// s-wave, J=1/2, S=1/2, L=0: sqrt(2J+1)
	assert.InDelta(t, math.Sqrt2, spin.ZBar(0, 1, 0, 1, 1, 0), 1e-12)
	// l1+l2+L odd
	assert.Zero(t, spin.ZBar(0, 1, 2, 1, 1, 0))
	// L outside l1 ⊗ l2
	assert.Zero(t, spin.ZBar(0, 1, 0, 1, 1, 2))
	// p-wave interference with s-wave carries an L=1 term
	assert.NotZero(t, spin.ZBar(0, 1, 2, 1, 1, 2))
}
