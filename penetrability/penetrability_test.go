package penetrability_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/resonances/penetrability"
)

// modPi returns the distance between two phases on the circle of period π.
func modPi(a, b float64) float64 {
	d := math.Mod(a-b, math.Pi)
	if d < 0 {
		d += math.Pi
	}

	return math.Min(d, math.Pi-d)
}

func TestClosedFormMatchesRecursion(t *testing.T) {
	for _, rho := range []float64{0.01, 1, 10, 100} {
		for l := 0; l <= 4; l++ {
			closed := penetrability.Evaluate(l, rho)
			rec := penetrability.Recursive(l, rho)
			assert.InEpsilon(t, closed.P, rec.P, 1e-9, "P L=%d ρ=%g", l, rho)
			assert.InDelta(t, closed.S, rec.S, 1e-9, "S L=%d ρ=%g", l, rho)
			assert.Less(t, modPi(closed.Phi, rec.Phi), 1e-9, "φ L=%d ρ=%g", l, rho)
		}
	}
}

func TestTableMatchesRecursionAboveClosedForms(t *testing.T) {
	for _, rho := range []float64{0.5, 3, 25} {
		table := penetrability.Table(9, rho)
		require.Len(t, table, 10)
		for l := 5; l <= 9; l++ {
			rec := penetrability.Recursive(l, rho)
			assert.InEpsilon(t, rec.P, table[l].P, 1e-9)
			assert.InDelta(t, rec.S, table[l].S, 1e-9)
			assert.Less(t, modPi(rec.Phi, table[l].Phi), 1e-9)
			assert.Equal(t, table[l], penetrability.Evaluate(l, rho))
		}
	}
}

func TestLowEnergyLimits(t *testing.T) {
	rho := 1e-3
	// P_L ~ ρ^(2L+1)/((2L−1)!!)², S_L → −L.
	assert.InEpsilon(t, rho, penetrability.Penetrability(0, rho), 1e-12)
	assert.InEpsilon(t, math.Pow(rho, 3), penetrability.Penetrability(1, rho), 1e-5)
	assert.InEpsilon(t, math.Pow(rho, 5)/9, penetrability.Penetrability(2, rho), 1e-5)
	for l := 0; l <= 6; l++ {
		assert.InDelta(t, -float64(l), penetrability.Shift(l, rho), 1e-4, "L=%d", l)
	}
}

func TestHighEnergyLimits(t *testing.T) {
	rho := 1e4
	for l := 0; l <= 6; l++ {
		assert.InEpsilon(t, rho, penetrability.Penetrability(l, rho), 1e-3, "L=%d", l)
		assert.InDelta(t, 0, penetrability.Shift(l, rho), 1e-3, "L=%d", l)
	}
}

func TestPhaseZeroOrder(t *testing.T) {
	assert.Equal(t, 0.7, penetrability.Phase(0, 0.7))
}

func TestNegativeL(t *testing.T) {
	assert.True(t, math.IsNaN(penetrability.Penetrability(-1, 1)))
	assert.Nil(t, penetrability.Table(-1, 1))

	_, err := penetrability.CoulombFactors(-1, 1, 1)
	assert.ErrorIs(t, err, penetrability.ErrNegativeL)
}

func TestCoulombFactors(t *testing.T) {
	neutral, err := penetrability.CoulombFactors(2, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, penetrability.Evaluate(2, 3), neutral)

	charged, err := penetrability.CoulombFactors(0, 10, 1)
	require.NoError(t, err)
	assert.InDelta(t, 8.951941027664526, charged.P, 1e-8)
}

func TestWaveNumber(t *testing.T) {
	want := 2.196807122623e-3 * 50.0 / 51.0 * math.Sqrt(10)
	assert.InEpsilon(t, want, penetrability.WaveNumber(50, 10), 1e-14)

	// The pair form reduces to the neutron form for the entrance channel.
	m := penetrability.Masses{A: 1, B: 50, Projectile: 1, Target: 50}
	assert.InEpsilon(t, want, penetrability.WaveNumberPair(m, 10), 1e-12)
}

func TestSommerfeld(t *testing.T) {
	m := penetrability.Masses{A: 1, B: 50, Projectile: 1, Target: 50}
	assert.Equal(t, 0.0, penetrability.Sommerfeld(0, 25, m, 1e6))

	p := penetrability.Masses{A: 1, B: 50, Projectile: 1, Target: 50}
	lo := penetrability.Sommerfeld(1, 25, p, 1e5)
	hi := penetrability.Sommerfeld(1, 25, p, 1e6)
	assert.Greater(t, lo, hi)
	assert.InEpsilon(t, math.Sqrt(10), lo/hi, 1e-12)
	assert.Equal(t, 0.0, penetrability.Sommerfeld(1, 25, p, 0))
}

func TestChannelRadius(t *testing.T) {
	assert.InEpsilon(t, 0.123*math.Cbrt(238)+0.08, penetrability.ChannelRadius(238), 1e-15)
	assert.InDelta(t, 0.203, penetrability.ChannelRadius(1), 1e-15)
}
