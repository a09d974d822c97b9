package resonance_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/resonances/channel"
	"github.com/katalvlaran/resonances/penetrability"
	"github.com/katalvlaran/resonances/resonance"
)

func ironKinematics() resonance.Kinematics {
	return resonance.Kinematics{
		MassRatio:  55.454,
		TargetMass: 55.9349,
		TargetSpin: 0,
		Radius:     resonance.ScatteringRadius{Constant: 0.54},
	}
}

func uraniumKinematics() resonance.Kinematics {
	return resonance.Kinematics{
		MassRatio:  233.0248,
		TargetMass: 235.0439,
		TargetSpin: 3.5,
		Radius:     resonance.ScatteringRadius{Constant: 0.96},
	}
}

func TestKinematics(t *testing.T) {
	k := ironKinematics()
	assert.InDelta(t, penetrability.WaveNumber(55.454, 100), k.WaveNumber(100), 1e-15)
	assert.InDelta(t, k.WaveNumber(100)*0.54, k.Rho(100, 0), 1e-15)
	assert.Equal(t, 1.0, k.GFactor(0.5))
	assert.Equal(t, 2.0, k.GFactor(-1.5))

	k.CalculateRadius = true
	assert.InDelta(t, penetrability.ChannelRadius(55.9349), k.ChannelRadius(0, 1), 1e-15)
	assert.InDelta(t, k.WaveNumber(100)*0.54, k.RhoHat(100, 0), 1e-15, "phase keeps the tabulated radius")
}

func TestSortLandJ(t *testing.T) {
	kin := ironKinematics()
	table := resonance.Table{
		{Energy: 27700, L: 0, J: 0.5, NeutronWidth: 1400, CaptureWidth: 1.2},
		{Energy: 1150, L: 0, J: 0.5, NeutronWidth: 0.05, CaptureWidth: 0.6},
		{Energy: -500, L: 2, J: 2.5, NeutronWidth: 3, CaptureWidth: 1},
	}
	sorted := resonance.SortLandJ(table, kin)

	require.Len(t, sorted.Ls, 3)
	assert.Empty(t, sorted.Ls[1].Js, "L=1 is present but empty")
	require.Len(t, sorted.Ls[0].Js, 1)
	seq := sorted.Ls[0].Js[0].Spins[0]
	assert.Equal(t, []float64{27700, 1150}, seq.Energies)
	assert.InDelta(t, 0.05/kin.Rho(1150, 0), seq.NeutronWidths[1], 1e-12)
	assert.Equal(t, []float64{0, 0}, seq.ShiftFactors)

	d := sorted.Ls[2].Js[0].Spins[0]
	p := penetrability.Penetrability(2, kin.Rho(500, 2))
	assert.InDelta(t, 3/p, d.NeutronWidths[0], 1e-9*3/p)
	assert.InDelta(t, 0.5*penetrability.Shift(2, kin.Rho(500, -1)), d.ShiftFactors[0], 1e-15)

	assert.InDelta(t, 0, sorted.MissingG[0], 1e-15)
	assert.InDelta(t, 3, sorted.MissingG[1], 1e-15)
	assert.InDelta(t, 2, sorted.MissingG[2], 1e-15, "J=1.5 of L=2 is absent")

	assert.Equal(t, []float64{27700, 1150, -500}, sorted.Energies)
	assert.InDelta(t, 1401.2, sorted.Widths[0], 1e-9)
}

func TestSortLandJ_TotalWidths(t *testing.T) {
	table := resonance.Table{
		{Energy: 10, L: 0, J: 0.5, TotalWidth: 5, NeutronWidth: 1, CaptureWidth: 1},
		{Energy: 20, L: 0, J: 0.5, NeutronWidth: 1, CaptureWidth: 1},
	}
	sorted := resonance.SortLandJ(table, ironKinematics())
	assert.Equal(t, []float64{5, 0}, sorted.Widths, "tabulated totals are kept as given")
	assert.Empty(t, resonance.SortLandJ(nil, ironKinematics()).Ls)
}

func TestByChannel_Schemes(t *testing.T) {
	kin := uraniumKinematics()
	// L=1, J=3 couples with s=3 and s=4.
	table := resonance.Table{
		{Energy: 1.14, L: 1, J: 3, NeutronWidth: 4e-6, CaptureWidth: 0.03, FissionWidthA: 0.1},
	}

	t.Run("NJOY", func(t *testing.T) {
		set, err := resonance.ByChannel(table, kin, 0, resonance.NJOY, false)
		require.NoError(t, err)
		el3 := channel.Channel{L: 1, J2: 6, S2: 6, Reaction: resonance.ReactionElastic, GFactor: kin.GFactor(3), Elastic: true, Class: channel.Neutron}
		el4 := el3
		el4.S2 = 8
		w, ok := set.All.Width(el3, 0)
		require.True(t, ok)
		assert.Equal(t, 4e-6, w)
		w, ok = set.All.Width(el4, 0)
		require.True(t, ok)
		assert.Zero(t, w)

		fis := el3
		fis.Reaction, fis.Elastic, fis.Class = resonance.ReactionFission, false, channel.Fission
		w, _ = set.All.Width(fis, 0)
		assert.Equal(t, 0.1, w)
		assert.Zero(t, set.Eliminated.Len())
	})

	t.Run("ENDF", func(t *testing.T) {
		set, err := resonance.ByChannel(table, kin, 0, resonance.ENDF, true)
		require.NoError(t, err)
		for _, c := range set.All.Channels() {
			if c.Reaction != resonance.ReactionCapture || c.L != 1 {
				continue
			}
			assert.True(t, c.Eliminated)
			w, _ := set.All.Width(c, 0)
			assert.InDelta(t, 0.015, w, 1e-15)
		}
		assert.Equal(t, 2, set.Eliminated.Len())
	})

	t.Run("ignore", func(t *testing.T) {
		set, err := resonance.ByChannel(table, kin, 0, resonance.Ignore, false)
		require.NoError(t, err)
		el := channel.Channel{L: 1, J2: 6, S2: channel.NoSpin, Reaction: resonance.ReactionElastic, GFactor: kin.GFactor(3), Elastic: true, Class: channel.Neutron}
		w, ok := set.Kept.Width(el, 0)
		require.True(t, ok)
		assert.Equal(t, 4e-6, w)

		// one spinless elastic channel per (l, J): J = 3, 4 for l=0 and
		// 2..5 for l=1, the tabulated (1, 3) included
		el.S2 = 6
		assert.False(t, set.Kept.Contains(el))
		elastic := set.Kept.Filter(func(c channel.Channel) bool { return c.Elastic })
		assert.Equal(t, 6, elastic.Len())
		for _, c := range elastic.Channels() {
			assert.Equal(t, channel.NoSpin, c.S2, "l=%d J2=%d", c.L, c.J2)
		}
	})
}

func TestByChannel_PotentialScatteringChannels(t *testing.T) {
	table := resonance.Table{{Energy: 1150, L: 0, J: 0.5, NeutronWidth: 0.05, CaptureWidth: 0.6}}
	set, err := resonance.ByChannel(table, ironKinematics(), 2, resonance.NJOY, true)
	require.NoError(t, err)
	assert.Equal(t, 2, set.LMax)

	elastic := set.Kept.Filter(func(c channel.Channel) bool { return c.Elastic })
	// s=1/2: l=0 → J=1/2; l=1 → 1/2, 3/2; l=2 → 3/2, 5/2.
	assert.Equal(t, 5, elastic.Len())
	assert.Equal(t, 1, set.Eliminated.Len())

	for _, c := range elastic.Channels()[1:] {
		assert.Equal(t, []int{0}, elastic.Resonances(c))
		w, _ := elastic.Width(c, 0)
		assert.Zero(t, w)
	}
}

func TestByChannel_InvalidCoupling(t *testing.T) {
	table := resonance.Table{{Energy: 10, L: 0, J: 1.5, NeutronWidth: 1}}
	_, err := resonance.ByChannel(table, ironKinematics(), 0, resonance.NJOY, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, resonance.ErrInvalidCoupling))

	var ce *resonance.CouplingError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1.5, ce.J)
	assert.Contains(t, ce.Error(), "L = 0")

	_, err = resonance.ByChannelLevels(table, ironKinematics(), resonance.NJOY)
	assert.ErrorIs(t, err, resonance.ErrInvalidCoupling)
}

func TestByChannelLevels(t *testing.T) {
	table := resonance.Table{
		{Energy: 10, L: 0, J: 0.5, NeutronWidth: 1, CaptureWidth: 0.1},
		{Energy: 20, L: 1, J: 1.5, NeutronWidth: 2, CaptureWidth: 0.2, FissionWidthB: 0.3},
	}
	levels, err := resonance.ByChannelLevels(table, ironKinematics(), resonance.NJOY)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, 2, levels[0].Len())
	assert.Equal(t, 3, levels[1].Len())
	for _, c := range levels[1].Channels() {
		assert.Equal(t, 1, c.Index)
		assert.Equal(t, []int{1}, levels[1].Resonances(c))
	}
}

func TestByChannelRML(t *testing.T) {
	ev, err := resonance.LoadEvaluation("testdata/rml.yaml")
	require.NoError(t, err)
	r := &ev.Resolved[0]

	set, err := resonance.ByChannelRML(ev, r, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []float64{1150, 1150, 27700, 9e5}, set.Energies)
	assert.Equal(t, [][]int{{0, 2}, {1, 3}}, set.GroupIndices)
	assert.InDelta(t, 30.7+12, set.Widths[3], 1e-12)

	require.Len(t, set.Thresholds, 1)
	xi := 846778.0 * (ev.MassRatio() + 1) / ev.MassRatio()
	assert.InDelta(t, xi, set.Thresholds[0], 1e-6)

	assert.Equal(t, 2, set.Eliminated.Len())
	assert.Equal(t, 3, set.Kept.Len())
	assert.Equal(t, 1, set.LMax)

	for _, c := range set.Kept.Channels() {
		info, ok := set.Info[c.Key()]
		require.True(t, ok)
		assert.Equal(t, channel.Neutron, c.Class)
		if c.Reaction == "n + Fe56_e1" {
			assert.False(t, c.Elastic)
			assert.InDelta(t, xi, c.Xi, 1e-6)
			require.NotNil(t, info.Override)
			assert.Equal(t, 0.6, info.EffectiveRadius(r))
			assert.Equal(t, 0.54, info.TrueRadius(r, ev.Target.Mass))
			continue
		}
		assert.True(t, c.Elastic)
		assert.Nil(t, info.Override)
	}
	for _, c := range set.Eliminated.Channels() {
		assert.Equal(t, channel.Gamma, c.Class)
	}
}

func TestByChannelRML_ClosedChannels(t *testing.T) {
	ev, err := resonance.LoadEvaluation("testdata/rml.yaml")
	require.NoError(t, err)
	r := &ev.Resolved[0]

	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	set, err := resonance.ByChannelRML(ev, r, []float64{1, 1e3, 1e5}, log)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Kept.Len())
	assert.Zero(t, logs.Len(), "grid is entirely below threshold")

	set, err = resonance.ByChannelRML(ev, r, []float64{1e5, 1.5e6}, log)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Kept.Len())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "energy grid straddles a channel threshold", logs.All()[0].Message)

	set, err = resonance.ByChannelRML(ev, r, []float64{1e6, 1.5e6}, log)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Kept.Len())
	assert.False(t, math.IsNaN(set.Widths[0]))
}
