package resonance

import (
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/resonances/penetrability"
	"github.com/katalvlaran/resonances/xs"
)

// ScatteringRadius is a channel radius in 10 fm (b^-1/2). It is either a
// constant, a constant with per-L overrides, or a table against energy.
//
// In YAML a bare number is a constant:
//
//	scatteringRadius: 0.62
//	scatteringRadius: {constant: 0.62, byL: {1: 0.70}}
//	scatteringRadius: {energies: [1, 1e4], values: [0.6, 0.65]}
type ScatteringRadius struct {
	Constant      float64          `yaml:"constant,omitempty"`
	ByL           map[int]float64  `yaml:"byL,omitempty"`
	Energies      []float64        `yaml:"energies,flow,omitempty"`
	Values        []float64        `yaml:"values,flow,omitempty"`
	Interpolation xs.Interpolation `yaml:"interpolation,omitempty"`
}

// UnmarshalYAML accepts a scalar or a mapping.
func (r *ScatteringRadius) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var c float64
		if err := value.Decode(&c); err != nil {
			return err
		}
		*r = ScatteringRadius{Constant: c}

		return nil
	}
	type plain ScatteringRadius
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if len(p.Energies) != len(p.Values) {
		return fmt.Errorf("scatteringRadius: %w", xs.ErrLengthMismatch)
	}
	*r = ScatteringRadius(p)

	return nil
}

// EnergyDependent reports whether the radius is tabulated against energy.
func (r ScatteringRadius) EnergyDependent() bool { return len(r.Energies) > 0 }

// Value returns the radius for partial wave l at energy e. Tables are
// clamped to their end values outside their domain.
func (r ScatteringRadius) Value(l int, e float64) float64 {
	if r.EnergyDependent() {
		return r.tabulated(e)
	}
	if v, ok := r.ByL[l]; ok {
		return v
	}

	return r.Constant
}

func (r ScatteringRadius) tabulated(e float64) float64 {
	n := len(r.Energies)
	if e <= r.Energies[0] {
		return r.Values[0]
	}
	if e >= r.Energies[n-1] {
		return r.Values[n-1]
	}
	i := sort.SearchFloat64s(r.Energies, e)
	if r.Energies[i] == e {
		return r.Values[i]
	}
	v, err := xs.Interpolate(r.Interpolation, r.Energies[i-1], r.Values[i-1], r.Energies[i], r.Values[i], e)
	if err != nil {
		// lin-lin cannot fail
		v, _ = xs.Interpolate(xs.LinLin, r.Energies[i-1], r.Values[i-1], r.Energies[i], r.Values[i], e)
	}

	return v
}

// Kinematics bundles what is needed to turn an energy into ρ = k·a.
type Kinematics struct {
	// MassRatio is target mass over projectile mass.
	MassRatio float64
	// TargetMass in amu, used by the calculated radius.
	TargetMass float64
	// TargetSpin is I.
	TargetSpin float64
	Radius     ScatteringRadius
	// CalculateRadius selects 0.123·A^(1/3) + 0.08 over Radius.
	CalculateRadius bool
}

// NewKinematics builds the kinematics of a resolved region.
func NewKinematics(ev *Evaluation, r *ResolvedRegion) Kinematics {
	return Kinematics{
		MassRatio:       ev.MassRatio(),
		TargetMass:      ev.Target.Mass,
		TargetSpin:      ev.Target.Spin,
		Radius:          r.ScatteringRadius,
		CalculateRadius: r.CalculateChannelRadius,
	}
}

// WaveNumber returns k(E) in b^-1/2.
func (k Kinematics) WaveNumber(e float64) float64 {
	return penetrability.WaveNumber(k.MassRatio, e)
}

// ChannelRadius returns the radius used in penetrabilities. A negative l
// asks for the L-independent default.
func (k Kinematics) ChannelRadius(l int, e float64) float64 {
	if k.CalculateRadius {
		return penetrability.ChannelRadius(k.TargetMass)
	}
	if l < 0 {
		if k.Radius.EnergyDependent() {
			return k.Radius.tabulated(e)
		}

		return k.Radius.Constant
	}

	return k.Radius.Value(l, e)
}

// Rho returns k(E)·a with the L-dependent radius when l >= 0.
func (k Kinematics) Rho(e float64, l int) float64 {
	return k.WaveNumber(e) * k.ChannelRadius(l, e)
}

// RhoHat returns k(E)·a with the tabulated scattering radius, which sets
// the hard-sphere phase even when penetrabilities use the calculated radius.
func (k Kinematics) RhoHat(e float64, l int) float64 {
	return k.WaveNumber(e) * k.Radius.Value(l, e)
}

// GFactor returns (2|J|+1)/(2(2I+1)) for a spin-1/2 projectile.
func (k Kinematics) GFactor(j float64) float64 {
	return (2*math.Abs(j) + 1) / (2 * (2*k.TargetSpin + 1))
}
