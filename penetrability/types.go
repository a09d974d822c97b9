package penetrability

import "errors"

// ErrNegativeL is returned when a partial wave with L < 0 is requested.
var ErrNegativeL = errors.New("penetrability: negative orbital angular momentum")

// Physical constants in the units used throughout the module: energies in eV,
// lengths in 10 fm (√barn), wave numbers in b^-1/2.
const (
	// NeutronWaveConstant is √(2m_n)/ħ in (eV·b)^-1/2.
	NeutronWaveConstant = 2.196807122623e-3

	// CoulombConstant is e²/ħ² in the units where η = C·Z_A·Z_B·μ/k.
	CoulombConstant = 3.4746085579272e-1

	// ThermalEnergy is the 2200 m/s reference energy in eV.
	ThermalEnergy = 0.0253
)

// Factors groups the penetrability, shift and phase of one partial wave.
type Factors struct {
	P   float64
	S   float64
	Phi float64
}
