package penetrability

import "math"

// WaveNumber returns k(E) in b^-1/2 for a neutron incident on a target whose
// mass is massRatio times the neutron's:
//
//	k = 2.196807122623e-3 · massRatio/(massRatio+1) · √E
func WaveNumber(massRatio, energy float64) float64 {
	return NeutronWaveConstant * massRatio / (massRatio + 1) * math.Sqrt(energy)
}

// Masses describes a two-body channel. All masses are in the same unit
// (amu in practice).
type Masses struct {
	// A and B are the masses of the two outgoing particles.
	A, B float64
	// Projectile and Target are the masses of the entrance pair.
	Projectile, Target float64
}

// WaveNumberPair returns k for an arbitrary two-body channel at energy
// ex above its threshold (lab frame). With A = projectile and B = target it
// reduces to WaveNumber.
func WaveNumberPair(m Masses, ex float64) float64 {
	red := m.A * m.B / (m.A + m.B) / m.Projectile * m.Target / (m.Target + m.Projectile)

	return NeutronWaveConstant * math.Sqrt(red) * math.Sqrt(ex)
}

// Sommerfeld returns the Sommerfeld parameter η for particles with charges
// zA, zB at energy ex above threshold. It is 0 when either charge is 0 or
// the wave number vanishes.
func Sommerfeld(zA, zB int, m Masses, ex float64) float64 {
	if zA*zB == 0 {
		return 0
	}
	k := WaveNumberPair(m, ex)
	if k == 0 {
		return 0
	}

	return CoulombConstant * float64(zA*zB) * (m.A / m.Projectile) * (m.B / (m.A + m.B)) / k
}

// ChannelRadius is the ENDF default radius 0.123·A^(1/3) + 0.08 in 10 fm
// for a target of mass A (amu).
func ChannelRadius(targetMass float64) float64 {
	return 0.123*math.Cbrt(targetMass) + 0.08
}
