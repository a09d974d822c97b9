// SPDX-License-Identifier: MIT

// Package formalism reconstructs resolved-region cross sections.
//
// New picks the formalism named by a resolved region:
//
//	SLBW            single-level Breit-Wigner, closed forms per level
//	MLBW            multi-level Breit-Wigner, RECENT's elastic expression
//	ReichMoore      capture eliminated, one level matrix per (L, J, s)
//	RMatrixLimited  spin groups of particle-pair channels, thresholds and
//	                charged-particle (Coulomb) channels
//
// Every Reconstructor evaluates pointwise: CrossSection returns the total,
// elastic, capture, fission and nonelastic arrays on the given energies,
// plus one array per competitive particle pair for R-Matrix Limited.
//
// # Scattering matrix
//
// MLBW, ReichMoore and RMatrixLimited also expose the collision matrix U
// and T = I − U over their channel view (resonance.ByChannel,
// resonance.ByChannelRML). The general R-matrix path follows Froehner:
//
//	L⁰ = diag(L_c − B_c),    X = P^½ (I − R L⁰)⁻¹ R P^½,
//	W = I + 2iX,             U_cc' = Ω_c W_cc' Ω_c'.
//
// AngularDistribution turns T into Legendre moments of dσ/dΩ with the
// Blatt-Biedenharn formula. SLBW cannot provide one.
//
// # Analysis
//
// AverageQuantities, TransmissionCoefficients, PoleStrength,
// StrengthFunction, ScatteringLength, PorterThomas and BackgroundRMatrix
// derive average parameters from the resolved table, the input an
// unresolved-region evaluation would need.
package formalism
