// SPDX-License-Identifier: MIT

// Package unresolved estimates average cross sections in the unresolved
// resonance region.
//
// The region tabulates, per (L, J) sequence, an average level spacing D and
// average partial widths, either constant or on an energy grid. The widths
// are χ²-distributed with the sequence's degrees of freedom; the average
// cross sections are the Hauser-Feshbach-like sums
//
//	σ_x = π/k² Σ 2πg Γn/D · R_x Γ_x
//
// with R_x the fluctuation integrals of FluctuationIntegrals (the GNRL3
// quadrature tables used by RECENT). Elastic adds the hard-sphere term with
// the same missing-g correction the resolved formalisms apply.
//
// Region.EnergyGrid unions the tabulated energies and fills decades wider
// than a factor of 3; filling switches to interpolating widths, which is
// also what Options.InterpolateWidths asks for.
package unresolved
