// SPDX-License-Identifier: MIT

// Package grid builds and refines the incident-energy grids on which
// resonance cross sections are reconstructed.
//
// Generate seeds a grid for one resolved region:
//   - a coarse logarithmic mesh of about ten points per decade;
//   - a dense relative template around every positive-energy resonance,
//     scaled by the resonance's total width and clipped halfway to its
//     neighbours;
//   - the region bounds and the thermal point 0.0253 eV;
//   - every reaction threshold with a tight cluster just above it.
//
// Refine then bisects wherever linear interpolation from the neighbours
// misses a point by more than the relative tolerance, evaluating the
// cross sections only at the new energies:
//
//	egrid, err := grid.Generate(energies, widths, lo, hi, thresholds)
//	set, err := eval(ctx, egrid)
//	egrid, set, msgs, err := grid.Refine(ctx, egrid, set, 0.01, eval, grid.DefaultRefineOptions())
//
// Refinement is bounded by RefineOptions.MaxIterations. Hitting the cap is
// reported through the returned messages and a warning, and becomes an
// error only with RefineOptions.FailOnLimit.
package grid
