// Package xs holds reconstructed cross sections and angular distributions.
//
// A Set maps reaction names to value arrays aligned with one energy grid.
// Once the grid is final a Set is wrapped into Pointwise data (energies plus
// values plus an interpolation law); evaluations with several resonance
// regions produce Regions, one Pointwise per region.
//
// Interpolation laws follow the "x-y" naming: LinLog is linear in energy and
// logarithmic in the value.
package xs
