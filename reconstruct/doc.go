// Package reconstruct drives the resonance formalisms over a whole
// evaluation.
//
// CrossSections reconstructs every resolved region on its own grid,
// refines the grid to the requested lin-lin tolerance, and appends the
// unresolved region's average cross sections unless that region is
// flagged self-shielding only. One region yields xs.Pointwise data per
// reaction; several yield xs.Regions.
//
// AngularDistributions handles a single resolved region. Its grid is split
// at the channel thresholds that land on it, every piece is evaluated on
// its own and the Legendre tables are joined back together.
//
// Long grids are evaluated in blocks through parallel.Map.
package reconstruct
