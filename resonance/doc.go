// Package resonance holds evaluated resonance parameters and organises them
// for the reconstruction formalisms.
//
// # Data model
//
// An Evaluation is read from YAML (ParseEvaluation, LoadEvaluation). It names
// the projectile and target, lists any further particles used by R-matrix
// particle pairs, and carries one or more resolved regions plus an optional
// unresolved region. Resolved regions use one of four formalisms:
//
//	SLBW           single-level Breit-Wigner, one table row per resonance
//	MLBW           multi-level Breit-Wigner, same table layout
//	ReichMoore     Reich-Moore, same table layout
//	RMatrixLimited spin groups whose columns are particle-pair channels
//
// # Organisation
//
// SortLandJ groups table rows into the tree L → J → channel spin that the
// Breit-Wigner and Reich-Moore cross sections iterate, and records for every
// L the statistical weight that no tabulated sequence accounts for.
//
// ByChannel builds the channel → {resonance → width} map used by the
// scattering-matrix path. When a (L, J) pair admits more than one channel
// spin the Scheme decides where the single tabulated width goes. Zero-width
// elastic "filler" channels are added for every (l, s, J) up to lMax so that
// potential scattering sums over all partial waves.
//
// ByChannelRML does the same for R-Matrix Limited spin groups, dropping
// channels that are closed somewhere on the requested energy grid.
package resonance
