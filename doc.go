// Package resonances reconstructs pointwise neutron cross sections from
// evaluated resonance parameters, the way processing codes turn an
// evaluation into data a transport code can sample.
//
// 🚀 What is in the box?
//
//   - Resolved regions: SLBW, MLBW, Reich-Moore and general R-matrix (RML)
//   - Unresolved region: Hauser-Feshbach averages with width fluctuations
//   - Adaptive energy grids refined to a lin-lin tolerance
//   - Legendre moments of the angular distributions
//   - Resonance analysis: average widths, strength functions, Porter-Thomas
//
// Everything is organized in small packages, bottom-up:
//
//	spin/          — angular momentum coupling, Clebsch-Gordan, Racah, Blatt-Biedenharn Z
//	coulomb/       — Coulomb wave functions (Steed continued fractions)
//	penetrability/ — penetrability, shift and phase factors, kinematics
//	channel/       — channel descriptors and the channel→resonance width map
//	cmatrix/       — dense complex matrices: LU and inverse
//	xs/            — pointwise tables, interpolation laws, cross section sets
//	resonance/     — evaluation file model and channel construction
//	grid/          — initial resonance grids and tolerance refinement
//	formalism/     — the resolved formalisms and their analysis helpers
//	unresolved/    — the unresolved resonance region
//	parallel/      — block evaluation of long energy grids
//	reconstruct/   — the driver: all regions, refined and stitched
//	config/        — YAML settings of the command
//	cmd/resonances — the command line front end
//
// Quick start:
//
//	ev, _ := resonance.LoadEvaluation("fe56.yaml")
//	sigma, _ := reconstruct.CrossSections(ctx, ev, reconstruct.DefaultOptions())
//	total, _ := sigma["total"].At(1150)
//
// or from the shell:
//
//	resonances reconstruct fe56.yaml -o out/
package resonances
