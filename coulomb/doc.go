// Package coulomb evaluates Coulomb wave functions for a single partial wave
// and derives the R-matrix penetrability, shift and hard-sphere phase of a
// charged-particle channel from them.
//
// The method is Steed's: a real continued fraction (CF1) gives F′/F, a
// complex one (CF2) gives (G′+iF′)/(G+iF), and the Wronskian F′G − FG′ = 1
// fixes the normalisation. Only the ratios enter P, S and φ:
//
//	P = ρ·q      S = ρ·p      φ = arctan(q / (f − p))
//
// with f = F′/F and p + iq the CF2 value. The phase is returned on the
// principal branch, so it agrees with the neutral closed forms modulo π.
//
// Convergence of CF2 slows near and below the classical turning point
// ρ_tp = η + √(η² + L(L+1)). Evaluate gives up after MaxIterations and
// reports ErrNotConverged; callers treat that as fatal for the channel.
package coulomb
