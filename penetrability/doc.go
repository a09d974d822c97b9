// Package penetrability computes the barrier penetration factor P_L, the
// level-shift factor S_L and the hard-sphere phase φ_L of a partial wave at
// dimensionless radius ρ = k·a, together with the kinematic helpers that
// produce ρ from an incident energy.
//
// For L ≤ 4 the three factors have rational closed forms. Above that they
// follow from the mutual recursion
//
//	P_L = ρ²P_{L−1} / ((L−S_{L−1})² + P²_{L−1})
//	S_L = ρ²(L−S_{L−1}) / ((L−S_{L−1})² + P²_{L−1}) − L
//	φ_L = φ_{L−1} − arctan(P_{L−1}/(L−S_{L−1}))
//
// Table evaluates the recursion bottom-up so that every order is computed
// once. Recursive evaluates it from L = 0 without any closed form and exists
// to cross-check the two paths.
//
// Charged-particle channels go through CoulombFactors, which delegates to
// package coulomb and falls back to the neutral forms when η = 0.
package penetrability
