// Package spin implements the angular-momentum bookkeeping used when
// resonance parameters are organized into reaction channels and when
// angular distributions are expanded in Legendre series.
//
// All quantum numbers that may be half-integral are carried internally as
// doubled integers ("twice" values): a spin of 3/2 is stored as 3, an
// orbital momentum of 2 as 4. This keeps triangle checks and range loops
// exact, without any floating-point comparisons.
//
// What is here:
//
//	AllowedTotalSpins     — J values reachable by coupling L and S (doubled)
//	AllowedTotalSpinsHalf — the same values as float64 spins
//	ClebschGordan         — ⟨j1 m1 j2 m2 | J M⟩
//	SixJ, Racah           — Wigner 6-j symbol and Racah W coefficient
//	ZBar                  — Blatt-Biedenharn Z̄ coefficient
//
// Factorials are evaluated through log-gamma, so coefficients stay finite
// for the angular momenta that appear in evaluated nuclear data (l ≤ 10).
package spin
