// SPDX-License-Identifier: MIT

// Package cmatrix provides the small dense complex matrices that R-matrix
// theory is written in: the level matrices of Reich-Moore, the L⁰, R, X, W,
// U and T matrices of the general R-matrix path, and their inverses.
//
// What is here:
//
//	Dense        — row-major complex128 storage with bounds-checked At/Set
//	Identity     — n×n identity
//	Add/Sub/Mul  — fresh-result kernels with strict shape validation
//	Scale        — α·A
//	Inverse      — closed forms for n ≤ 3, partial-pivot LU above
//	LU           — Doolittle with row pivoting, P·A = L·U
//
// Channel counts in evaluated resonance data are small (a few to a few dozen),
// so every kernel favours clear deterministic loops over blocking.
//
// Errors are package sentinels (ErrBadShape, ErrDimensionMismatch,
// ErrSingular, ...) wrapped with the operation name via %w, so callers match
// them with errors.Is.
package cmatrix
