// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric buffer and the validation gates
// used by the spectral divergence pipeline.
//
// The matrix package provides:
//
//   - Dense: an owned, fixed-dimension, row-major float64 buffer with explicit
//     row/column fields and bounds-checked At/Set.
//   - Validators (IsSquare, ValidateSquare, ValidateSquarePair,
//     ValidateSymmetric, ValidateFinite) so squareness and dimension equality
//     are checked in exactly one place.
//   - Kernels: Mul, Transpose, Trace, FromEigenBasis and the Jacobi
//     symmetric eigen-decomposition (Eigen).
//
// All errors are package sentinels (errors.go) wrapped with an operation tag;
// match them with errors.Is.
package matrix
