// SPDX-License-Identifier: MIT

// Package divergence computes the quantum Kullback–Leibler divergence
// (relative entropy) between the spectral density matrices of two graph
// Laplacians:
//
//	D(ρ1‖ρ2) = Tr ρ1·(log ρ1 − log ρ2),  ρk = exp(−β·Lk) / Tr exp(−β·Lk).
//
// Both densities are held in their eigenbases, so the trace reduces to
//
//	D = Σᵢ pᵢ·log pᵢ − Σᵢ pᵢ·Σⱼ (U1ᵀU2)ᵢⱼ²·log qⱼ
//
// with no matrix logarithm. Terms with pᵢ ≤ ε (WithEpsilon) are dropped.
//
// Two engines implement Engine:
//
//   - CPU runs the Jacobi solver on the calling goroutine.
//   - Accelerated runs LAPACK/BLAS kernels on a shared, slot-limited worker
//     pool (the "device"). It is compiled out with -tags noaccel, in which
//     case AcceleratedAvailable reports false and its constructor returns
//     ErrBackendUnavailable.
//
// New selects an engine by Backend; KLDivergence and KLDivergenceAccelerated
// are one-shot helpers with default settings.
//
// Errors match exactly one of ErrShape, ErrNumericDegeneracy,
// ErrBackendUnavailable or ErrConvergence; KindOf classifies them.
package divergence
