// SPDX-License-Identifier: MIT
// Package matrix provides the small set of dense kernels the spectral pipeline
// is built on: matrix product, transpose, trace, and the Jacobi symmetric
// eigen-decomposition. All functions perform strict fail-fast validation and
// return wrapped sentinels on dimension mismatches.
//
// Notes:
//   - Kernels copy the operand into a *Dense once and then run flat-slice loops.
//   - All kernels use the central validators and wrap errors via matrixErrorf.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opTrace     = "Trace"
	opEigen     = "Eigen"
	opToDense   = "ToDense"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
//   - Keep `tag` to the canonical constants to simplify log/search pipelines.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ToDense returns m itself when it is already *Dense, otherwise a *Dense copy
// read through the Matrix interface.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, wrapped At/Set errors.
//
// Complexity:
//   - Time O(1) for *Dense, O(r*c) otherwise.
//
// AI-Hints:
//   - Kernels that mutate must Clone the result; ToDense does not copy *Dense.
func ToDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToDense, err)
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(opToDense, err)
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opToDense, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Mul computes the matrix product a×b into a new *Dense.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible; materialize both operands as *Dense.
//   - Stage 2: i→k→j loop over flat buffers (cache-friendly on row-major storage).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop order i→k→j.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c). Skipping zero A[i,k] avoids useless multiplies.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := ToDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := ToDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new *Dense with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
//
// Errors:
//   - ErrNilMatrix, allocation errors.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	d, err := ToDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[i*d.c+j]
		}
	}

	return res, nil
}

// Trace returns Σ_i m[i,i] of a square matrix.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, ErrNonSquare.
//
// Complexity:
//   - Time O(n), Space O(1).
func Trace(m Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	var (
		sum = ZeroSum
		v   float64
		i   int
	)
	for i = 0; i < m.Rows(); i++ {
		v, _ = m.At(i, i) // in range after ValidateSquare
		sum += v
	}

	return sum, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via cyclic
// Jacobi sweeps.
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Each sweep visits every (p,q), p<q, in row order and rotates
//     A[p,q] to zero unless it is negligible (see offNegligible); rotations are
//     accumulated into Q.
//   - Stage 3: Stop after a sweep without rotations; otherwise re-check every pair
//     once maxSweeps is spent and fail if any is still significant.
//
// Inputs:
//   - m: symmetric Matrix (within tol); n := m.Rows().
//   - tol: relative threshold; A[p,q] is kept when |A[p,q]| ≤ tol·√|A[p,p]·A[q,q]|.
//   - floor: absolute threshold below which any off-diagonal is dropped (≥ 0).
//   - maxSweeps: cap on the number of sweeps.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix), unsorted.
//   - *Dense: Q whose columns are orthonormal eigenvectors, m ≈ Q·diag(λ)·Qᵀ.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry (not symmetric within tol),
//     ErrMatrixEigenFailed (a significant off-diagonal remains after maxSweeps).
//
// Determinism:
//   - Fixed row-cyclic pivot order and fixed update order produce stable results.
//
// Complexity:
//   - Time O(n³) per sweep, O(maxSweeps·n³) worst case; Space O(n²).
//
// Notes:
//   - tol is applied per pair, so the small eigenvalues of a graded matrix get the
//     same relative accuracy as the large ones.
func Eigen(m Matrix, tol, floor float64, maxSweeps int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := ToDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.Clone().(*Dense) // working copy; the input is never mutated
	q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	var (
		sweep              int
		rotated, converged bool
		p, r               int     // current pivot indices (p < r)
		app, arr, apr      float64 // A[p,p], A[r,r], A[p,r]
		aip, air, qip, qir float64
		newIP, newIR       float64
		theta, t, c, s     float64
	)
	for sweep = 0; sweep < maxSweeps; sweep++ {
		rotated = false
		for p = 0; p < n-1; p++ {
			for r = p + 1; r < n; r++ {
				app = a.data[p*n+p]
				arr = a.data[r*n+r]
				apr = a.data[p*n+r]
				if offNegligible(apr, app, arr, tol, floor) {
					continue
				}
				rotated = true

				// J.1: θ = (arr−app)/(2·apr), t = sign(θ)/(|θ|+√(θ²+1)).
				theta = (arr - app) / (2 * apr)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				// J.2: A ← JᵀAJ on rows/cols p and r.
				for i = 0; i < n; i++ {
					if i == p || i == r {
						continue
					}
					aip = a.data[i*n+p]
					air = a.data[i*n+r]
					newIP = c*aip - s*air
					newIR = s*aip + c*air
					a.data[i*n+p], a.data[p*n+i] = newIP, newIP
					a.data[i*n+r], a.data[r*n+i] = newIR, newIR
				}
				a.data[p*n+p] = app - t*apr
				a.data[r*n+r] = arr + t*apr
				a.data[p*n+r], a.data[r*n+p] = 0, 0

				// J.3: Q ← QJ.
				for i = 0; i < n; i++ {
					qip = q.data[i*n+p]
					qir = q.data[i*n+r]
					q.data[i*n+p] = c*qip - s*qir
					q.data[i*n+r] = s*qip + c*qir
				}
			}
		}
		if !rotated {
			converged = true
			break
		}
	}

	// Budget spent: the last sweep may still have finished the job.
	if !converged {
		converged = true
		for i = 0; i < n-1 && converged; i++ {
			for j = i + 1; j < n; j++ {
				if !offNegligible(a.data[i*n+j], a.data[i*n+i], a.data[j*n+j], tol, floor) {
					converged = false
					p, r = i, j
					break
				}
			}
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen, fmt.Errorf("off-diagonal A[%d,%d]=%.3g still significant after %d sweeps: %w",
			p, r, a.data[p*n+r], maxSweeps, ErrMatrixEigenFailed))
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}

// offNegligible reports whether apq can be left in place: it is below the
// absolute floor, below tol relative to the geometric mean of its diagonals,
// or too small to change either diagonal in floating point.
func offNegligible(apq, app, aqq, tol, floor float64) bool {
	g := math.Abs(apq)
	if g <= floor {
		return true
	}
	dp, dq := math.Abs(app), math.Abs(aqq)
	if g <= tol*math.Sqrt(dp)*math.Sqrt(dq) {
		return true
	}

	return dp+g == dp && dq+g == dq
}
