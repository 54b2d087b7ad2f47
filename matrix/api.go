// SPDX-License-Identifier: MIT
// Package matrix — public API facades and spectral compositions.
//
// Purpose:
//   - Provide thin entry points for common tasks across the package.
//   - Host the compositions the spectral layers reuse (upper-triangle mirroring,
//     eigen-basis reconstruction V·diag(w)·Vᵀ, tolerance comparison).
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

import (
	"fmt"
	"math"
)

const (
	opMirrorUpper = "MirrorUpper"
	opEigenBasis  = "FromEigenBasis"
	opAllClose    = "AllClose"
	opFrobenius   = "FrobeniusNorm"
)

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// MirrorUpper returns a symmetric copy of m built from its upper triangle
// (A[j,i] := A[i,j] for i<j). The strictly-lower triangle of m is ignored, the
// same convention LAPACK uses with uplo='U'.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, ErrNonSquare.
//
// Complexity:
//   - Time O(n^2), Space O(n^2).
func MirrorUpper(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opMirrorUpper, err)
	}
	src, err := ToDense(m)
	if err != nil {
		return nil, matrixErrorf(opMirrorUpper, err)
	}
	out := src.Clone().(*Dense)
	n := out.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			out.data[j*n+i] = out.data[i*n+j]
		}
	}

	return out, nil
}

// FromEigenBasis forms V·diag(w)·Vᵀ for an n×n basis V (columns) and weights w.
//
// Implementation:
//   - Stage 1: validate V square and len(w) == n.
//   - Stage 2: out[i,j] = Σ_k V[i,k]·w[k]·V[j,k] (upper triangle, then mirrored).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - With w = eigenvalues this reconstructs the decomposed matrix; with
//     w = probabilities it materializes a density matrix.
func FromEigenBasis(v Matrix, w []float64) (*Dense, error) {
	if err := ValidateSquare(v); err != nil {
		return nil, matrixErrorf(opEigenBasis, err)
	}
	n := v.Rows()
	if len(w) != n {
		return nil, matrixErrorf(opEigenBasis, fmt.Errorf("len(w)=%d, n=%d: %w", len(w), n, ErrDimensionMismatch))
	}
	dv, err := ToDense(v)
	if err != nil {
		return nil, matrixErrorf(opEigenBasis, err)
	}
	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opEigenBasis, err)
	}
	var (
		i, j, k    int
		sum        float64
		rowI, rowJ int
	)
	for i = 0; i < n; i++ {
		rowI = i * n
		for j = i; j < n; j++ {
			rowJ = j * n
			sum = ZeroSum
			for k = 0; k < n; k++ {
				sum += dv.data[rowI+k] * w[k] * dv.data[rowJ+k]
			}
			out.data[rowI+j] = sum
			out.data[rowJ+i] = sum
		}
	}

	return out, nil
}

// FrobeniusNorm returns sqrt(Σ m[i,j]²).
// Complexity: O(r*c).
func FrobeniusNorm(m Matrix) (float64, error) {
	d, err := ToDense(m)
	if err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	var sum float64
	for _, v := range d.data {
		sum += v * v
	}

	return math.Sqrt(sum), nil
}

// AllClose reports whether |a−b| ≤ atol + rtol·|b| element-wise.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(1) for *Dense operands.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := ToDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := ToDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for k := range da.data {
		if math.Abs(da.data[k]-db.data[k]) > atol+rtol*math.Abs(db.data[k]) {
			return false, nil
		}
	}

	return true, nil
}
