// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for shape/nil/symmetry/finiteness checks.
//  - Keep kernels and the divergence engines minimal by delegating precondition gates here.
//  - Return sentinel errors wrapped with a validator tag so call sites can match via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.
//
// AI-Hints:
//  - IsSquare is the boolean gate; ValidateSquare is the error-returning gate.
//  - Use ValidateSquarePair before any pairwise spectral comparison to fail fast
//    on non-square or unequal-order inputs.
//  - Use ValidateFinite on caller-supplied matrices that did not pass through NewDenseFrom.

package matrix

import (
	"fmt"
	"math"
)

// zeroTol is the lower bound tolerances are normalized against.
const zeroTol = 0.0

// validatorErrorf wraps an underlying error with the given validator tag.
// Used internally to maintain consistent labeling of sentinel violations.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// IsSquare reports whether m is a usable square matrix: non-nil, Rows == Cols, Rows ≥ 1.
//
// Complexity: O(1). No side effects.
// AI-Hints: Boolean gate for quick checks; use ValidateSquare when the reason matters.
func IsSquare(m Matrix) bool {
	if m == nil {
		return false
	}

	return m.Rows() >= 1 && m.Rows() == m.Cols()
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil, non-empty and square (Rows == Cols ≥ 1).
//
// Errors: ErrNilMatrix if nil, ErrInvalidDimensions if empty, ErrNonSquare if Rows != Cols.
// Complexity: O(1).
// AI-Hints: Use before spectral or factorization methods.
func ValidateSquare(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.Rows() < 1 || m.Cols() < 1 {
		return validatorErrorf("ValidateSquare", ErrInvalidDimensions)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%dx%d: %w", m.Rows(), m.Cols(), ErrNonSquare))
	}

	return nil
}

// ValidateSameShape – Ensures matrices a and b have equal dimensions.
//
// Implementation: Assumes a and b are not nil (caller must ensure).
// Return: nil or wrapped ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquarePair – Composite: Square(a) → Square(b) → SameShape.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions, ErrNonSquare, ErrDimensionMismatch.
// Complexity: O(1).
// AI-Hints: The single shape gate for pairwise spectral comparisons.
func ValidateSquarePair(a, b Matrix) error {
	if err := ValidateSquare(a); err != nil {
		return validatorErrorf("ValidateSquarePair: first", err)
	}
	if err := ValidateSquare(b); err != nil {
		return validatorErrorf("ValidateSquarePair: second", err)
	}
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSquarePair", fmt.Errorf("%d vs %d: %w", a.Rows(), b.Rows(), ErrDimensionMismatch))
	}

	return nil
}

// ValidateMulCompatible – Ensures a.Cols == b.Rows, inputs non-nil.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite scans m for NaN/±Inf entries.
//
// Errors: ErrNilMatrix, ErrNaNInf (first offending cell reported).
// Complexity: O(r*c); *Dense uses the flat buffer.
func ValidateFinite(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateFinite", ErrNilMatrix)
	}
	var (
		i, j int
		v    float64
	)
	if d, ok := m.(*Dense); ok {
		for i = 0; i < len(d.data); i++ {
			v = d.data[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("(%d,%d): %w", i/d.c, i%d.c, ErrNaNInf))
			}
		}

		return nil
	}
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j) // indices are in range by construction
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
		}
	}

	return nil
}

// ValidateSymmetric checks A is symmetric within tolerance tol:
// |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Inputs: Square Matrix m, tolerance tol ≥ 0 (negative values are flipped).
// Complexity: O(n^2) where n = Rows(A). Space: O(1).
// Returns ErrNilMatrix/ErrNonSquare on structural issues, ErrNaNInf on bad tol,
// ErrAsymmetry on violation.
// AI-Hints: Use for Eigen decomposition and PSD tests.
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf) // invalid tolerance is a numeric policy violation
	}
	if tol < zeroTol {
		tol = -tol
	}

	n := m.Rows()
	if n == 1 {
		return nil // nothing to compare
	}

	// Scan the strict upper triangle once in deterministic i→j order.
	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateSymmetric", fmt.Errorf("(%d,%d): %w", i, j, ErrAsymmetry))
			}
		}
	}

	return nil
}
