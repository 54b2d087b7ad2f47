// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/slse/matrix"
)

// TestIsSquare covers the boolean gate.
func TestIsSquare(t *testing.T) {
	t.Parallel()

	require.False(t, matrix.IsSquare(nil))
	require.True(t, matrix.IsSquare(MustDense(t, 1, 1)))
	require.True(t, matrix.IsSquare(MustDense(t, 4, 4)))
	require.False(t, matrix.IsSquare(MustDense(t, 2, 3)))
	require.True(t, matrix.IsSquare(hide{MustDense(t, 3, 3)}))
}

// TestValidateSameShape covers matching and mismatched dimensions.
func TestValidateSameShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"equal 2x3", MustDense(t, 2, 3), MustDense(t, 2, 3), nil},
		{"row mismatch", MustDense(t, 2, 3), MustDense(t, 3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", MustDense(t, 2, 3), MustDense(t, 2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Truef(t, errors.Is(err, tc.wantErr),
					"expected errors.Is(%v, %v)", err, tc.wantErr)
			}
		})
	}
}

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"1x1", MustDense(t, 1, 1), nil},
		{"3x3", MustDense(t, 3, 3), nil},
		{"2x3", MustDense(t, 2, 3), matrix.ErrNonSquare},
		{"3x2 hidden", hide{MustDense(t, 3, 2)}, matrix.ErrNonSquare},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Truef(t, errors.Is(err, tc.want),
					"expected errors.Is(%v, %v)", err, tc.want)
			}
		})
	}
}

// TestValidateSquarePair orders shape failures before dimension mismatch.
func TestValidateSquarePair(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateSquarePair(MustDense(t, 3, 3), MustDense(t, 3, 3)))
	AssertErrorIs(t, matrix.ValidateSquarePair(nil, MustDense(t, 3, 3)), matrix.ErrNilMatrix)
	AssertErrorIs(t, matrix.ValidateSquarePair(MustDense(t, 3, 3), MustDense(t, 3, 2)), matrix.ErrNonSquare)
	AssertErrorIs(t, matrix.ValidateSquarePair(MustDense(t, 3, 3), MustDense(t, 4, 4)), matrix.ErrDimensionMismatch)
}

// TestValidateMulCompatible checks the inner-dimension rule.
func TestValidateMulCompatible(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 3, 5)))
	AssertErrorIs(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 2, 3)), matrix.ErrDimensionMismatch)
	AssertErrorIs(t, matrix.ValidateMulCompatible(nil, MustDense(t, 2, 3)), matrix.ErrNilMatrix)
}

// nanMatrix is a Matrix that reports a NaN cell, bypassing Dense's Set policy.
type nanMatrix struct{ matrix.Matrix }

func (m nanMatrix) At(i, j int) (float64, error) {
	if i == 1 && j == 0 {
		return math.NaN(), nil
	}
	return m.Matrix.At(i, j)
}

// TestValidateFinite covers the *Dense fast path and the interface fallback.
func TestValidateFinite(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateFinite(MustRows(t, [][]float64{{1, 2}, {3, 4}})))
	require.NoError(t, matrix.ValidateFinite(hide{MustRows(t, [][]float64{{1, 2}, {3, 4}})}))
	AssertErrorIs(t, matrix.ValidateFinite(nanMatrix{MustDense(t, 2, 2)}), matrix.ErrNaNInf)
	AssertErrorIs(t, matrix.ValidateFinite(nil), matrix.ErrNilMatrix)
}

// TestValidateSymmetric checks tolerance handling.
func TestValidateSymmetric(t *testing.T) {
	t.Parallel()

	sym := MustRows(t, [][]float64{{2, -1}, {-1, 2}})
	require.NoError(t, matrix.ValidateSymmetric(sym, 0))

	skew := MustRows(t, [][]float64{{2, -1}, {-1 + 1e-9, 2}})
	AssertErrorIs(t, matrix.ValidateSymmetric(skew, 1e-12), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(skew, 1e-6))
	require.NoError(t, matrix.ValidateSymmetric(skew, -1e-6)) // sign is ignored

	AssertErrorIs(t, matrix.ValidateSymmetric(sym, math.NaN()), matrix.ErrNaNInf)
	AssertErrorIs(t, matrix.ValidateSymmetric(MustDense(t, 2, 3), 0), matrix.ErrNonSquare)
}
