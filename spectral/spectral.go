// SPDX-License-Identifier: MIT

// Package spectral factors real symmetric matrices into eigenvalues and an
// orthonormal eigenvector basis, M = V·diag(λ)·Vᵀ.
//
// Decompose reads the upper triangle of its input only; symmetry of the
// caller's matrix is a precondition and is not re-verified. Eigenvalue order
// is unspecified; use Sorted for diagnostics.
package spectral

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/slse/matrix"
)

// ErrNoConvergence is returned when the Jacobi iteration exhausts its sweep
// budget. It wraps matrix.ErrMatrixEigenFailed.
var ErrNoConvergence = fmt.Errorf("spectral: eigen-decomposition did not converge: %w", matrix.ErrMatrixEigenFailed)

const opDecompose = "spectral.Decompose"

// machineEpsilon is the float64 unit round-off, 2⁻⁵².
const machineEpsilon = 0x1p-52

// Decomposition is the eigen pair of a symmetric matrix.
// Vectors holds one orthonormal eigenvector per column; column k pairs with Values[k].
type Decomposition struct {
	Values  []float64
	Vectors *matrix.Dense
}

// Dim returns the order of the decomposed matrix.
func (d *Decomposition) Dim() int { return len(d.Values) }

// Reconstruct returns V·diag(λ)·Vᵀ.
func (d *Decomposition) Reconstruct() (*matrix.Dense, error) {
	return matrix.FromEigenBasis(d.Vectors, d.Values)
}

// TraceResidual returns |Σλ − Tr m|, which stays near ε·n·max|λ| when d
// decomposes m.
func (d *Decomposition) TraceResidual(m matrix.Matrix) (float64, error) {
	tr, err := matrix.Trace(m)
	if err != nil {
		return 0, fmt.Errorf("spectral.TraceResidual: %w", err)
	}
	var sum float64
	for _, v := range d.Values {
		sum += v
	}

	return math.Abs(sum - tr), nil
}

// Sorted returns a copy of the eigenvalues in ascending order.
func (d *Decomposition) Sorted() []float64 {
	out := append([]float64(nil), d.Values...)
	sort.Float64s(out)

	return out
}

// Decompose factors the symmetric matrix m.
//
// The convergence test is relative per entry: A[p,q] is done once
// |A[p,q]| ≤ tolerance·√|A[p,p]·A[q,q]|. Entries below tolerance·ε·‖m‖_F are
// dropped outright so that couplings to a zero eigenvalue cannot stall.
//
// Errors: matrix shape sentinels (ErrNilMatrix, ErrInvalidDimensions,
// ErrNonSquare), matrix.ErrNaNInf for non-finite input, ErrNoConvergence.
func Decompose(m matrix.Matrix, opts ...Option) (*Decomposition, error) {
	o := gatherOptions(opts...)

	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opDecompose, err)
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opDecompose, err)
	}
	sym, err := matrix.MirrorUpper(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDecompose, err)
	}

	norm, err := matrix.FrobeniusNorm(sym)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDecompose, err)
	}
	floor := o.tolerance * machineEpsilon * norm

	values, vectors, err := matrix.Eigen(sym, o.tolerance, floor, o.maxSweeps)
	if err != nil {
		if errors.Is(err, matrix.ErrMatrixEigenFailed) {
			return nil, fmt.Errorf("%s: %w (%v)", opDecompose, ErrNoConvergence, err)
		}
		return nil, fmt.Errorf("%s: %w", opDecompose, err)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: eigenvalue %v: %w", opDecompose, v, matrix.ErrNaNInf)
		}
	}

	return &Decomposition{Values: values, Vectors: vectors}, nil
}
