// SPDX-License-Identifier: MIT

// Package density builds the normalized spectral density matrix of a Laplacian
// at diffusion scale β:
//
//	ρ = exp(−βL) / Tr exp(−βL) = V·diag(wᵢ/Z)·Vᵀ,  wᵢ = exp(−β·λᵢ),  Z = Σ wᵢ.
//
// Weights are computed in log space, shifted by the dominant exponent, so Z is
// always representable and log ρ is available exactly in the eigenbasis. The
// resulting Density is immutable: accessors return copies.
package density

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/slse/matrix"
	"github.com/katalvlaran/slse/spectral"
)

// ErrNumericDegeneracy is returned when the normalization trace Z cannot be
// formed: β or an eigenvalue is non-finite, or Z is zero or non-finite.
var ErrNumericDegeneracy = errors.New("density: degenerate normalization trace")

// ErrNilDecomposition is returned when Build receives no decomposition.
var ErrNilDecomposition = errors.New("density: nil decomposition")

const opBuild = "density.Build"

// Density is a unit-trace, positive-semidefinite matrix held in its eigenbasis.
type Density struct {
	beta       float64
	vectors    *matrix.Dense // columns: eigenbasis shared with the source Laplacian
	weights    []float64     // pᵢ = wᵢ/Z, Σ pᵢ = 1
	logWeights []float64     // log pᵢ, finite for every i
	logZ       float64       // log of the unshifted partition function
}

// Build forms the density matrix of dec at scale beta.
// beta = 0 yields the maximum-entropy state I/n.
func Build(dec *spectral.Decomposition, beta float64) (*Density, error) {
	if dec == nil || dec.Vectors == nil {
		return nil, fmt.Errorf("%s: %w", opBuild, ErrNilDecomposition)
	}
	n := dec.Dim()
	if dec.Vectors.Rows() != n || dec.Vectors.Cols() != n {
		return nil, fmt.Errorf("%s: basis %dx%d for %d eigenvalues: %w",
			opBuild, dec.Vectors.Rows(), dec.Vectors.Cols(), n, matrix.ErrDimensionMismatch)
	}
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", opBuild, matrix.ErrInvalidDimensions)
	}
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return nil, fmt.Errorf("%s: beta=%v: %w", opBuild, beta, ErrNumericDegeneracy)
	}

	// Exponents −β·λᵢ and the dominant one used as the log-sum-exp shift.
	exps := make([]float64, n)
	shift := math.Inf(-1)
	for i, lambda := range dec.Values {
		e := -beta * lambda
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("%s: exponent −β·λ[%d] = %v: %w", opBuild, i, e, ErrNumericDegeneracy)
		}
		exps[i] = e
		if e > shift {
			shift = e
		}
	}

	// Shifted partition function: the dominant term is exactly 1, so 1 ≤ z ≤ n.
	weights := make([]float64, n)
	var z float64
	for i, e := range exps {
		weights[i] = math.Exp(e - shift)
		z += weights[i]
	}
	if z == 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return nil, fmt.Errorf("%s: Z=%v: %w", opBuild, z, ErrNumericDegeneracy)
	}

	logZShifted := math.Log(z)
	logWeights := make([]float64, n)
	for i := range weights {
		weights[i] /= z
		logWeights[i] = exps[i] - shift - logZShifted
	}

	return &Density{
		beta:       beta,
		vectors:    dec.Vectors.Clone().(*matrix.Dense),
		weights:    weights,
		logWeights: logWeights,
		logZ:       shift + logZShifted,
	}, nil
}

// Dim returns the order of ρ.
func (d *Density) Dim() int { return len(d.weights) }

// Beta returns the diffusion scale ρ was built at.
func (d *Density) Beta() float64 { return d.beta }

// Weights returns a copy of the eigenvalues of ρ (the probabilities pᵢ).
func (d *Density) Weights() []float64 { return append([]float64(nil), d.weights...) }

// LogWeights returns a copy of log pᵢ.
func (d *Density) LogWeights() []float64 { return append([]float64(nil), d.logWeights...) }

// Vectors returns a copy of the eigenbasis (columns).
func (d *Density) Vectors() *matrix.Dense { return d.vectors.Clone().(*matrix.Dense) }

// LogPartition returns log Z = log Σ exp(−β·λᵢ).
func (d *Density) LogPartition() float64 { return d.logZ }

// PartitionFunction returns Z. It may overflow to +Inf or underflow to 0 for
// extreme β even though ρ itself is well defined; prefer LogPartition.
func (d *Density) PartitionFunction() float64 { return math.Exp(d.logZ) }

// Trace returns Σ pᵢ, which is 1 up to rounding.
func (d *Density) Trace() float64 {
	var sum float64
	for _, p := range d.weights {
		sum += p
	}

	return sum
}

// Matrix materializes ρ = V·diag(p)·Vᵀ.
func (d *Density) Matrix() (*matrix.Dense, error) {
	return matrix.FromEigenBasis(d.vectors, d.weights)
}

// LogMatrix materializes log ρ = V·diag(log p)·Vᵀ.
func (d *Density) LogMatrix() (*matrix.Dense, error) {
	return matrix.FromEigenBasis(d.vectors, d.logWeights)
}

// Entropy returns the von Neumann entropy S(ρ) = −Tr ρ log ρ = −Σ pᵢ log pᵢ.
// It lies in [0, log n]; β = 0 attains log n.
func (d *Density) Entropy() float64 {
	var s float64
	for i, p := range d.weights {
		s -= p * d.logWeights[i]
	}

	return s
}
