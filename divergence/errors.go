// SPDX-License-Identifier: MIT

package divergence

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/slse/density"
	"github.com/katalvlaran/slse/matrix"
	"github.com/katalvlaran/slse/spectral"
)

// Error kinds. Every error returned by an Engine matches exactly one of these
// via errors.Is and still matches the underlying package sentinel.
var (
	// ErrShape: an input is nil, empty, non-square, or the pair differs in order.
	ErrShape = errors.New("divergence: shape error")

	// ErrNumericDegeneracy: non-finite input, β, eigenvalue, Z or result.
	ErrNumericDegeneracy = errors.New("divergence: numeric degeneracy")

	// ErrBackendUnavailable: the accelerated backend is not compiled in,
	// or an unknown backend was requested.
	ErrBackendUnavailable = errors.New("divergence: backend unavailable")

	// ErrConvergence: an eigen-decomposition did not converge.
	ErrConvergence = errors.New("divergence: eigen-decomposition did not converge")
)

// ErrorKind classifies engine errors for logs and metrics.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindShape
	KindNumericDegeneracy
	KindBackendUnavailable
	KindConvergence
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindShape:
		return "shape"
	case KindNumericDegeneracy:
		return "numeric_degeneracy"
	case KindBackendUnavailable:
		return "backend_unavailable"
	case KindConvergence:
		return "convergence"
	default:
		return "unknown"
	}
}

// KindOf reports which kind err belongs to; KindNone for nil.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrShape):
		return KindShape
	case errors.Is(err, ErrNumericDegeneracy):
		return KindNumericDegeneracy
	case errors.Is(err, ErrBackendUnavailable):
		return KindBackendUnavailable
	case errors.Is(err, ErrConvergence):
		return KindConvergence
	default:
		return KindUnknown
	}
}

// classify tags err with op and the matching kind sentinel. Errors that
// already carry a kind are only re-tagged.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindUnknown {
		return fmt.Errorf("%s: %w", op, err)
	}

	var kind error
	switch {
	case errors.Is(err, spectral.ErrNoConvergence), errors.Is(err, matrix.ErrMatrixEigenFailed):
		kind = ErrConvergence
	case errors.Is(err, matrix.ErrNilMatrix),
		errors.Is(err, matrix.ErrInvalidDimensions),
		errors.Is(err, matrix.ErrNonSquare),
		errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrAsymmetry),
		errors.Is(err, density.ErrNilDecomposition):
		kind = ErrShape
	default:
		// matrix.ErrNaNInf, density.ErrNumericDegeneracy and non-finite results.
		kind = ErrNumericDegeneracy
	}

	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
