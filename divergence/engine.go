// SPDX-License-Identifier: MIT

package divergence

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/katalvlaran/slse/logging"
	"github.com/katalvlaran/slse/matrix"
)

// Backend names an execution strategy.
type Backend int

const (
	BackendCPU Backend = iota
	BackendAccelerated
	BackendAuto
)

func (b Backend) String() string {
	switch b {
	case BackendCPU:
		return "cpu"
	case BackendAccelerated:
		return "accelerated"
	case BackendAuto:
		return "auto"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend accepts the names produced by Backend.String.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cpu":
		return BackendCPU, nil
	case "accelerated":
		return BackendAccelerated, nil
	case "", "auto":
		return BackendAuto, nil
	default:
		return BackendCPU, fmt.Errorf("divergence: unknown backend %q: %w", name, ErrBackendUnavailable)
	}
}

// Engine computes the quantum relative entropy D(ρ1‖ρ2) of the density
// matrices built from two Laplacians at the same scale β.
//
// Implementations are safe for concurrent use. Backend reports the concrete
// strategy, never BackendAuto.
type Engine interface {
	Backend() Backend
	KLDivergence(l1, l2 matrix.Matrix, beta float64) (float64, error)
}

// New returns an engine for backend. BackendAuto picks the accelerated
// engine when it is compiled in and the CPU engine otherwise.
func New(backend Backend, opts ...Option) (Engine, error) {
	switch backend {
	case BackendCPU:
		return NewCPU(opts...), nil
	case BackendAccelerated:
		return newAccelerated(opts...)
	case BackendAuto:
		if AcceleratedAvailable() {
			return newAccelerated(opts...)
		}
		return NewCPU(opts...), nil
	default:
		return nil, fmt.Errorf("divergence.New: %v: %w", backend, ErrBackendUnavailable)
	}
}

// newAccelerated keeps a failed constructor from yielding a non-nil Engine
// holding a nil pointer.
func newAccelerated(opts ...Option) (Engine, error) {
	e, err := NewAccelerated(opts...)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// KLDivergence evaluates D(ρ1‖ρ2) on the CPU with default settings.
func KLDivergence(l1, l2 matrix.Matrix, beta float64) (float64, error) {
	return NewCPU().KLDivergence(l1, l2, beta)
}

// KLDivergenceAccelerated evaluates D(ρ1‖ρ2) on the accelerated backend with
// default settings, or returns ErrBackendUnavailable when it is compiled out.
func KLDivergenceAccelerated(l1, l2 matrix.Matrix, beta float64) (float64, error) {
	e, err := NewAccelerated()
	if err != nil {
		return 0, err
	}

	return e.KLDivergence(l1, l2, beta)
}

// orderOf returns the shared order of a validated pair, or 0.
func orderOf(l matrix.Matrix) int {
	if l == nil {
		return 0
	}

	return l.Rows()
}

// checkResult rejects a non-finite divergence.
func checkResult(op string, d float64) (float64, error) {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%s: result %v: %w", op, d, ErrNumericDegeneracy)
	}

	return d, nil
}

// finish logs and records one engine call. Errors are logged here only.
func (s *settings) finish(b Backend, n int, beta float64, start time.Time, d float64, err error) {
	kind := KindOf(err)
	s.recorder.Observe(b.String(), n, time.Since(start), kind.String())

	log := s.logger.WithValues("backend", b.String(), "dim", n, "beta", beta)
	if err != nil {
		log.Error(err, "kl divergence failed", "kind", kind.String())
		return
	}
	log.V(logging.DEBUG).Info("kl divergence", "result", d, "elapsed", time.Since(start))
}
