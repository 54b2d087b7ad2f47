// SPDX-License-Identifier: MIT

package divergence

import (
	"time"

	"github.com/katalvlaran/slse/density"
	"github.com/katalvlaran/slse/logging"
	"github.com/katalvlaran/slse/matrix"
	"github.com/katalvlaran/slse/spectral"
)

const opCPU = "divergence.CPU"

// CPU evaluates the divergence on the calling goroutine with the Jacobi
// solver. It holds no mutable state.
type CPU struct {
	s settings
}

// NewCPU returns a CPU engine.
func NewCPU(opts ...Option) *CPU {
	return &CPU{s: gatherSettings(opts...)}
}

// Backend returns BackendCPU.
func (e *CPU) Backend() Backend { return BackendCPU }

// KLDivergence returns D(ρ1‖ρ2) = Tr ρ1(log ρ1 − log ρ2).
func (e *CPU) KLDivergence(l1, l2 matrix.Matrix, beta float64) (d float64, err error) {
	start := time.Now()
	n := 0
	defer func() { e.s.finish(BackendCPU, n, beta, start, d, err) }()

	if err = matrix.ValidateSquarePair(l1, l2); err != nil {
		return 0, classify(opCPU, err)
	}
	n = orderOf(l1)

	rho1, err := e.density(l1, beta)
	if err != nil {
		return 0, classify(opCPU, err)
	}
	rho2, err := e.density(l2, beta)
	if err != nil {
		return 0, classify(opCPU, err)
	}

	ut, err := matrix.Transpose(rho1.Vectors())
	if err != nil {
		return 0, classify(opCPU, err)
	}
	overlap, err := matrix.Mul(ut, rho2.Vectors())
	if err != nil {
		return 0, classify(opCPU, err)
	}

	sum := reduceRows(0, n, n, overlap.RawData(), rho1.Weights(), rho1.LogWeights(), rho2.LogWeights(), e.s.epsilon)

	return checkResult(opCPU, sum)
}

func (e *CPU) density(l matrix.Matrix, beta float64) (*density.Density, error) {
	dec, err := spectral.Decompose(l, e.s.spectral...)
	if err != nil {
		return nil, err
	}
	if log := e.s.logger.V(logging.DEBUG); log.Enabled() {
		if residual, err := dec.TraceResidual(l); err == nil {
			log.Info("spectrum decomposed", "dim", dec.Dim(), "traceResidual", residual)
		}
	}

	return density.Build(dec, beta)
}
