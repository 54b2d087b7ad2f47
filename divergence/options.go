// SPDX-License-Identifier: MIT

package divergence

import (
	"math"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/slse/metrics"
	"github.com/katalvlaran/slse/spectral"
)

// DefaultEpsilon is the probability at or below which a pᵢ·(…) term is dropped
// (x·log x → 0 as x → 0).
const DefaultEpsilon = 1e-15

const (
	panicEpsilonInvalid = "divergence: WithEpsilon: eps must be finite and >= 0"
	panicWorkersInvalid = "divergence: WithWorkers: n must be > 0"
)

// Option configures an engine. Constructors panic only on nonsensical values.
type Option func(*settings)

type settings struct {
	epsilon  float64
	spectral []spectral.Option
	logger   logr.Logger
	recorder *metrics.Recorder
	workers  int // accelerated only; 0 = every device slot
}

// WithEpsilon sets the probability cutoff for skipped terms.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(s *settings) { s.epsilon = eps }
}

// WithSpectralOptions forwards Jacobi settings to the CPU eigen solver.
func WithSpectralOptions(opts ...spectral.Option) Option {
	return func(s *settings) { s.spectral = append(s.spectral, opts...) }
}

// WithLogger injects a logger; engines default to logr.Discard().
func WithLogger(l logr.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRecorder attaches Prometheus collectors. nil disables recording.
func WithRecorder(r *metrics.Recorder) Option {
	return func(s *settings) { s.recorder = r }
}

// WithWorkers caps the device slots one accelerated call may hold.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(s *settings) { s.workers = n }
}

func gatherSettings(user ...Option) settings {
	s := settings{epsilon: DefaultEpsilon, logger: logr.Discard()}
	for _, set := range user {
		set(&s)
	}

	return s
}
