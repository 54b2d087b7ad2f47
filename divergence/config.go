// SPDX-License-Identifier: MIT

package divergence

import (
	"fmt"

	"github.com/katalvlaran/slse/config"
	"github.com/katalvlaran/slse/logging"
	"github.com/katalvlaran/slse/spectral"
)

// OptionsFromConfig maps cfg to a backend and engine options. The logger is
// not included; see NewFromConfig.
func OptionsFromConfig(cfg *config.Config) (Backend, []Option, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return BackendCPU, nil, err
	}
	backend, err := ParseBackend(cfg.Backend)
	if err != nil {
		return BackendCPU, nil, err
	}

	jacobi := []spectral.Option{spectral.WithTolerance(cfg.Jacobi.Tolerance)}
	if cfg.Jacobi.MaxSweeps > 0 {
		jacobi = append(jacobi, spectral.WithMaxSweeps(cfg.Jacobi.MaxSweeps))
	}
	opts := []Option{
		WithEpsilon(cfg.Epsilon),
		WithSpectralOptions(jacobi...),
	}
	if cfg.Accelerated.Workers > 0 {
		opts = append(opts, WithWorkers(cfg.Accelerated.Workers))
	}

	return backend, opts, nil
}

// NewFromConfig builds the configured engine with a zap logger per cfg.Log.
// extra options are applied last.
func NewFromConfig(cfg *config.Config, extra ...Option) (Engine, error) {
	backend, opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return nil, fmt.Errorf("divergence.NewFromConfig: %w", err)
		}
		opts = append(opts, WithLogger(logger))
	}

	return New(backend, append(opts, extra...)...)
}
