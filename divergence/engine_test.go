// SPDX-License-Identifier: MIT

package divergence_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/slse/config"
	"github.com/katalvlaran/slse/divergence"
	"github.com/katalvlaran/slse/logging/logtest"
	"github.com/katalvlaran/slse/matrix"
	"github.com/katalvlaran/slse/metrics"
)

func TestParseBackend(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]divergence.Backend{
		"cpu":         divergence.BackendCPU,
		"CPU":         divergence.BackendCPU,
		"accelerated": divergence.BackendAccelerated,
		"auto":        divergence.BackendAuto,
		"":            divergence.BackendAuto,
	} {
		got, err := divergence.ParseBackend(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}
	_, err := divergence.ParseBackend("cuda")
	require.ErrorIs(t, err, divergence.ErrBackendUnavailable)

	require.Equal(t, "accelerated", divergence.BackendAccelerated.String())
	require.Equal(t, "backend(9)", divergence.Backend(9).String())
}

func TestNewUnknownBackend(t *testing.T) {
	t.Parallel()

	e, err := divergence.New(divergence.Backend(42))
	require.ErrorIs(t, err, divergence.ErrBackendUnavailable)
	require.Nil(t, e)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, divergence.KindNone, divergence.KindOf(nil))
	require.Equal(t, divergence.KindUnknown, divergence.KindOf(errors.New("boom")))
	require.Equal(t, divergence.KindBackendUnavailable,
		divergence.KindOf(fmt.Errorf("wrapped: %w", divergence.ErrBackendUnavailable)))

	for k, s := range map[divergence.ErrorKind]string{
		divergence.KindNone:               "ok",
		divergence.KindShape:              "shape",
		divergence.KindNumericDegeneracy:  "numeric_degeneracy",
		divergence.KindBackendUnavailable: "backend_unavailable",
		divergence.KindConvergence:        "convergence",
		divergence.KindUnknown:            "unknown",
	} {
		require.Equal(t, s, k.String())
	}
}

func TestRecorderCountsCalls(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	e := divergence.NewCPU(divergence.WithRecorder(rec))
	_, err = e.KLDivergence(pathLaplacian(4), starLaplacian(4), 1)
	require.NoError(t, err)
	_, err = e.KLDivergence(pathLaplacian(4), starLaplacian(5), 1)
	require.ErrorIs(t, err, divergence.ErrShape)

	// one series per (backend, result)
	n, err := testutil.GatherAndCount(reg, "slse_divergence_calls_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Backend = "cpu"
	cfg.Epsilon = 1e-12
	cfg.Jacobi.MaxSweeps = 40
	cfg.Accelerated.Workers = 2

	backend, opts, err := divergence.OptionsFromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, divergence.BackendCPU, backend)
	require.Len(t, opts, 3)

	e, err := divergence.New(backend, opts...)
	require.NoError(t, err)
	d, err := e.KLDivergence(pathLaplacian(3), starLaplacian(3), 1)
	require.NoError(t, err)
	require.Greater(t, d, 0.0)

	cfg.Backend = "gpu"
	_, _, err = divergence.OptionsFromConfig(cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	backend, _, err = divergence.OptionsFromConfig(nil)
	require.NoError(t, err)
	require.Equal(t, divergence.BackendAuto, backend)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Backend = "cpu"
	cfg.Log.Level = "error"
	e, err := divergence.NewFromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, divergence.BackendCPU, e.Backend())

	cfg.Log.Level = "loud"
	_, err = divergence.NewFromConfig(cfg)
	require.Error(t, err)
}

// EngineSuite runs the same contract against every available backend.
type EngineSuite struct {
	suite.Suite
	engines []divergence.Engine
}

func (s *EngineSuite) SetupTest() {
	s.engines = []divergence.Engine{divergence.NewCPU(divergence.WithLogger(logtest.New(s.T())))}
	if divergence.AcceleratedAvailable() {
		acc, err := divergence.NewAccelerated(divergence.WithLogger(logtest.New(s.T())))
		s.Require().NoError(err)
		s.engines = append(s.engines, acc)
	}
}

func (s *EngineSuite) TestSingleEdgeSelfDivergence() {
	l, err := matrix.NewFromRows([][]float64{{1, -1}, {-1, 1}})
	s.Require().NoError(err)
	for _, e := range s.engines {
		d, err := e.KLDivergence(l, l, 1)
		s.Require().NoError(err, e.Backend().String())
		s.InDelta(0, d, 1e-9, e.Backend().String())
	}
}

func (s *EngineSuite) TestPathStarPositive() {
	for _, e := range s.engines {
		d, err := e.KLDivergence(pathLaplacian(3), starLaplacian(3), 1)
		s.Require().NoError(err)
		s.Greater(d, 0.0, e.Backend().String())
	}
}

func (s *EngineSuite) TestSweepOfNegativeBetas() {
	a, b := randomLaplacian(10, 0.5, 8), randomLaplacian(10, 0.5, 9)
	for _, e := range s.engines {
		for _, beta := range []float64{-1.5, -0.95, -0.65} {
			d, err := e.KLDivergence(a, b, beta)
			s.Require().NoError(err)
			s.GreaterOrEqual(d, -1e-9)
		}
	}
}

func (s *EngineSuite) TestShapeError() {
	rect, err := matrix.NewDense(2, 3)
	s.Require().NoError(err)
	for _, e := range s.engines {
		_, err := e.KLDivergence(rect, rect, 1)
		s.ErrorIs(err, divergence.ErrShape)
	}
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}
