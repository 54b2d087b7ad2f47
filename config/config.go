// SPDX-License-Identifier: MIT

// Package config loads divergence engine settings from an optional file and
// SLSE_* environment variables.
//
// Keys:
//
//	backend               cpu | accelerated | auto
//	epsilon               probability cutoff for x·log x terms
//	jacobi.tolerance      relative Jacobi convergence threshold
//	jacobi.maxSweeps      Jacobi sweep budget (0 = solver default)
//	accelerated.workers   worker slots per accelerated call (0 = all)
//	log.level             error | info | debug | trace
//	log.development       console encoder instead of JSON
//
// Nested keys map to env vars with '.' replaced by '_', e.g.
// SLSE_JACOBI_TOLERANCE.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "SLSE"

// Key names.
const (
	KeyBackend            = "backend"
	KeyEpsilon            = "epsilon"
	KeyJacobiTolerance    = "jacobi.tolerance"
	KeyJacobiMaxSweeps    = "jacobi.maxSweeps"
	KeyAcceleratedWorkers = "accelerated.workers"
	KeyLogLevel           = "log.level"
	KeyLogDevelopment     = "log.development"
)

// Defaults.
const (
	DefaultBackend         = "auto"
	DefaultEpsilon         = 1e-15
	DefaultJacobiTolerance = 1e-12
	DefaultLogLevel        = "info"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the decoded settings tree.
type Config struct {
	Backend     string            `mapstructure:"backend"`
	Epsilon     float64           `mapstructure:"epsilon"`
	Jacobi      JacobiConfig      `mapstructure:"jacobi"`
	Accelerated AcceleratedConfig `mapstructure:"accelerated"`
	Log         LogConfig         `mapstructure:"log"`
}

// JacobiConfig tunes the CPU eigen solver.
type JacobiConfig struct {
	Tolerance float64 `mapstructure:"tolerance"`
	MaxSweeps int     `mapstructure:"maxSweeps"`
}

// AcceleratedConfig tunes the parallel backend.
type AcceleratedConfig struct {
	Workers int `mapstructure:"workers"`
}

// LogConfig selects logger verbosity and encoding.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend: DefaultBackend,
		Epsilon: DefaultEpsilon,
		Jacobi:  JacobiConfig{Tolerance: DefaultJacobiTolerance},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBackend, DefaultBackend)
	v.SetDefault(KeyEpsilon, DefaultEpsilon)
	v.SetDefault(KeyJacobiTolerance, DefaultJacobiTolerance)
	v.SetDefault(KeyJacobiMaxSweeps, 0)
	v.SetDefault(KeyAcceleratedWorkers, 0)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogDevelopment, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path (YAML, TOML or JSON by extension) when non-empty, applies
// SLSE_* overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "cpu", "accelerated", "auto":
	default:
		return fmt.Errorf("%w: %s=%q (want cpu, accelerated or auto)", ErrInvalidConfig, KeyBackend, c.Backend)
	}
	if math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) || c.Epsilon < 0 {
		return fmt.Errorf("%w: %s=%v must be finite and >= 0", ErrInvalidConfig, KeyEpsilon, c.Epsilon)
	}
	if math.IsNaN(c.Jacobi.Tolerance) || math.IsInf(c.Jacobi.Tolerance, 0) || c.Jacobi.Tolerance <= 0 {
		return fmt.Errorf("%w: %s=%v must be finite and > 0", ErrInvalidConfig, KeyJacobiTolerance, c.Jacobi.Tolerance)
	}
	if c.Jacobi.MaxSweeps < 0 {
		return fmt.Errorf("%w: %s=%d must be >= 0", ErrInvalidConfig, KeyJacobiMaxSweeps, c.Jacobi.MaxSweeps)
	}
	if c.Accelerated.Workers < 0 {
		return fmt.Errorf("%w: %s=%d must be >= 0", ErrInvalidConfig, KeyAcceleratedWorkers, c.Accelerated.Workers)
	}
	switch strings.ToLower(c.Log.Level) {
	case "error", "info", "debug", "trace":
	default:
		return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, KeyLogLevel, c.Log.Level)
	}

	return nil
}
