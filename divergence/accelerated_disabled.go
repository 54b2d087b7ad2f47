// SPDX-License-Identifier: MIT

//go:build noaccel

package divergence

import "github.com/katalvlaran/slse/matrix"

// AcceleratedAvailable reports whether the accelerated backend is compiled in.
func AcceleratedAvailable() bool { return false }

// Accelerated is a placeholder when built with -tags noaccel.
type Accelerated struct{}

// NewAccelerated always fails with ErrBackendUnavailable in this build.
func NewAccelerated(...Option) (*Accelerated, error) {
	return nil, ErrBackendUnavailable
}

// Backend returns BackendAccelerated.
func (e *Accelerated) Backend() Backend { return BackendAccelerated }

// KLDivergence always fails with ErrBackendUnavailable in this build.
func (e *Accelerated) KLDivergence(_, _ matrix.Matrix, _ float64) (float64, error) {
	return 0, ErrBackendUnavailable
}

// Shutdown is a no-op in this build.
func Shutdown() {}
