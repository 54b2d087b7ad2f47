// SPDX-License-Identifier: MIT

package spectral

import "math"

const (
	// DefaultTolerance is the relative off-diagonal threshold: A[p,q] is left in
	// place once |A[p,q]| ≤ tol·√|A[p,p]·A[q,q]|.
	DefaultTolerance = 1e-12

	// DefaultMaxSweeps caps cyclic Jacobi sweeps. Convergence is quadratic;
	// ten sweeps is already unusual.
	DefaultMaxSweeps = 50
)

const (
	panicToleranceInvalid    = "spectral: WithTolerance: tol must be finite and > 0"
	panicMaxSweepsInvalid    = "spectral: WithMaxSweeps: k must be > 0"
)

// Option mutates decomposition settings. Constructors panic only on
// nonsensical values (programmer error).
type Option func(*options)

type options struct {
	tolerance float64
	maxSweeps int
}

// WithTolerance sets the relative convergence threshold.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *options) { o.tolerance = tol }
}

// WithMaxSweeps caps the number of Jacobi sweeps.
func WithMaxSweeps(k int) Option {
	if k <= 0 {
		panic(panicMaxSweepsInvalid)
	}

	return func(o *options) { o.maxSweeps = k }
}

func gatherOptions(user ...Option) options {
	o := options{tolerance: DefaultTolerance, maxSweeps: DefaultMaxSweeps}
	for _, set := range user {
		set(&o) // last-writer-wins
	}

	return o
}
