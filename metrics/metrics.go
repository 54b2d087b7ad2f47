// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus collectors for divergence engine calls.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "slse"

// ResultOK labels a successful call; failures use the error kind name.
const ResultOK = "ok"

// Recorder owns the engine collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	calls     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	dimension prometheus.Histogram
}

// NewRecorder builds the collectors and registers them on reg.
// A nil reg leaves them unregistered, which is useful in tests.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "divergence",
			Name:      "calls_total",
			Help:      "KL divergence evaluations by backend and result.",
		}, []string{"backend", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "divergence",
			Name:      "duration_seconds",
			Help:      "Wall time of a KL divergence evaluation.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"backend"}),
		dimension: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "matrix_dimension",
			Help:      "Order of the Laplacians passed to the engines.",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 12),
		}),
	}
	if reg == nil {
		return r, nil
	}
	for _, c := range []prometheus.Collector{r.calls, r.duration, r.dimension} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	return r, nil
}

// Observe records one call. dim <= 0 (rejected before sizing) skips the
// dimension histogram.
func (r *Recorder) Observe(backend string, dim int, elapsed time.Duration, result string) {
	if r == nil {
		return
	}
	r.calls.WithLabelValues(backend, result).Inc()
	r.duration.WithLabelValues(backend).Observe(elapsed.Seconds())
	if dim > 0 {
		r.dimension.Observe(float64(dim))
	}
}
