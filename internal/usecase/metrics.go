package usecase

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Check outcome labels.
const (
	OutcomeMatch    = "match"
	OutcomeMismatch = "mismatch"
	OutcomeMissing  = "missing"
	OutcomeError    = "error"
)

// Hash operation labels.
const (
	OperationHash   = "hash"
	OperationVerify = "verify"
	OperationDummy  = "dummy"
)

// VerifierMetricsOptions configures the facade metrics collectors.
type VerifierMetricsOptions struct {
	Registerer prometheus.Registerer
	Namespace  string
	Buckets    []float64
}

// VerifierMetrics exposes Prometheus collectors for password check outcomes
// and backend hash latencies. A nil receiver is a no-op, so callers can wire
// metrics conditionally.
type VerifierMetrics struct {
	Checks       *prometheus.CounterVec
	HashDuration *prometheus.HistogramVec
}

// NewVerifierMetrics constructs the collectors and registers them with the
// provided registerer.
func NewVerifierMetrics(opts VerifierMetricsOptions) (*VerifierMetrics, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "credguard"
	}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	buckets := opts.Buckets
	if len(buckets) == 0 {
		// Hash operations are deliberately slow; default buckets top out too
		// early to be useful.
		buckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
	}

	checks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "verifier",
		Name:      "checks_total",
		Help:      "Total number of password checks partitioned by outcome.",
	}, []string{"outcome"})

	if err := reg.Register(checks); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				checks = existing
			} else {
				return nil, fmt.Errorf("existing checks collector has unexpected type %T", already.ExistingCollector)
			}
		} else {
			return nil, fmt.Errorf("register checks collector: %w", err)
		}
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "verifier",
		Name:      "hash_duration_seconds",
		Help:      "Histogram of backend hash latencies in seconds partitioned by operation.",
		Buckets:   buckets,
	}, []string{"operation"})

	if err := reg.Register(duration); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.HistogramVec); ok {
				duration = existing
			} else {
				return nil, fmt.Errorf("existing duration collector has unexpected type %T", already.ExistingCollector)
			}
		} else {
			return nil, fmt.Errorf("register duration collector: %w", err)
		}
	}

	return &VerifierMetrics{
		Checks:       checks,
		HashDuration: duration,
	}, nil
}

// IncCheck records one password check with the given outcome.
func (m *VerifierMetrics) IncCheck(outcome string) {
	if m == nil || m.Checks == nil {
		return
	}
	m.Checks.WithLabelValues(outcome).Inc()
}

// ObserveHashDuration records the latency of one backend hash operation.
func (m *VerifierMetrics) ObserveHashDuration(operation string, elapsed time.Duration) {
	if m == nil || m.HashDuration == nil {
		return
	}
	m.HashDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
