package assembler

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Run results.
const (
	resultSuccess = "success"
	resultFailed  = "failed"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vectordb",
			Subsystem: "generator",
			Name:      "runs_total",
			Help:      "Total number of desired-state generations by result and failing state",
		},
		[]string{"result", "state"},
	)

	runDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vectordb",
			Subsystem: "generator",
			Name:      "run_duration_seconds",
			Help:      "Duration of desired-state generation in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
	)

	phaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vectordb",
			Subsystem: "generator",
			Name:      "phase_duration_seconds",
			Help:      "Duration of each generation phase in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~200ms
		},
		[]string{"phase"},
	)

	descriptorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vectordb",
			Subsystem: "generator",
			Name:      "descriptors_total",
			Help:      "Total number of generated descriptors by kind",
		},
		[]string{"kind"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		runsTotal,
		runDuration,
		phaseDuration,
		descriptorsTotal,
	)
}

func recordRunMetric(result string, failedAt State, seconds float64) {
	runsTotal.WithLabelValues(result, string(failedAt)).Inc()
	runDuration.Observe(seconds)
}

func recordPhaseMetric(phase State, seconds float64) {
	phaseDuration.WithLabelValues(string(phase)).Observe(seconds)
}

func recordDescriptorMetric(kind string) {
	descriptorsTotal.WithLabelValues(kind).Inc()
}
