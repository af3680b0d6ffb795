package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch and mutation outcomes reported to a MetricsRecorder.
const (
	OutcomeRows  = "rows"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
	OutcomeOK    = "ok"
)

// MetricsRecorder receives per-table fetch and per-operation mutation results.
type MetricsRecorder interface {
	ObserveFetch(table, outcome string, duration time.Duration)
	ObserveMutation(operation, outcome string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveFetch(string, string, time.Duration) {}
func (noopMetrics) ObserveMutation(string, string) {}

// PrometheusMetrics exports catalog metrics as Prometheus collectors.
type PrometheusMetrics struct {
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	mutations     *prometheus.CounterVec
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aisumo",
			Subsystem: "catalog",
			Name:      "fetch_total",
			Help:      "Table reads issued by FetchAll, by table and outcome.",
		}, []string{"table", "outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aisumo",
			Subsystem: "catalog",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of a single table read.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"table"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aisumo",
			Subsystem: "catalog",
			Name:      "mutation_total",
			Help:      "Write-through mutations, by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.fetches, m.fetchDuration, m.mutations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveFetch implements MetricsRecorder.
func (m *PrometheusMetrics) ObserveFetch(table, outcome string, duration time.Duration) {
	m.fetches.WithLabelValues(table, outcome).Inc()
	m.fetchDuration.WithLabelValues(table).Observe(duration.Seconds())
}

// ObserveMutation implements MetricsRecorder.
func (m *PrometheusMetrics) ObserveMutation(operation, outcome string) {
	m.mutations.WithLabelValues(operation, outcome).Inc()
}
