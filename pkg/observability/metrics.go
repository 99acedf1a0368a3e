package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// UnknownFlow labels assemblies of identifiers that never loaded.
const UnknownFlow = "unknown"

// Metrics records flow assembly activity.
type Metrics struct {
	registry *prometheus.Registry

	assemblies       *prometheus.CounterVec
	assemblyDuration *prometheus.HistogramVec
	merges           *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		assemblies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webflow_assemblies_total",
				Help: "Total number of flow assemblies by outcome",
			},
			[]string{"flow", "result"},
		),
		assemblyDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webflow_assembly_duration_seconds",
				Help:    "Duration of flow assembly including parent resolution",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"flow"},
		),
		merges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webflow_merges_total",
				Help: "Total number of parent flows merged into a child",
			},
			[]string{"flow"},
		),
		validationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webflow_validation_errors_total",
				Help: "Total number of validation errors reported",
			},
			[]string{"flow"},
		),
	}
	m.registry.MustRegister(m.assemblies, m.assemblyDuration, m.merges, m.validationErrors)
	return m
}

// ObserveAssembly records one assembly of flow with the given outcome.
func (m *Metrics) ObserveAssembly(flow, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.assemblies.WithLabelValues(flow, result).Inc()
	m.assemblyDuration.WithLabelValues(flow).Observe(d.Seconds())
}

// IncMerges records merged parents for flow.
func (m *Metrics) IncMerges(flow string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.merges.WithLabelValues(flow).Add(float64(n))
}

// AddValidationErrors records validation failures for flow.
func (m *Metrics) AddValidationErrors(flow string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.validationErrors.WithLabelValues(flow).Add(float64(n))
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
