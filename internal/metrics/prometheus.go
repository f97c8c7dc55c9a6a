package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusBackend is a Backend exporting timings as a histogram and
// counters as a counter vector, both keyed by a "name" label.
type PrometheusBackend struct {
	// registry owns every collector of the backend.
	registry *prometheus.Registry
	// durations holds request timings in seconds.
	durations *prometheus.HistogramVec
	// events holds counter increments.
	events *prometheus.CounterVec
}

const (
	// metricsNamespace prefixes every exported metric.
	metricsNamespace = "molotov"
	// nameLabel is the Prometheus label carrying the metrics label or counter name.
	nameLabel = "name"
)

// NewPrometheusBackend creates a backend with its own registry,
// including the Go runtime and process collectors.
func NewPrometheusBackend() (*PrometheusBackend, error) {
	registry := prometheus.NewRegistry()

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of outbound requests by request label.",
		Buckets:   prometheus.DefBuckets,
	}, []string{nameLabel})

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "events_total",
		Help:      "Outbound request outcomes by request label and status code.",
	}, []string{nameLabel})

	for _, collector := range []prometheus.Collector{
		durations,
		events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return &PrometheusBackend{
		registry:  registry,
		durations: durations,
		events:    events,
	}, nil
}

// Timing observes duration in the request duration histogram.
func (b *PrometheusBackend) Timing(name string, duration time.Duration) {
	b.durations.WithLabelValues(name).Observe(duration.Seconds())
}

// Incr increments the events counter for name.
func (b *PrometheusBackend) Incr(name string) {
	b.events.WithLabelValues(name).Inc()
}

// Registry returns the registry holding the backend's collectors.
func (b *PrometheusBackend) Registry() *prometheus.Registry {
	return b.registry
}

// Handler returns an http.Handler exposing the registry in the Prometheus text format.
func (b *PrometheusBackend) Handler() http.Handler {
	return promhttp.HandlerFor(b.registry, promhttp.HandlerOpts{})
}
