package server

import (
	"net/http"
	"time"

	"github.com/meysamhadeli/dirsnap/snapshot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "dirsnap"

// Metrics holds the scan collectors. Each Server owns its registry so that
// several servers (and tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry
	scans    *prometheus.CounterVec
	duration prometheus.Histogram
	captured prometheus.Counter
	skipped  *prometheus.CounterVec
}

// NewMetrics registers the scan collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scans_total",
			Help:      "Snapshot scans by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of a snapshot scan.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		captured: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_captured_total",
			Help:      "Files returned in snapshots.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_skipped_total",
			Help:      "Files left out of snapshots by reason.",
		}, []string{"reason"}),
	}

	registry.MustRegister(m.scans, m.duration, m.captured, m.skipped)

	return m
}

// ObserveScan records the outcome of one scan. snapshot is nil on failure.
func (m *Metrics) ObserveScan(snapshot *models.Snapshot, elapsed time.Duration, err error) {
	m.duration.Observe(elapsed.Seconds())

	if err != nil {
		m.scans.WithLabelValues("failure").Inc()
		return
	}

	m.scans.WithLabelValues("success").Inc()
	m.captured.Add(float64(snapshot.Stats.Captured))
	for reason, count := range snapshot.Stats.Skipped {
		m.skipped.WithLabelValues(string(reason)).Add(float64(count))
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
