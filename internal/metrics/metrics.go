// Package metrics exposes Prometheus collectors for the pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/queuewatch/go-queuewatch/pkg/queue"
)

// Metrics holds the pipeline's Prometheus collectors on a private
// registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	framesTotal      prometheus.Counter
	insideCount      prometheus.Gauge
	totalTracks      prometheus.Gauge
	dwellAlerts      prometheus.Counter
	congestionAlerts prometheus.Counter
	warnings         prometheus.Counter
	frameDuration    prometheus.Histogram
}

// New creates and registers the pipeline collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.framesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "queuewatch_frames_processed_total",
		Help: "Frames processed by the queue engine.",
	})
	m.insideCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "queuewatch_inside_count",
		Help: "Identities currently inside the region.",
	})
	m.totalTracks = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "queuewatch_total_tracks",
		Help: "Identities currently known to the engine.",
	})
	m.dwellAlerts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "queuewatch_dwell_alerts_total",
		Help: "Dwell alerts emitted.",
	})
	m.congestionAlerts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "queuewatch_congestion_alerts_total",
		Help: "Congestion alerts emitted.",
	})
	m.warnings = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "queuewatch_detection_warnings_total",
		Help: "Detections skipped or clamped per frame contract.",
	})
	m.frameDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "queuewatch_frame_duration_seconds",
		Help:    "End-to-end per-frame processing time.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	m.registry.MustRegister(
		m.framesTotal, m.insideCount, m.totalTracks,
		m.dwellAlerts, m.congestionAlerts, m.warnings,
		m.frameDuration,
	)
	return m
}

// ObserveFrame records one engine result and its processing time.
func (m *Metrics) ObserveFrame(res queue.FrameResult, took time.Duration) {
	m.framesTotal.Inc()
	m.insideCount.Set(float64(res.InsideCount))
	m.totalTracks.Set(float64(res.TotalTracks))
	m.dwellAlerts.Add(float64(len(res.DwellAlerts)))
	m.congestionAlerts.Add(float64(len(res.CongestionAlerts)))
	m.warnings.Add(float64(len(res.Warnings)))
	m.frameDuration.Observe(took.Seconds())
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
