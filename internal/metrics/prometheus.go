package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "copyright"

var (
	// RequestCount counts HTTP requests
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// DetectionCount counts detections by signal source and match level
	DetectionCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Total number of similarity detections",
		},
		[]string{"source", "match_level"},
	)

	// DetectionDuration measures detection duration per signal source
	DetectionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "detection_duration_seconds",
			Help:      "Similarity detection duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	// ExternalCallCount counts calls to web and video search collaborators
	ExternalCallCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "external_calls_total",
			Help:      "Total number of external search calls",
		},
		[]string{"provider", "status"},
	)

	// ExternalCacheCount counts search cache hits and misses
	ExternalCacheCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "external_cache_total",
			Help:      "External search cache hits and misses",
		},
		[]string{"provider", "result"}, // "hit" / "miss"
	)

	// RegistrationCount counts content registrations by outcome
	RegistrationCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Total number of content registrations",
		},
		[]string{"path", "status"}, // path: "sync" / "stream"
	)
)

var registerOnce sync.Once

// InitPrometheus registers all collectors with the default registry. Safe to call more than once.
func InitPrometheus() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCount,
			RequestDuration,
			DetectionCount,
			DetectionDuration,
			ExternalCallCount,
			ExternalCacheCount,
			RegistrationCount,
		)
	})
}

// MetricsHandler returns Prometheus metrics handler
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
