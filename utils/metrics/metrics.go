// Package metrics provides Prometheus metrics for newsbias.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups counts memoization lookups by operation and result (hit, miss).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsbias",
			Name:      "cache_lookups_total",
			Help:      "Total number of memoization lookups",
		},
		[]string{"operation", "result"},
	)

	// ExternalRequests counts calls to external services by outcome.
	ExternalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsbias",
			Name:      "external_requests_total",
			Help:      "Total number of requests to external services",
		},
		[]string{"service", "status"},
	)

	// ExternalRequestDuration measures external call latency.
	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsbias",
			Name:      "external_request_duration_seconds",
			Help:      "Duration of requests to external services in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"service"},
	)

	// PageFetches counts article page fetch outcomes that are not visible as HTTP statuses
	// (blocked, unexpected_content_type, truncated, ok).
	PageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsbias",
			Name:      "page_fetches_total",
			Help:      "Total number of article page fetches by outcome",
		},
		[]string{"outcome"},
	)

	// Fallbacks counts degraded results (preview content, fallback analysis text).
	Fallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsbias",
			Name:      "fallbacks_total",
			Help:      "Total number of degraded results served",
		},
		[]string{"kind"},
	)

	// DashboardDuration measures end-to-end dashboard assembly.
	DashboardDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsbias",
			Name:      "dashboard_duration_seconds",
			Help:      "Duration of dashboard assembly in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"source"},
	)
)

// RecordCacheLookup records a memoization hit or miss.
func RecordCacheLookup(operation string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(operation, result).Inc()
}

// RecordExternalRequest records one call to an external service.
func RecordExternalRequest(service, status string, duration float64) {
	ExternalRequests.WithLabelValues(service, status).Inc()
	ExternalRequestDuration.WithLabelValues(service).Observe(duration)
}

// RecordPageFetch records one article page fetch outcome.
func RecordPageFetch(outcome string) {
	PageFetches.WithLabelValues(outcome).Inc()
}

// RecordFallback records a degraded result.
func RecordFallback(kind string) {
	Fallbacks.WithLabelValues(kind).Inc()
}
