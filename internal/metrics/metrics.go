// Package metrics defines the Prometheus metrics of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ideaflow"

var (
	// GenerationTotal counts idea generations by source (ai, fallback) and
	// fallback reason (empty for ai).
	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_total",
			Help:      "Total number of idea generations",
		},
		[]string{"source", "reason"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Idea generation duration in seconds",
			Buckets:   []float64{.01, .1, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	QuotaRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_rejected_total",
			Help:      "Generations rejected because the daily quota was exhausted",
		},
		[]string{"plan"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordGeneration records one finished generation.
func RecordGeneration(source, reason string, duration time.Duration) {
	GenerationTotal.WithLabelValues(source, reason).Inc()
	GenerationDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordQuotaRejection records a generation refused by the daily quota.
func RecordQuotaRejection(plan string) {
	QuotaRejectedTotal.WithLabelValues(plan).Inc()
}

// RecordHTTPRequest records a served HTTP request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
