// Package metrics defines Prometheus metrics for the kit tracker.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kittrack_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kittrack_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kittrack_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	ChangesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kittrack_changes_recorded_total",
			Help: "Total change-log entries committed",
		},
	)

	Reconstructions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kittrack_reconstructions_total",
			Help: "Total point-in-time reconstructions served",
		},
		[]string{"scope"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		ChangesRecorded, Reconstructions,
	)
}
