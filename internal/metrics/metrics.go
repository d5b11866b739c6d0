// Package metrics holds the Prometheus collectors of the optimization service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Optimization outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	OptimizeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boiler_optimize_requests_total",
			Help: "Total number of optimization requests by outcome",
		},
		[]string{"outcome"},
	)

	OptimizeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boiler_optimize_duration_seconds",
			Help:    "Duration of optimization requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boiler_optimize_cache_lookups_total",
			Help: "Optimization cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boiler_http_requests_total",
			Help: "HTTP requests served by route pattern and status code",
		},
		[]string{"route", "code"},
	)
)
