package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "uv_advisory"

// Metrics holds the Prometheus collectors for the HTTP API and its upstream calls.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration *prometheus.HistogramVec // labels: method, route

	// Location lookups by method={postcode,locality,nearest} and outcome={found,not_found,invalid,error}.
	LocationLookups *prometheus.CounterVec

	// UV API calls by outcome={success,http_error,malformed,error}.
	UVRequests    *prometheus.CounterVec
	UVAPIDuration prometheus.Histogram
}

// NewMetrics creates all collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		LocationLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_lookups_total",
			Help:      "Reference table lookups by method and outcome.",
		}, []string{"method", "outcome"}),
		UVRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uv_api_requests_total",
			Help:      "UV index API requests by outcome.",
		}, []string{"outcome"}),
		UVAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "uv_api_duration_seconds",
			Help:      "UV index API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.LocationLookups,
		m.UVRequests,
		m.UVAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry so tests can build
// as many as they like.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
