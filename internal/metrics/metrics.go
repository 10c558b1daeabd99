package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/checksinmyhead/api/internal/db"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPLatency      *prometheus.HistogramVec
	MongoPings       *prometheus.CounterVec
	MongoPingLatency prometheus.Histogram
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),

		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		MongoPings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mongo_ping_total",
			Help: "Total number of database liveness checks, by outcome.",
		}, []string{"outcome"}),

		MongoPingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mongo_ping_duration_seconds",
			Help:    "Round-trip time of the admin ping command.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPLatency,
		m.MongoPings,
		m.MongoPingLatency,
	)

	return m
}

// StoreHooks returns the ping callback expected by db.PingHooks.
// Pings that never reached the server (config_missing) are counted but not timed.
func (m *Metrics) StoreHooks() db.PingHooks {
	return db.PingHooks{
		OnPing: func(outcome string, latency time.Duration) {
			m.MongoPings.WithLabelValues(outcome).Inc()
			if outcome != db.OutcomeConfigMissing {
				m.MongoPingLatency.Observe(latency.Seconds())
			}
		},
	}
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, latency time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}
