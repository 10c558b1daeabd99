package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/checksinmyhead/api/internal/api/handler"
	apimw "github.com/checksinmyhead/api/internal/api/middleware"
	"github.com/checksinmyhead/api/internal/metrics"
	"github.com/checksinmyhead/api/internal/ratelimiter"
)

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
func NewRouter(
	resolver handler.DatabaseResolver,
	limiter *ratelimiter.Limiter,
	m *metrics.Metrics,
	reg prometheus.Gatherer,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer) // recover panics, return 500
	r.Use(chimw.RealIP)    // trust X-Forwarded-For / X-Real-IP
	r.Use(apimw.CorrelationID)
	r.Use(apimw.RequestLogger(logger))
	r.Use(apimw.Metrics(m))

	// --- handler instances ---
	rh := handler.NewRootHandler()
	hh := handler.NewHealthHandler(resolver, logger)

	// --- operational routes (never rate limited) ---
	r.Get("/health", hh.Health)
	r.Get("/ready", hh.Ready)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// --- API routes ---
	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(limiter))
		r.Get("/", rh.Welcome)
		r.Get("/ping", rh.Ping)
	})

	return r
}
