package handler

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apimw "github.com/checksinmyhead/api/internal/api/middleware"
)

// DatabaseResolver produces a liveness-checked database handle.
// *db.Store is the production implementation.
type DatabaseResolver interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	resolver DatabaseResolver
	logger   *zap.Logger
}

func NewHealthHandler(resolver DatabaseResolver, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{resolver: resolver, logger: logger}
}

// Health handles GET /health
//
// @Summary  Liveness probe
// @Tags     system
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /ready. It pings the database on every call.
//
// @Summary  Readiness probe
// @Tags     system
// @Produce  json
// @Success  200  {object}  map[string]string
// @Failure  500  {object}  map[string]string
// @Failure  502  {object}  map[string]string
// @Failure  503  {object}  map[string]string
// @Router   /ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	database, err := h.resolver.Database(r.Context())
	if err != nil {
		h.logger.Warn("readiness check failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready", "database": database.Name()})
}
