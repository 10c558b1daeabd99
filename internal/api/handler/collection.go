package handler

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apimw "github.com/checksinmyhead/api/internal/api/middleware"
	"github.com/checksinmyhead/api/internal/db"
)

// CollectionHandlerFunc is a handler that depends on a resolved collection.
type CollectionHandlerFunc func(w http.ResponseWriter, r *http.Request, coll *mongo.Collection)

// WithCollection resolves the named collection for every request, pinging
// the database first, and passes it to fn. Resolution failures are logged
// and mapped to a status code; fn is not called.
func WithCollection(resolver DatabaseResolver, name string, logger *zap.Logger, fn CollectionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		database, err := resolver.Database(r.Context())
		if err != nil {
			logger.Warn("resolve collection failed",
				zap.String("collection", name),
				zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
				zap.Error(err),
			)
			mapError(w, err)
			return
		}
		fn(w, r, db.Collection(database, name))
	}
}
