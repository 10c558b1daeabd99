package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/checksinmyhead/api/internal/config"
	"github.com/checksinmyhead/api/internal/domain"
)

// Connect creates the process-wide mongo client from cfg.MongoURI.
// The driver dials in the background, so an unreachable server is not
// reported here; it surfaces on the first Store.Database call.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	if cfg.MongoURI == "" {
		return nil, domain.ErrConfigMissing
	}

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(cfg.MongoServerSelectionTimeout).
		SetConnectTimeout(cfg.MongoConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("create mongo client: %w", err)
	}
	return client, nil
}
