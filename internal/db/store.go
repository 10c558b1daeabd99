package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/auth"
	"go.uber.org/zap"

	"github.com/checksinmyhead/api/internal/domain"
)

// Server error codes that mean the credentials were rejected.
const (
	codeUnauthorized         = 13
	codeAuthenticationFailed = 18
)

// Ping outcomes reported to PingHooks.
const (
	OutcomeOK            = "ok"
	OutcomeConfigMissing = "config_missing"
	OutcomeUnreachable   = "unreachable"
	OutcomeAuthFailed    = "auth_failed"
)

// PingHooks lets callers observe liveness checks without this package
// depending on a metrics library. OnPing is optional.
type PingHooks struct {
	OnPing func(outcome string, latency time.Duration)
}

// Store is the database access boundary. It owns the connection handle for
// the lifetime of the process and hands out database and collection
// references on demand. Safe for concurrent use.
type Store struct {
	client *mongo.Client
	name   string
	logger *zap.Logger
	onPing func(string, time.Duration)
}

// NewStore wraps client. A nil client is allowed: every Database call then
// fails with domain.ErrConfigMissing.
func NewStore(client *mongo.Client, name string, logger *zap.Logger, hooks PingHooks) *Store {
	onPing := hooks.OnPing
	if onPing == nil {
		onPing = func(string, time.Duration) {}
	}
	return &Store{client: client, name: name, logger: logger, onPing: onPing}
}

// Name returns the logical database name references are resolved against.
func (s *Store) Name() string { return s.name }

// Ping runs the admin ping command. The result is never cached.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		s.onPing(OutcomeConfigMissing, 0)
		return domain.ErrConfigMissing
	}

	start := time.Now()
	err := s.client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	latency := time.Since(start)
	if err != nil {
		err = classify(err)
		s.onPing(Outcome(err), latency)
		return err
	}
	s.onPing(OutcomeOK, latency)
	return nil
}

// Database checks liveness and returns a fresh handle to the configured
// database. Failures are logged and returned; there is no retry.
func (s *Store) Database(ctx context.Context) (*mongo.Database, error) {
	if err := s.Ping(ctx); err != nil {
		s.logger.Error("error connecting to mongodb",
			zap.String("database", s.name),
			zap.String("outcome", Outcome(err)),
			zap.Error(err),
		)
		return nil, err
	}
	return s.client.Database(s.name), nil
}

// Collection resolves the database and then the named collection from it.
func (s *Store) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	database, err := s.Database(ctx)
	if err != nil {
		return nil, err
	}
	return Collection(database, name), nil
}

// Close disconnects the client. Calling it on a store without a client is a no-op.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

// Collection returns the named collection of database. The name is not
// validated and the collection need not exist yet.
func Collection(database *mongo.Database, name string) *mongo.Collection {
	return database.Collection(name)
}

// Outcome maps an error returned by Ping to one of the Outcome* labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrConfigMissing):
		return OutcomeConfigMissing
	case errors.Is(err, domain.ErrAuthFailed):
		return OutcomeAuthFailed
	default:
		return OutcomeUnreachable
	}
}

func classify(err error) error {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && (cmdErr.Code == codeAuthenticationFailed || cmdErr.Code == codeUnauthorized) {
		return fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrUnreachable, err)
}
