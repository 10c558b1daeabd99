package db_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/checksinmyhead/api/internal/config"
	"github.com/checksinmyhead/api/internal/db"
	"github.com/checksinmyhead/api/internal/domain"
)

type pingRecorder struct {
	outcomes []string
}

func (p *pingRecorder) hooks() db.PingHooks {
	return db.PingHooks{OnPing: func(outcome string, _ time.Duration) {
		p.outcomes = append(p.outcomes, outcome)
	}}
}

func TestStore_Database(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reachable returns configured database", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		rec := &pingRecorder{}
		store := db.NewStore(mt.Client, "checks", zap.NewNop(), rec.hooks())

		database, err := store.Database(context.Background())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if database.Name() != "checks" {
			mt.Fatalf("expected database checks, got %s", database.Name())
		}
		if len(rec.outcomes) != 1 || rec.outcomes[0] != db.OutcomeOK {
			mt.Fatalf("expected one ok ping, got %v", rec.outcomes)
		}
	})

	mt.Run("default database name", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := db.NewStore(mt.Client, config.DefaultDatabase, zap.NewNop(), db.PingHooks{})

		database, err := store.Database(context.Background())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if database.Name() != config.DefaultDatabase {
			mt.Fatalf("expected %s, got %s", config.DefaultDatabase, database.Name())
		}
	})

	mt.Run("pings on every call", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		rec := &pingRecorder{}
		store := db.NewStore(mt.Client, "checks", zap.NewNop(), rec.hooks())

		for i := 0; i < 2; i++ {
			if _, err := store.Database(context.Background()); err != nil {
				mt.Fatalf("call %d: unexpected error: %v", i, err)
			}
		}
		if len(rec.outcomes) != 2 {
			mt.Fatalf("expected 2 pings, got %d", len(rec.outcomes))
		}
	})

	mt.Run("authentication failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    18,
			Name:    "AuthenticationFailed",
			Message: "Authentication failed.",
		}))
		core, logs := observer.New(zap.ErrorLevel)
		rec := &pingRecorder{}
		store := db.NewStore(mt.Client, "checks", zap.New(core), rec.hooks())

		database, err := store.Database(context.Background())
		if !errors.Is(err, domain.ErrAuthFailed) {
			mt.Fatalf("expected ErrAuthFailed, got %v", err)
		}
		if database != nil {
			mt.Fatal("expected no database on failure")
		}
		if logs.Len() != 1 {
			mt.Fatalf("expected one error log, got %d", logs.Len())
		}
		if rec.outcomes[0] != db.OutcomeAuthFailed {
			mt.Fatalf("expected auth_failed outcome, got %s", rec.outcomes[0])
		}
	})

	mt.Run("other command error is unreachable", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    1,
			Name:    "InternalError",
			Message: "internal error",
		}))
		store := db.NewStore(mt.Client, "checks", zap.NewNop(), db.PingHooks{})

		if _, err := store.Database(context.Background()); !errors.Is(err, domain.ErrUnreachable) {
			mt.Fatalf("expected ErrUnreachable, got %v", err)
		}
	})
}

func TestStore_Collection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("same name resolves to same collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		store := db.NewStore(mt.Client, "checks", zap.NewNop(), db.PingHooks{})

		first, err := store.Collection(context.Background(), "receipts")
		if err != nil {
			mt.Fatalf("first: unexpected error: %v", err)
		}
		second, err := store.Collection(context.Background(), "receipts")
		if err != nil {
			mt.Fatalf("second: unexpected error: %v", err)
		}
		if first.Name() != second.Name() || first.Database().Name() != second.Database().Name() {
			mt.Fatalf("expected same collection, got %s.%s and %s.%s",
				first.Database().Name(), first.Name(), second.Database().Name(), second.Name())
		}
		if first.Name() != "receipts" || first.Database().Name() != "checks" {
			mt.Fatalf("unexpected namespace %s.%s", first.Database().Name(), first.Name())
		}
	})

	mt.Run("failed liveness yields no collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "command ping requires authentication",
		}))
		store := db.NewStore(mt.Client, "checks", zap.NewNop(), db.PingHooks{})

		coll, err := store.Collection(context.Background(), "receipts")
		if !errors.Is(err, domain.ErrAuthFailed) {
			mt.Fatalf("expected ErrAuthFailed, got %v", err)
		}
		if coll != nil {
			mt.Fatal("expected nil collection")
		}
	})
}

func TestStore_Unreachable(t *testing.T) {
	cfg := &config.Config{
		MongoURI:                    "mongodb://127.0.0.1:1",
		MongoDatabase:               "checks",
		MongoServerSelectionTimeout: 300 * time.Millisecond,
		MongoConnectTimeout:         300 * time.Millisecond,
	}
	client, err := db.Connect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("connect should not dial eagerly: %v", err)
	}

	core, logs := observer.New(zap.ErrorLevel)
	rec := &pingRecorder{}
	store := db.NewStore(client, cfg.MongoDatabase, zap.New(core), rec.hooks())
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	_, err = store.Database(context.Background())
	if !errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}

	entries := logs.FilterMessage("error connecting to mongodb").All()
	if len(entries) != 1 {
		t.Fatalf("expected one failure log line, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["database"]; got != "checks" {
		t.Fatalf("expected database field checks, got %v", got)
	}
	if len(rec.outcomes) != 1 || rec.outcomes[0] != db.OutcomeUnreachable {
		t.Fatalf("expected one unreachable ping, got %v", rec.outcomes)
	}
}

func TestStore_NoClient(t *testing.T) {
	rec := &pingRecorder{}
	store := db.NewStore(nil, "checks", zap.NewNop(), rec.hooks())

	if _, err := store.Database(context.Background()); !errors.Is(err, domain.ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing, got %v", err)
	}
	if rec.outcomes[0] != db.OutcomeConfigMissing {
		t.Fatalf("expected config_missing outcome, got %s", rec.outcomes[0])
	}
	if err := store.Close(context.Background()); err != nil {
		t.Fatalf("close without client should be a no-op, got %v", err)
	}
}

func TestConnect_MissingURI(t *testing.T) {
	_, err := db.Connect(context.Background(), &config.Config{MongoDatabase: "checks"})
	if !errors.Is(err, domain.ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing, got %v", err)
	}
}

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		db.OutcomeOK:            nil,
		db.OutcomeConfigMissing: domain.ErrConfigMissing,
		db.OutcomeAuthFailed:    domain.ErrAuthFailed,
		db.OutcomeUnreachable:   errors.New("connection refused"),
	}
	for want, err := range cases {
		if got := db.Outcome(err); got != want {
			t.Errorf("Outcome(%v) = %s, want %s", err, got, want)
		}
	}
}

// TestStore_Live runs against a real deployment when MONGODB_TEST_URI is set.
func TestStore_Live(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	cfg := &config.Config{
		MongoURI:                    uri,
		MongoDatabase:               "checksinmyhead_test",
		MongoServerSelectionTimeout: 5 * time.Second,
		MongoConnectTimeout:         5 * time.Second,
	}
	client, err := db.Connect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	store := db.NewStore(client, cfg.MongoDatabase, zap.NewNop(), db.PingHooks{})
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	database, err := store.Database(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if database.Name() != cfg.MongoDatabase {
		t.Fatalf("expected %s, got %s", cfg.MongoDatabase, database.Name())
	}
}
