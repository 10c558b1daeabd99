package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/checksinmyhead/api/internal/api"
	"github.com/checksinmyhead/api/internal/config"
	"github.com/checksinmyhead/api/internal/db"
	"github.com/checksinmyhead/api/internal/domain"
	"github.com/checksinmyhead/api/internal/logger"
	"github.com/checksinmyhead/api/internal/metrics"
	"github.com/checksinmyhead/api/internal/ratelimiter"
)

func main() {
	boot, _ := zap.NewProduction()

	// ---- configuration ----
	if err := config.LoadDotEnv(); err != nil {
		boot.Fatal("failed to load .env", zap.Error(err))
	}
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal("failed to load config", zap.Error(err))
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		boot.Fatal("failed to build logger", zap.Error(err))
	}
	defer log.Sync() //nolint:errcheck

	// ---- database ----
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	client, err := db.Connect(ctx, cfg)
	switch {
	case errors.Is(err, domain.ErrConfigMissing):
		log.Warn("MONGODB_URI is not set; database requests will fail")
	case err != nil:
		log.Fatal("failed to create database client", zap.Error(err))
	}
	store := db.NewStore(client, cfg.MongoDatabase, log, m.StoreHooks())

	// ---- HTTP server ----
	router := api.NewRouter(store, ratelimiter.New(cfg.RateLimit), m, reg, log)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("database", store.Name()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()

	// 1. Stop accepting new HTTP requests and drain in-flight ones.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	// 2. Release the connection handle once nothing can use it.
	if err := store.Close(shutdownCtx); err != nil {
		log.Error("database disconnect error", zap.Error(err))
	}

	log.Info("server stopped cleanly")
}
