package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/road-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/road-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/road-risk-service/internal/config"
	"github.com/couchcryptid/road-risk-service/internal/observability"
	"github.com/couchcryptid/road-risk-service/internal/pipeline"
	"github.com/couchcryptid/road-risk-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Assessment archive is optional: without DATABASE_URL the service only
	// publishes reports to Kafka.
	var repo *storage.Repository
	if cfg.DatabaseURL != "" {
		pool, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := storage.RunMigrations(ctx, pool); err != nil {
			logger.Error("database migration failed", "error", err)
			os.Exit(1)
		}
		repo = storage.NewRepository(pool)
		logger.Info("assessment archive enabled")
	} else {
		logger.Info("assessment archive disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	assessor := pipeline.NewAssessor(logger, metrics, cfg.TopDangerousN)

	var loader pipeline.BatchLoader = writer
	if repo != nil {
		loader = pipeline.NewFanOutLoader(writer, repo)
	}

	p := pipeline.New(reader, assessor, loader, logger, metrics, cfg.BatchSize)

	var lister httpadapter.AssessmentLister
	if repo != nil {
		lister = repo
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, lister, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start assessment pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
