// Command ingest runs the air-quality ingestion service: an initial
// backfill cycle, then hourly routine cycles, with operational HTTP
// endpoints on the side.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/sincov/airq-ingest-service/internal/adapter/http"
	"github.com/sincov/airq-ingest-service/internal/adapter/kafka"
	"github.com/sincov/airq-ingest-service/internal/adapter/postgres"
	"github.com/sincov/airq-ingest-service/internal/adapter/rmcab"
	"github.com/sincov/airq-ingest-service/internal/config"
	"github.com/sincov/airq-ingest-service/internal/observability"
	"github.com/sincov/airq-ingest-service/internal/pipeline"
)

func main() {
	// Local development convenience; in deployment the environment is
	// already populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting airq-ingest-service",
		"timezone", cfg.Timezone,
		"fetch_interval", cfg.FetchInterval,
		"kafka_enabled", cfg.KafkaEnabled,
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("service exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	var publisher pipeline.ReadingPublisher
	if cfg.KafkaEnabled {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaSinkTopic, logger)
		defer kp.Close() //nolint:errcheck // flushed on shutdown, nothing to do on error
		publisher = kp
		logger.Info("reading publisher enabled", "topic", cfg.KafkaSinkTopic)
	}

	metrics := observability.NewMetrics()
	client := rmcab.NewClient(cfg.RMCABBaseURL, cfg.RMCABTimeout, logger)
	pipe := pipeline.New(client, store, store, publisher, logger, metrics, cfg.Location)

	server := httpadapter.NewServer(cfg.HTTPAddr, pipe, pipe, logger)
	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// A single goroutine runs all cycles, so two cycles can never overlap.
	cycleDone := make(chan struct{})
	go func() {
		defer close(cycleDone)
		runCycles(ctx, pipe, cfg.FetchInterval, logger)
	}()

	select {
	case err := <-serverErr:
		stop()
		<-cycleDone
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	<-cycleDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown incomplete", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// runCycles performs one full-backfill cycle at startup, then a routine
// cycle every interval until the context is cancelled.
func runCycles(ctx context.Context, pipe *pipeline.Pipeline, interval time.Duration, logger *slog.Logger) {
	if _, err := pipe.RunCycle(ctx, true); err != nil {
		logger.Error("backfill cycle failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := pipe.RunCycle(ctx, false); err != nil {
				logger.Error("ingestion cycle failed", "error", err)
			}
		}
	}
}
