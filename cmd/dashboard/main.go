package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/adapter/csvfile"
	httpadapter "github.com/Moustapha00864/Kaikai-dashbaord-app/internal/adapter/http"
	kafkaadapter "github.com/Moustapha00864/Kaikai-dashbaord-app/internal/adapter/kafka"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/adapter/mapbox"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/config"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/observability"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, cfg.MapboxRateLimit, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var (
		loader pipeline.BatchLoader
		writer *kafkaadapter.Writer
	)
	if cfg.KafkaExportEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loader = writer
		logger.Info("kafka export enabled", "topic", cfg.KafkaExportTopic, "brokers", cfg.KafkaBrokers)
	}

	source := csvfile.NewSource(cfg.DataPath, logger)
	p := pipeline.New(source, loader, logger, metrics, cfg.ReferenceYear, cfg.ExportBatchSize)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load faults are fatal: nothing is served from a partially prepared file.
	if err := p.Load(ctx); err != nil {
		logger.Error("initial load failed", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}

	var reloader *pipeline.Reloader
	if cfg.ReloadInterval > 0 {
		reloader = pipeline.NewReloader(p, cfg.ReloadInterval, logger)
		if err := reloader.Start(ctx); err != nil {
			logger.Error("failed to schedule reload", "error", err)
			os.Exit(1)
		}
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, geocoder, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if reloader != nil {
		reloader.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
