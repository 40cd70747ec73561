// Package main provides the wellkeep HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raphaelgruber/wellkeep/internal/blob"
	"github.com/raphaelgruber/wellkeep/internal/config"
	"github.com/raphaelgruber/wellkeep/internal/kv"
	"github.com/raphaelgruber/wellkeep/internal/metrics"
	"github.com/raphaelgruber/wellkeep/internal/server"
	"github.com/raphaelgruber/wellkeep/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.Level())
	defer func() { _ = closeLog() }()
	slog.SetDefault(logger)

	logger.Info("starting wellkeep-server", "addr", cfg.ListenAddr, "base_path", cfg.BasePath)

	collector := metrics.NewCollector()

	// Connect storage backends
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := kv.NewSurreal(ctx, kv.SurrealConfig{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger, collector)
	if err != nil {
		cancel()
		logger.Error("failed to connect to SurrealDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error("failed to close SurrealDB connection", "error", err)
		}
	}()

	blobs, err := blob.NewS3(ctx, blob.S3Config{
		Endpoint:       cfg.S3Endpoint,
		Bucket:         cfg.S3Bucket,
		Region:         cfg.S3Region,
		AccessKey:      cfg.S3AccessKey,
		SecretKey:      cfg.S3SecretKey,
		ForcePathStyle: cfg.S3ForcePathStyle,
	}, collector)
	cancel()
	if err != nil {
		logger.Error("failed to create blob store", "error", err)
		os.Exit(1)
	}

	moods := service.NewMoods(store, logger)
	reminders := service.NewReminders(store, logger)
	memories := service.NewMemories(store, blobs, logger, cfg.SignTTL)

	srv := server.New(server.Config{
		BasePath:  cfg.BasePath,
		AuthToken: cfg.AuthToken,
	}, moods, reminders, memories, collector, logger)

	// Periodic orphaned photo sweep (report only)
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.SweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		memories.LogOrphanedPhotos(ctx)
	}); err != nil {
		logger.Error("invalid sweep schedule", "schedule", cfg.SweepSchedule, "error", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("API available", "addr", cfg.ListenAddr, "base_path", cfg.BasePath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
