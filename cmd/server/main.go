package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/focuslearner/backend/internal/api"
	"github.com/focuslearner/backend/internal/config"
	"github.com/focuslearner/backend/internal/db"
	"github.com/focuslearner/backend/internal/generator"
	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/services"
	"github.com/focuslearner/backend/internal/videos"
	"github.com/focuslearner/backend/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FocusLearner Backend Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("gemini_model=%s", cfg.GeminiModel)
	log.Debug("generate_timeout_sec=%d", cfg.GenerateTimeoutSec)
	log.Debug("discovery_worker_count=%d", cfg.DiscoveryWorkerCount)
	log.Debug("discovery_queue_size=%d", cfg.DiscoveryQueueSize)
	log.Debug("video_max_results=%d", cfg.VideoMaxResults)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Content providers
	provider := generator.New(cfg.GoogleAPIKey, cfg.GeminiModel)
	videoClient := videos.New(cfg.YouTubeAPIKey)

	// Background discovery pool
	discoveryPool := worker.NewPool(cfg.DiscoveryWorkerCount, cfg.DiscoveryQueueSize)

	// Initialize services
	providerTimeout := time.Duration(cfg.GenerateTimeoutSec) * time.Second
	loopService := services.NewLoopService(database, provider, providerTimeout)

	srv := &api.Server{
		LoopService:     loopService,
		ActivityService: services.NewActivityService(database, provider, loopService, providerTimeout),
		MasteryService:  services.NewMasteryService(database),
		HealthService:   services.NewHealthService(database),
		TaxonomyService: services.NewTaxonomyService(database),
		ProgressService: services.NewProgressService(database),
		ContentService:  services.NewContentService(database, discoveryPool, videoClient, cfg.VideoMaxResults),
	}

	ctx, cancel := context.WithCancel(context.Background())
	discoveryPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker context")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping discovery pool")
	discoveryPool.Stop()

	log.Info("===========================================")
	log.Info("FocusLearner Backend Stopped")
	log.Info("===========================================")
}
