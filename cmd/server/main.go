package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/theoryflash/internal/api"
	"github.com/vytor/theoryflash/internal/app"
	"github.com/vytor/theoryflash/internal/config"
	"github.com/vytor/theoryflash/internal/logger"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("TheoryFlash Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("daily_goal_target=%d", cfg.DailyGoalTarget)
	log.Debug("daily_goal_bonus_xp=%d", cfg.DailyGoalBonusXP)
	log.Debug("flashcard_session_size=%d", cfg.FlashcardSessionSize)
	log.Debug("catalog_path=%s", cfg.CatalogPath)
	log.Debug("content_path=%s", cfg.ContentPath)
	log.Debug("persist_worker_count=%d", cfg.PersistWorkerCount)
	log.Debug("persist_queue_size=%d", cfg.PersistQueueSize)

	// Open database, load catalog and content, start the persist pool
	a, err := app.New(cfg)
	if err != nil {
		log.Error("failed to initialize: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		ProfileService:  a.ProfileService,
		ProgressService: a.ProgressService,
		DB:              a.DB,
	}

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

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Flush queued state writes, then close the database
	if err := a.Close(); err != nil {
		log.Error("shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("TheoryFlash Server Stopped")
	log.Info("===========================================")
}
