// Package app assembles the storage, engine and services shared by the
// HTTP server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vytor/theoryflash/internal/achievements"
	"github.com/vytor/theoryflash/internal/config"
	"github.com/vytor/theoryflash/internal/content"
	"github.com/vytor/theoryflash/internal/db"
	"github.com/vytor/theoryflash/internal/jobs"
	"github.com/vytor/theoryflash/internal/logger"
	"github.com/vytor/theoryflash/internal/progress"
	"github.com/vytor/theoryflash/internal/repository/sqlite"
	"github.com/vytor/theoryflash/internal/services"
	"github.com/vytor/theoryflash/internal/worker"
)

type App struct {
	DB              *sql.DB
	Engine          *progress.Engine
	PersistPool     *worker.Pool
	ProfileService  services.ProfileService
	ProgressService services.ProgressService

	cancel context.CancelFunc
}

// New opens the database, loads the catalog and content bank and starts the
// persistence pool. Callers must Close the returned App.
func New(cfg config.Config) (*App, error) {
	log := logger.Default().WithPrefix("app")

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve timezone: %w", err)
	}

	bank, err := content.Open(context.Background(), cfg.ContentPath, content.NewClient())
	if err != nil {
		return nil, fmt.Errorf("load content bank: %w", err)
	}
	catalog := achievements.Load(cfg.CatalogPath)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("database ready at %s", cfg.DBPath)

	engine := progress.NewEngine(catalog, bank,
		progress.WithDailyGoal(cfg.DailyGoalTarget, cfg.DailyGoalBonusXP),
		progress.WithLocation(loc),
		progress.WithSessionSize(cfg.FlashcardSessionSize),
	)

	profileRepo := sqlite.NewProfileRepository(database.DB)
	stateRepo := sqlite.NewStateRepository(database.DB)
	historyRepo := sqlite.NewAnswerHistoryRepository(database.DB)

	pool := worker.NewPool(cfg.PersistWorkerCount, cfg.PersistQueueSize)
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	return &App{
		DB:              database.DB,
		Engine:          engine,
		PersistPool:     pool,
		ProfileService:  services.NewProfileService(profileRepo),
		ProgressService: services.NewProgressService(engine, profileRepo, stateRepo, historyRepo, jobs.NewWorkerQueue(pool, stateRepo)),
		cancel:          cancel,
	}, nil
}

// Close drains pending writes before closing the database.
func (a *App) Close() error {
	log := logger.Default().WithPrefix("app")
	log.Debug("stopping persist pool")
	a.PersistPool.Stop()
	a.cancel()
	log.Debug("closing database connection")
	return a.DB.Close()
}
