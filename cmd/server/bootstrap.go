package main

import (
	"context"
	"time"

	"github.com/reflectboard/server/internal/config"
	"github.com/reflectboard/server/internal/handlers"
	"github.com/reflectboard/server/internal/models"
	"github.com/reflectboard/server/internal/services"
	"github.com/reflectboard/server/internal/utils"
	"github.com/reflectboard/server/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	refresher     *services.SnapshotRefresher
	digestService *services.DigestService
	taskQueue     services.TaskQueue
	worker        *services.Worker

	authHandler       *handlers.AuthHandler
	reflectionHandler *handlers.ReflectionHandler
	journalHandler    *handlers.JournalHandler
	insightsHandler   *handlers.InsightsHandler
	adminHandler      *handlers.AdminHandler
	draftHandler      *handlers.DraftHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	services.InitSystemLogger(db)
	services.StartLogCleanupScheduler(db)

	// Snapshot refresher keeps the admin analytics cache warm.
	insightsService := services.NewInsightsService(db)
	refresher := services.NewSnapshotRefresher(insightsService,
		time.Duration(cfg.Analytics.RefreshSeconds)*time.Second)
	refresher.Start()

	// Task queue routes mutation-triggered recomputes; Redis when enabled,
	// in-process otherwise.
	taskQueue := services.InitTaskQueue(cfg)
	recompute := func(ctx context.Context, task *services.RecomputeTask) error {
		return refresher.Refresh()
	}
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(recompute)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(recompute)
			worker.Start()
		}
	}

	// Daily digest to the operator log, skipping non-business days.
	digestService := services.NewDigestService(db)
	if err := digestService.StartScheduler(cfg.Analytics.DigestCron); err != nil {
		logger.Warn().Err(err).Msg("Failed to start digest scheduler")
	}

	authHandler := handlers.NewAuthHandler(db, cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		refresher:         refresher,
		digestService:     digestService,
		taskQueue:         taskQueue,
		worker:            worker,
		authHandler:       authHandler,
		reflectionHandler: handlers.NewReflectionHandler(db),
		journalHandler:    handlers.NewJournalHandler(db),
		insightsHandler:   handlers.NewInsightsHandler(db),
		adminHandler:      handlers.NewAdminHandler(db, refresher),
		draftHandler:      handlers.NewDraftHandler(db),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.digestService.StopScheduler()
	s.refresher.Stop()
	services.StopLogCleanupScheduler()
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
