package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kieranegan23/GPA-CALC/api/swagger"
	"github.com/kieranegan23/GPA-CALC/internal/handler"
	"github.com/kieranegan23/GPA-CALC/internal/middleware"
	"github.com/kieranegan23/GPA-CALC/internal/repository"
	"github.com/kieranegan23/GPA-CALC/internal/service"
	"github.com/kieranegan23/GPA-CALC/pkg/cache"
	"github.com/kieranegan23/GPA-CALC/pkg/config"
	"github.com/kieranegan23/GPA-CALC/pkg/database"
	"github.com/kieranegan23/GPA-CALC/pkg/logger"
	corsmiddleware "github.com/kieranegan23/GPA-CALC/pkg/middleware/cors"
	reqidmiddleware "github.com/kieranegan23/GPA-CALC/pkg/middleware/requestid"
	"github.com/kieranegan23/GPA-CALC/pkg/storage"
)

// @title GPA-CALC API
// @version 1.0.0
// @description Single-student class roster with live GPA and credit totals
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	kv, err := newKVStore(ctx, cfg)
	if err != nil {
		logr.Sugar().Fatalw("store init failed", "driver", cfg.Store.Driver, "error", err)
	}

	var rosterSvc *service.RosterService
	metricsSvc := service.NewMetricsService(func() float64 {
		if rosterSvc == nil {
			return 0
		}
		return float64(len(rosterSvc.Roster()))
	})

	instrumentedKV := repository.NewInstrumentedKV(kv, metricsSvc.ObserveStoreOperation)
	rosterRepo := repository.NewRosterRepository(instrumentedKV, cfg.Store.Key, logr)
	rosterSvc = service.NewRosterService(rosterRepo, validator.New(), logr)
	if err := rosterSvc.Load(ctx); err != nil {
		logr.Sugar().Fatalw("roster load failed", "error", err)
	}

	exportCfg := service.ExportConfig{Title: cfg.Exports.Title}
	var exportSvc *service.ExportService
	if cfg.Exports.ArchiveDir != "" {
		archive, err := storage.NewArchive(cfg.Exports.ArchiveDir)
		if err != nil {
			logr.Sugar().Fatalw("archive init failed", "dir", cfg.Exports.ArchiveDir, "error", err)
		}
		if deleted, err := archive.CleanupOlderThan(cfg.Exports.Retention); err != nil {
			logr.Sugar().Warnw("archive cleanup failed", "error", err)
		} else if len(deleted) > 0 {
			logr.Sugar().Infow("archive cleanup", "deleted", len(deleted))
		}
		exportSvc = service.NewExportService(rosterSvc, exportCfg, logr, nil, nil, archive)
	} else {
		exportSvc = service.NewExportService(rosterSvc, exportCfg, logr, nil, nil, nil)
	}

	rosterHandler := handler.NewRosterHandler(rosterSvc)
	draftHandler := handler.NewDraftHandler(rosterSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/roster", rosterHandler.Get)
		api.POST("/roster/save", rosterHandler.Save)
		api.DELETE("/roster/entries/:id", rosterHandler.Delete)

		api.GET("/draft", draftHandler.Get)
		api.POST("/draft/add", draftHandler.OpenAdd)
		api.POST("/draft/edit/:id", draftHandler.OpenEdit)
		api.PATCH("/draft", draftHandler.Update)
		api.POST("/draft/submit", draftHandler.Submit)
		api.POST("/draft/cancel", draftHandler.Cancel)

		if cfg.Exports.Enabled {
			api.GET("/roster/export", exportHandler.Transcript)
		}
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newKVStore builds the configured key-value backend.
func newKVStore(ctx context.Context, cfg *config.Config) (repository.KVStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisKV(client), nil
	default:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		kv := repository.NewPostgresKV(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return kv, nil
	}
}
