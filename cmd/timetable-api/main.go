package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campusgrid/timetable-api/api/swagger"
	"github.com/campusgrid/timetable-api/internal/handler"
	internalmiddleware "github.com/campusgrid/timetable-api/internal/middleware"
	"github.com/campusgrid/timetable-api/internal/repository"
	"github.com/campusgrid/timetable-api/internal/service"
	"github.com/campusgrid/timetable-api/pkg/cache"
	"github.com/campusgrid/timetable-api/pkg/config"
	"github.com/campusgrid/timetable-api/pkg/database"
	"github.com/campusgrid/timetable-api/pkg/jobs"
	"github.com/campusgrid/timetable-api/pkg/logger"
	corsmiddleware "github.com/campusgrid/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusgrid/timetable-api/pkg/middleware/requestid"
	"github.com/campusgrid/timetable-api/pkg/storage"
)

// @title CampusGrid Timetable API
// @version 1.0.0
// @description Timetable generation, approval and export service
// @BasePath /api/v1
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

	// Persistence is optional: without it the service still generates and
	// previews candidates, but approval and exports report a precondition
	// failure.
	var approvedRepo *repository.ApprovedScheduleRepository
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Warn("postgres unavailable, approvals disabled", zap.Error(err))
	} else {
		defer db.Close() //nolint:errcheck
		approvedRepo = repository.NewApprovedScheduleRepository(db)
	}

	var cacheRepo *repository.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, list caching disabled", zap.Error(err))
	} else {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
	}

	metricsSvc := service.NewMetricsService()

	timetableSvc := buildTimetableService(approvedRepo, cacheRepo, logr, metricsSvc, cfg)
	exportSvc := buildExportService(approvedRepo, logr, cfg)
	defer exportSvc.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		status := gin.H{"status": "ready", "database": approvedRepo != nil, "redis": cacheRepo != nil}
		c.JSON(http.StatusOK, status)
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	handler.NewTimetableHandler(timetableSvc, exportSvc).RegisterRoutes(api)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func buildTimetableService(
	repo *repository.ApprovedScheduleRepository,
	cacheRepo *repository.CacheRepository,
	logr *zap.Logger,
	metricsSvc *service.MetricsService,
	cfg *config.Config,
) *service.TimetableService {
	svcCfg := service.TimetableServiceConfig{
		CandidateTTL: cfg.Generator.CandidateTTL,
		ListCacheTTL: cfg.Cache.ApprovedListTTL,
		Seed:         cfg.Generator.Seed,
	}
	if repo == nil {
		return service.NewTimetableService(nil, cacheRepo, nil, logr, metricsSvc, svcCfg)
	}
	return service.NewTimetableService(repo, cacheRepo, nil, logr, metricsSvc, svcCfg)
}

func buildExportService(repo *repository.ApprovedScheduleRepository, logr *zap.Logger, cfg *config.Config) *service.ExportService {
	var files *storage.LocalStorage
	if cfg.Exports.Enabled {
		var err error
		files, err = storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Warn("export storage unavailable, async exports disabled", zap.Error(err))
		}
	}

	var svc *service.ExportService
	if repo == nil {
		svc = service.NewExportService(nil, files, logr)
	} else {
		svc = service.NewExportService(repo, files, logr)
	}

	if files != nil {
		svc.Start(context.Background(), jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			Logger:     logr,
		})
		go cleanupExports(files, cfg.Exports.CleanupInterval, logr)
	}
	return svc
}

func cleanupExports(files *storage.LocalStorage, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		deleted, err := files.CleanupOlderThan(interval)
		if err != nil {
			logr.Warn("export cleanup failed", zap.Error(err))
			continue
		}
		if len(deleted) > 0 {
			logr.Info("expired exports removed", zap.Int("count", len(deleted)))
		}
	}
}
