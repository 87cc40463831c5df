package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/mentormind-api/internal/handler"
	"github.com/noah-isme/mentormind-api/internal/repository"
	"github.com/noah-isme/mentormind-api/internal/router"
	"github.com/noah-isme/mentormind-api/internal/service"
	"github.com/noah-isme/mentormind-api/pkg/cache"
	"github.com/noah-isme/mentormind-api/pkg/config"
	"github.com/noah-isme/mentormind-api/pkg/database"
	"github.com/noah-isme/mentormind-api/pkg/export"
	"github.com/noah-isme/mentormind-api/pkg/logger"
	"github.com/noah-isme/mentormind-api/pkg/validation"
)

// @title MentorMind API
// @version 1.0.0
// @description Teacher portal backend: classes, rosters, assignments and class engagement metrics.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		// the metrics cache is optional; serve uncached rather than refuse to start
		logr.Warn("redis unavailable, metrics cache disabled", zap.Error(err))
		redisClient = nil
	}

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Metrics.CacheTTL, logr, cfg.Metrics.CacheEnabled && redisClient != nil)
	validator := validation.New()

	authSvc := service.NewAuthService(userRepo, validator, logr, metricsSvc, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	classSvc := service.NewClassService(classRepo, studentRepo, logr)
	classMetricsSvc := service.NewClassMetricsService(classRepo, studentRepo, cacheSvc, metricsSvc, cfg.Metrics.CacheTTL, logr)
	assignmentSvc := service.NewAssignmentService(classRepo, userRepo, cacheSvc, metricsSvc, validator, logr)
	exportSvc := service.NewExportService(classMetricsSvc, logr, export.NewCSVExporter(), export.NewPDFExporter())

	engine := router.New(router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		HSTS:           cfg.Env == config.EnvProduction,
		Logger:         logr,
		Metrics:        metricsSvc,
		Tokens:         authSvc,
	}, router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, validator),
		Class:      handler.NewClassHandler(classSvc, classMetricsSvc, exportSvc),
		Assignment: handler.NewAssignmentHandler(assignmentSvc, validator),
		Health:     handler.NewHealthHandler(db, metricsSvc, logr),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	logr.Info("server stopped")
}
