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
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/scholarsync-api/api/swagger"
	"github.com/noah-isme/scholarsync-api/internal/handler"
	"github.com/noah-isme/scholarsync-api/internal/middleware"
	"github.com/noah-isme/scholarsync-api/internal/repository"
	"github.com/noah-isme/scholarsync-api/internal/seed"
	"github.com/noah-isme/scholarsync-api/internal/service"
	"github.com/noah-isme/scholarsync-api/pkg/cache"
	"github.com/noah-isme/scholarsync-api/pkg/config"
	"github.com/noah-isme/scholarsync-api/pkg/gemini"
	"github.com/noah-isme/scholarsync-api/pkg/jobs"
	"github.com/noah-isme/scholarsync-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/scholarsync-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/scholarsync-api/pkg/middleware/requestid"
	"github.com/noah-isme/scholarsync-api/pkg/storage"
)

// @title ScholarSync Portal API
// @version 1.0.0
// @description Student and faculty portal: schedule, announcements, courses, performance and AI insights.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey RoleSession
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

	validate := service.NewValidator()
	metrics := service.NewMetricsService()
	loc := cfg.Location()
	data := seed.Build(time.Now().In(loc))

	cacheRepo, backend, closeCache := buildCache(cfg, logr)
	defer closeCache()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, backend)

	generator := gemini.New(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	})
	if !generator.Configured() {
		logr.Warn("GEMINI_API_KEY not set, generated text will use fallbacks")
	}
	insights := service.NewInsightService(generator, cacheSvc, metrics, cfg.Cache.TTL, logr)

	files, err := storage.NewLocalStorage(cfg.Materials.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare material storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Materials.SignedURLSecret, cfg.Materials.SignedURLTTL)

	sessions := service.NewSessionService(service.SessionConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Issuer: cfg.Session.Issuer,
	}, validate, logr)
	schedule := service.NewScheduleService(repository.NewEventRepository(data.Events), loc, validate, logr)
	announcements := service.NewAnnouncementService(repository.NewAnnouncementRepository(data.Announcements), insights, validate, logr)
	exports := service.NewExportService(nil, nil, nil, logr)
	courses := service.NewCourseService(service.CourseServiceParams{
		Repo:         repository.NewCourseRepository(data.Courses, data.Materials, data.Feedback),
		Storage:      files,
		Signer:       signer,
		Advisor:      insights,
		Validator:    validate,
		Logger:       logr,
		DownloadPath: cfg.APIPrefix + "/materials/download",
		MaxFileSize:  cfg.Materials.MaxFileSizeBytes,
	})
	performance := service.NewPerformanceService(repository.NewStudentRepository(data.Students), insights, exports, validate, logr)
	preferences := service.NewPreferenceService(repository.NewPreferenceRepository(), validate, logr)

	integrations := service.NewIntegrationService(repository.NewPortalRepository(data.Portals), service.IntegrationConfig{
		CalendarDelay: cfg.Sync.CalendarDelay,
		ConnectDelay:  cfg.Sync.ConnectDelay,
		SyncedHold:    cfg.Sync.SyncedHold,
	}, metrics, logr)
	queue := jobs.NewQueue("integrations", integrations.Router().Handle, jobs.QueueConfig{
		Workers:    integrations.QueueWorkers(context.Background(), cfg.Sync.Workers),
		MaxRetries: -1,
		Logger:     logr,
	})
	queue.Start(context.Background())
	integrations.AttachQueue(queue)

	dashboard := service.NewDashboardService(service.DashboardServiceParams{
		Schedule:      schedule,
		Announcements: announcements,
		Tips:          insights,
		Courses:       courses,
		Students:      performance,
		Stats:         seed.StudentStats,
		Logger:        logr,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	ops := handler.NewMetricsHandler(metrics, queue.Running)
	r.GET("/metrics", ops.Prometheus)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := handler.Handlers{
		Session:       handler.NewSessionHandler(sessions, service.NewNavigationService()),
		Schedule:      handler.NewScheduleHandler(schedule, integrations, exports),
		Announcements: handler.NewAnnouncementHandler(announcements),
		Courses:       handler.NewCourseHandler(courses, cfg.Materials.MaxFileSizeBytes),
		Performance:   handler.NewPerformanceHandler(performance),
		Dashboard:     handler.NewDashboardHandler(dashboard),
		Settings:      handler.NewSettingsHandler(integrations, preferences),
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	handlers.Register(r.Group(cfg.APIPrefix), middleware.RoleContext(sessions), middleware.RateLimit(limiter))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "cache", backend, "model", generator.Model(), "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	queue.Stop()
}

// buildCache prefers Redis when enabled and reachable, else the in-process cache.
func buildCache(cfg *config.Config, logr *zap.Logger) (service.CacheRepository, string, func()) {
	client, err := cache.Connect(context.Background(), cfg.Redis)
	if err == nil {
		repo := repository.NewCacheRepository(client, "scholarsync", logr)
		return repo, "redis", func() { _ = repo.Close() }
	}
	if !errors.Is(err, cache.ErrDisabled) {
		logr.Warn("redis unavailable, using in-memory cache", zap.Error(err))
	}
	return repository.NewMemoryCacheRepository(cfg.Cache.TTL), "memory", func() {}
}
