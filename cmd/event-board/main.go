package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/event-board/api/swagger"
	"github.com/noah-isme/event-board/internal/handler"
	internalmiddleware "github.com/noah-isme/event-board/internal/middleware"
	"github.com/noah-isme/event-board/internal/repository"
	"github.com/noah-isme/event-board/internal/service"
	"github.com/noah-isme/event-board/pkg/cache"
	"github.com/noah-isme/event-board/pkg/config"
	"github.com/noah-isme/event-board/pkg/logger"
	corsmiddleware "github.com/noah-isme/event-board/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/event-board/pkg/middleware/requestid"
	"github.com/noah-isme/event-board/pkg/server"
	"github.com/noah-isme/event-board/web"
)

// @title Event Board
// @version 1.0.0
// @description Server rendered event management pages over the events REST API
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	checks := map[string]handler.ReadinessCheck{}

	var sessionRepo service.CacheRepository
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		redisRepo := repository.NewCacheRepository(client, logr)
		defer redisRepo.Close() //nolint:errcheck
		sessionRepo = redisRepo
		checks["redis"] = cache.Pinger(client)
	default:
		sessionRepo = repository.NewMemoryCacheRepository()
	}

	metricsSvc := service.NewMetricsService()
	eventsAPI := repository.NewEventsAPIRepository(cfg.EventsAPI, metricsSvc, logr)
	checks["events_api"] = func(ctx context.Context) error {
		_, err := eventsAPI.ListCategories(ctx)
		return err
	}

	notifier := service.NewNotifier(cfg.Notifications.Duration)
	formatter, err := service.NewDisplayFormatter(cfg.Display.TimeZone)
	if err != nil {
		logr.Fatal("invalid display time zone", zap.String("zone", cfg.Display.TimeZone), zap.Error(err))
	}
	templates, err := web.Templates(formatter)
	if err != nil {
		logr.Fatal("failed to parse templates", zap.Error(err))
	}

	loaderSvc := service.NewLoaderService(eventsAPI, notifier, logr)
	validate, err := service.NewEventValidator()
	if err != nil {
		logr.Fatal("failed to build validator", zap.Error(err))
	}
	mutationSvc, err := service.NewMutationService(eventsAPI, validate, notifier, metricsSvc, logr)
	if err != nil {
		logr.Fatal("failed to build mutation service", zap.Error(err))
	}
	sessionSvc := service.NewSessionService(sessionRepo, metricsSvc, cfg.Session.TTL, logr)
	exportSvc := service.NewExportService(formatter, logr, nil, nil)

	eventsHandler := handler.NewEventsHandler(loaderSvc, mutationSvc, sessionSvc, exportSvc, notifier, logr)
	eventHandler := handler.NewEventHandler(loaderSvc, mutationSvc, sessionSvc, notifier, logr)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)

	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	handler.RegisterOpsRoutes(r, metricsHandler, cfg.Metrics.Enabled)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	pages := r.Group("/")
	pages.Use(internalmiddleware.Session(cfg.Session.CookieName, cfg.Session.TTL, cfg.Env == config.EnvProduction))
	handler.RegisterPageRoutes(pages, eventsHandler, eventHandler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("event board configured",
		zap.String("env", cfg.Env),
		zap.String("events_api", cfg.EventsAPI.BaseURL),
		zap.String("session_store", cfg.Session.Store),
	)
	if err := server.Run(ctx, addr, r, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
