package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/event-board/internal/backend"
	"github.com/noah-isme/event-board/pkg/config"
	"github.com/noah-isme/event-board/pkg/database"
	"github.com/noah-isme/event-board/pkg/logger"
	corsmiddleware "github.com/noah-isme/event-board/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/event-board/pkg/middleware/requestid"
	"github.com/noah-isme/event-board/pkg/server"
)

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

	seed, err := backend.LoadSeed(cfg.Backend.SeedFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logr.Fatal("failed to load seed", zap.String("file", cfg.Backend.SeedFile), zap.Error(err))
		}
		logr.Warn("seed file not found, starting empty", zap.String("file", cfg.Backend.SeedFile))
		seed = nil
	}

	var store backend.Store
	switch cfg.Backend.Storage {
	case config.BackendStoragePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer db.Close()

		pgStore := backend.NewPostgresStore(db)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			logr.Fatal("failed to prepare schema", zap.Error(err))
		}
		if err := pgStore.Seed(ctx, seed); err != nil {
			logr.Fatal("failed to seed database", zap.Error(err))
		}
		store = pgStore
	default:
		store = backend.NewMemoryStore(seed)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	backend.NewHandler(store, logr).Register(r)

	addr := fmt.Sprintf(":%d", cfg.Backend.Port)
	logr.Info("events api configured", zap.String("storage", cfg.Backend.Storage), zap.String("seed", cfg.Backend.SeedFile))
	if err := server.Run(ctx, addr, r, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
