// CampusOps API entry point: loads configuration, connects MongoDB and
// Redis, seeds the demo club accounts, starts the archive workers, and
// serves the HTTP API until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusops/api/internal/api"
	"github.com/campusops/api/internal/core/ports"
	"github.com/campusops/api/internal/core/service"
	"github.com/campusops/api/internal/infrastructure/ai"
	"github.com/campusops/api/internal/infrastructure/config"
	mongodb "github.com/campusops/api/internal/infrastructure/db/mongo"
	redisdb "github.com/campusops/api/internal/infrastructure/db/redis"
	"github.com/campusops/api/internal/infrastructure/queue"
	"github.com/campusops/api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	clubRepo := mongodb.NewClubRepository(db)
	entityRepo := mongodb.NewEntityRepository(db)
	if err := clubRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("club index creation failed")
	}
	if err := entityRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("entity index creation failed")
	}

	// --- Demo accounts ---
	authService := service.NewAuthService(clubRepo, cfg.JWTSecret, 24*time.Hour)
	if err := authService.EnsureDemoClubs(ctx); err != nil {
		log.Fatal().Err(err).Msg("demo club seeding failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Gemini (optional) ---
	var textGen ports.TextGenerator
	var vision ports.VisionAnalyzer
	if cfg.Gemini.APIKey != "" {
		gem, err := ai.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.VisionModel)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client creation failed")
		}
		textGen = gem
		vision = gem
		log.Info().Str("model", cfg.Gemini.Model).Msg("gemini generation enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, AI endpoints will answer 503")
	}

	// --- Archive workers ---
	dispatcher := queue.NewDispatcher(cfg.ArchiveWorkers, mongodb.NewArchiveRepository(db), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		TextGen:   textGen,
		Vision:    vision,
		Archiver:  dispatcher,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("campusops api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
