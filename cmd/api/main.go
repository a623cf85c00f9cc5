// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

// Command api is the entry point for the Acadia HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davitran/acadia/internal/api"
	"github.com/davitran/acadia/internal/catalog/attachment"
	"github.com/davitran/acadia/internal/catalog/category"
	"github.com/davitran/acadia/internal/catalog/chapter"
	"github.com/davitran/acadia/internal/catalog/course"
	"github.com/davitran/acadia/internal/commerce/analytics"
	"github.com/davitran/acadia/internal/commerce/purchase"
	"github.com/davitran/acadia/internal/learning/progress"
	"github.com/davitran/acadia/internal/platform/config"
	"github.com/davitran/acadia/internal/platform/constants"
	"github.com/davitran/acadia/internal/platform/migration"
	pgstore "github.com/davitran/acadia/internal/platform/postgres"
	redisstore "github.com/davitran/acadia/internal/platform/redis"
	"github.com/davitran/acadia/internal/platform/sec"
	"github.com/davitran/acadia/internal/platform/videohost"
	"github.com/davitran/acadia/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Acadia] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security & Collaborators ───────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	teacherPolicy := sec.NewAllowListTeacherPolicy(cfg.TeacherIDs)
	videoClient := videohost.NewClient(cfg.VideoHostBaseURL, cfg.VideoHostTokenID, cfg.VideoHostTokenSecret)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	// Progress is wired first because course discovery reads completion
	// percentages through it.
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	categoryRepository := category.NewRepository(pool)
	categoryService := category.NewService(categoryRepository)
	categoryHandler := category.NewHandler(categoryService)

	progressRepository := progress.NewRepository(pool)
	progressService := progress.NewService(progressRepository, log)
	progressHandler := progress.NewHandler(progressService)

	courseRepository := course.NewRepository(pool)
	courseService := course.NewService(courseRepository, teacherPolicy, videoClient, progressService, log)
	courseHandler := course.NewHandler(courseService)

	chapterRepository := chapter.NewRepository(pool)
	chapterService := chapter.NewService(chapterRepository, videoClient, log)
	chapterHandler := chapter.NewHandler(chapterService)

	attachmentRepository := attachment.NewRepository(pool)
	attachmentService := attachment.NewService(attachmentRepository, log)
	attachmentHandler := attachment.NewHandler(attachmentService)

	purchaseRepository := purchase.NewRepository(pool)
	purchaseService := purchase.NewService(purchaseRepository, log)
	purchaseHandler := purchase.NewHandler(purchaseService)

	analyticsRepository := analytics.NewRepository(pool)
	analyticsService := analytics.NewService(analyticsRepository, log)
	analyticsHandler := analytics.NewHandler(analyticsService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler,
		Category:   categoryHandler,
		Course:     courseHandler,
		Chapter:    chapterHandler,
		Attachment: attachmentHandler,
		Progress:   progressHandler,
		Purchase:   purchaseHandler,
		Analytics:  analyticsHandler,
	}

	// Lifetime context for background middleware routines (rate limiter cleanup).
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
