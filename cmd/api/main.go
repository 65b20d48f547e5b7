// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the accounts HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations (idempotent).
//  5. Register endpoint groups and classify them.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/accounts/internal/api"
	"github.com/taibuivan/accounts/internal/platform/config"
	"github.com/taibuivan/accounts/internal/platform/constants"
	"github.com/taibuivan/accounts/internal/platform/metrics"
	"github.com/taibuivan/accounts/internal/platform/migration"
	pgstore "github.com/taibuivan/accounts/internal/platform/postgres"
	redisstore "github.com/taibuivan/accounts/internal/platform/redis"
	"github.com/taibuivan/accounts/internal/platform/routes"
	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/internal/platform/tasks"
	"github.com/taibuivan/accounts/internal/users/auth"
	"github.com/taibuivan/accounts/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		level.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Misconfiguration should fail fast rather than hang.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log, cfg.Debug), "run migrations")

	// ── 5. Shared services ────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.TokenTTL)
	must(log, err, "initialize token service")

	telemetry := metrics.New()
	runner := tasks.NewRunner(log, constants.BackgroundTaskLimit, constants.BackgroundTaskTimeout)

	// ── 6. Domain wiring ──────────────────────────────────────────────────
	credentials := auth.NewCredentials(auth.NewUserRepository(pool), sec.NewPasswordHasher(cfg.BcryptCost))
	authService := auth.NewService(credentials, auth.NewResetTokenRepository(rdb), tokens, runner, telemetry)
	profileService := profile.NewService(profile.NewRepository(pool))

	registry := routes.NewRegistry()
	auth.NewHandler(authService, cfg.ExposeResetToken).Register(registry)
	profile.NewHandler(profileService).Register(registry)

	groups, err := registry.Classify()
	must(log, err, "classify endpoint groups")

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, api.Dependencies{
		Groups:   groups,
		Verifier: tokens,
		Metrics:  telemetry,
		Health: api.HealthDependencies{
			CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
			CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		},
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	exitCode := 0
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		exitCode = 1
	}

	// Let queued last-login writes finish before the pool closes.
	drainCtx, drainCancel := context.WithTimeout(context.Background(), constants.BackgroundTaskTimeout)
	if err := runner.Close(drainCtx); err != nil {
		log.Warn("background_tasks_abandoned", slog.Any("error", err))
	}
	drainCancel()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Startup wiring only. After startup, errors are returned and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
