// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and the
classified endpoint groups into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - Public groups are mounted as-is under /api/v1/{name}.
  - Private groups are mounted behind the authorization gate, so no private
    handler can be reached without a verified token.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/accounts/internal/platform/config"
	"github.com/taibuivan/accounts/internal/platform/constants"
	"github.com/taibuivan/accounts/internal/platform/metrics"
	"github.com/taibuivan/accounts/internal/platform/middleware"
	"github.com/taibuivan/accounts/internal/platform/routes"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Dependencies groups what the router needs besides configuration.
type Dependencies struct {
	// Groups is the classified endpoint table.
	Groups routes.Classification

	// Verifier checks bearer tokens on private groups.
	Verifier middleware.TokenVerifier

	// Metrics records request and gate outcomes. Required.
	Metrics *metrics.Metrics

	// Health probes used by /ready.
	Health HealthDependencies
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// mounts every classified group.
//
// context bounds background work owned by the middleware (rate limiter janitor).
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies) *Server {
	r := chi.NewRouter()
	health := newHealthHandler(deps.Health, log)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(chimw.CleanPath)
	r.Use(deps.Metrics.Instrument)

	// # Infrastructure Endpoints
	r.Get("/health", health.liveness)
	r.Get("/ready", health.readiness)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	if !cfg.IsProduction() {
		r.Get("/", health.heartbeat)
	}

	// # Application API
	gate := middleware.RequireToken(deps.Verifier, deps.Metrics)
	r.Route("/api/v1", func(api chi.Router) {
		for _, group := range deps.Groups.Public {
			api.Mount("/"+group.Name, group.Handler)
		}
		for _, group := range deps.Groups.Private {
			api.Mount("/"+group.Name, gate(group.Handler))
		}
	})

	log.Info("routes_mounted",
		slog.Int("public_groups", len(deps.Groups.Public)),
		slog.Int("private_groups", len(deps.Groups.Private)),
	)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the root router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
