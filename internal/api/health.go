// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/taibuivan/accounts/internal/platform/constants"
	"github.com/taibuivan/accounts/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(context.Context) error

	// CheckCache pings the Redis client.
	CheckCache func(context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
	startedAt    time.Time
}

func newHealthHandler(deps HealthDependencies, logger *slog.Logger) *healthHandler {
	return &healthHandler{dependencies: deps, logger: logger, startedAt: time.Now()}
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 2)
	isSystemReady := true

	check := func(name string, probe func(context.Context) error) {
		if probe == nil {
			return
		}
		result := checkResult{Name: name, IsOK: true}
		if err := probe(request.Context()); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	check("postgres", handler.dependencies.CheckDatabase)
	check("redis", handler.dependencies.CheckCache)

	responseStatus := "ready"
	httpStatus := http.StatusOK
	if !isSystemReady {
		responseStatus = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{
		Type: constants.TypeSuccess,
		Data: map[string]any{
			constants.FieldStatus: responseStatus,
			constants.FieldChecks: results,
		},
	})
}

// heartbeat handles GET / outside production with basic process facts.
func (handler *healthHandler) heartbeat(writer http.ResponseWriter, request *http.Request) {
	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	respond.OK(writer, map[string]any{
		"app":      constants.AppName,
		"version":  constants.AppVersion,
		"uptime":   time.Since(handler.startedAt).Round(time.Second).String(),
		"pid":      os.Getpid(),
		"platform": runtime.GOOS + "/" + runtime.GOARCH,
		"cpus":     runtime.NumCPU(),
		"memory": map[string]uint64{
			"alloc_bytes": memory.Alloc,
			"sys_bytes":   memory.Sys,
		},
		"goroutines": runtime.NumGoroutine(),
	})
}
