// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/accounts/internal/api"
	"github.com/taibuivan/accounts/internal/platform/config"
	"github.com/taibuivan/accounts/internal/platform/metrics"
	"github.com/taibuivan/accounts/internal/platform/respond"
	"github.com/taibuivan/accounts/internal/platform/routes"
	"github.com/taibuivan/accounts/internal/platform/sec"
)

func echo(body string) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		respond.Message(writer, body)
	})
}

type fixture struct {
	handler http.Handler
	tokens  *sec.TokenService
}

func newFixture(t *testing.T, environment string, health api.HealthDependencies) fixture {
	t.Helper()

	tokens, err := sec.NewTokenService("server-secret", "accounts.test", time.Hour)
	require.NoError(t, err)

	registry := routes.NewRegistry()
	registry.Register(routes.Group{Name: "open", Visibility: routes.Public, Handler: echo("public")})
	registry.Register(routes.Group{Name: "closed", Visibility: routes.Private, Handler: echo("private")})
	groups, err := registry.Classify()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx,
		&config.Config{ServerPort: "0", Environment: environment},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		api.Dependencies{Groups: groups, Verifier: tokens, Metrics: metrics.New(), Health: health},
	)
	return fixture{handler: server.Handler(), tokens: tokens}
}

func (f fixture) do(method, path, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, nil)
	request.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_Gate verifies that only private groups sit behind the authorization gate.
*/
func TestServer_Gate(t *testing.T) {
	f := newFixture(t, "development", api.HealthDependencies{})

	token, err := f.tokens.Issue(sec.Identity{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)

	// 1. Public group needs no token
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/open", "").Code)

	// 2. Private group refuses anonymous and garbage tokens
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/closed", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/closed", "garbage").Code)

	// 3. Private group admits a verified token
	admitted := f.do(http.MethodGet, "/api/v1/closed", token)
	assert.Equal(t, http.StatusOK, admitted.Code)
	assert.Contains(t, admitted.Body.String(), "private")

	// 4. Gate decisions are exported
	exported := f.do(http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, exported, `accounts_auth_gate_decisions_total{outcome="admitted"} 1`)
	assert.Contains(t, exported, `accounts_auth_gate_decisions_total{outcome="missing"} 1`)
}

/*
TestServer_Probes covers liveness, readiness and the development heartbeat.
*/
func TestServer_Probes(t *testing.T) {
	healthy := newFixture(t, "development", api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return nil },
	})
	assert.Equal(t, http.StatusOK, healthy.do(http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, healthy.do(http.MethodGet, "/ready", "").Code)

	heartbeat := healthy.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, heartbeat.Code)
	assert.True(t, strings.Contains(heartbeat.Body.String(), `"uptime"`))

	degraded := newFixture(t, "production", api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("redis down") },
	})
	ready := degraded.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
	assert.Contains(t, ready.Body.String(), "degraded")

	assert.Equal(t, http.StatusNotFound, degraded.do(http.MethodGet, "/", "").Code)
}
