// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/accounts/internal/platform/metrics"
)

func TestInstrument_LabelsByRoutePattern(t *testing.T) {
	collectors := metrics.New()

	router := chi.NewRouter()
	router.Use(collectors.Instrument)
	router.Get("/users/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/users/1", "/users/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	recorder := httptest.NewRecorder()
	collectors.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, `accounts_http_requests_total{method="GET",route="/users/{id}",status="418"} 2`)
	assert.NotContains(t, body, `route="/users/1"`)
}

func TestObserveCounters(t *testing.T) {
	collectors := metrics.New()

	collectors.ObserveGate(metrics.GateAdmitted)
	collectors.ObserveGate(metrics.GateMissing)
	collectors.ObserveGate(metrics.GateMissing)
	collectors.ObserveLogin(metrics.LoginSuccess)

	count, err := testutil.GatherAndCount(collectors.Registry(), "accounts_auth_gate_decisions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var unset *metrics.Metrics
	assert.NotPanics(t, func() {
		unset.ObserveGate(metrics.GateInvalid)
		unset.ObserveLogin(metrics.LoginRejected)
	})
}
