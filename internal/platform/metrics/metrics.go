// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the HTTP surface and
the authentication flows.

Collectors live on a [Metrics] value registered into an injected registry, so
tests get an isolated registry and the server never touches the global one.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "accounts"

// Gate outcomes recorded by [Metrics.ObserveGate].
const (
	GateAdmitted = "admitted"
	GateMissing  = "missing"
	GateInvalid  = "invalid"
	GateExpired  = "expired"
)

// Login outcomes recorded by [Metrics.ObserveLogin].
const (
	LoginSuccess  = "success"
	LoginRejected = "rejected"
	LoginInactive = "inactive"
)

// Metrics owns every collector the service exports.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	gateDecisions *prometheus.CounterVec
	loginAttempts *prometheus.CounterVec
}

// New creates the collectors and registers them, plus the Go and process
// collectors, into a fresh registry.
func New() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_gate_decisions_total",
			Help:      "Authorization gate decisions on private endpoint groups.",
		}, []string{"outcome"}),

		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
	}

	metrics.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.httpInFlight,
		metrics.httpRequestsTotal,
		metrics.httpRequestDuration,
		metrics.gateDecisions,
		metrics.loginAttempts,
	)

	return metrics
}

// Registry returns the underlying registry, mainly for tests.
func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{Registry: metrics.registry})
}

// ObserveGate counts one authorization gate decision. A nil receiver is a no-op.
func (metrics *Metrics) ObserveGate(outcome string) {
	if metrics == nil {
		return
	}
	metrics.gateDecisions.WithLabelValues(outcome).Inc()
}

// ObserveLogin counts one login attempt. A nil receiver is a no-op.
func (metrics *Metrics) ObserveLogin(outcome string) {
	if metrics == nil {
		return
	}
	metrics.loginAttempts.WithLabelValues(outcome).Inc()
}

// Instrument records RPS, latency and in-flight requests.
//
// Requests are labelled with the chi route pattern (e.g. "/api/v1/auth/login")
// rather than the raw path, so the label set stays bounded.
func (metrics *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		metrics.httpInFlight.Inc()
		defer metrics.httpInFlight.Dec()

		start := time.Now()
		recorder := &statusWriter{ResponseWriter: writer, code: http.StatusOK}
		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := strconv.Itoa(recorder.code)
		metrics.httpRequestDuration.WithLabelValues(request.Method, route, status).Observe(time.Since(start).Seconds())
		metrics.httpRequestsTotal.WithLabelValues(request.Method, route, status).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (writer *statusWriter) WriteHeader(code int) {
	writer.code = code
	writer.ResponseWriter.WriteHeader(code)
}
