// Package metrics exposes the service's Prometheus instrumentation. All
// collectors hang off a private registry so tests can build isolated
// instances instead of sharing global state.
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

// Metrics bundles every collector the service registers.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	decisions         *prometheus.CounterVec
	codesIssued       *prometheus.CounterVec
	codeRedemptions   *prometheus.CounterVec
	approvalsResolved *prometheus.CounterVec
}

// New creates a registry with process and Go runtime collectors plus the
// service's own counters.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statuschange_decisions_total",
			Help: "Rules-engine verdicts on requested status changes.",
		}, []string{"outcome"}),
		codesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otp_codes_issued_total",
			Help: "Handoff codes issued, by purpose.",
		}, []string{"purpose"}),
		codeRedemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otp_redemptions_total",
			Help: "Handoff code redemption attempts, by purpose and outcome.",
		}, []string{"purpose", "outcome"}),
		approvalsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "approvals_resolved_total",
			Help: "Administrator review requests resolved, by final state.",
		}, []string{"state"}),
	}

	m.registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
		m.httpRequests,
		m.httpDuration,
		m.decisions,
		m.codesIssued,
		m.codeRedemptions,
		m.approvalsResolved,
	)
	return m
}

// RecordDecision counts one rules-engine verdict.
func (m *Metrics) RecordDecision(outcome string) {
	m.decisions.WithLabelValues(outcome).Inc()
}

// RecordCodeIssued counts one issued handoff code.
func (m *Metrics) RecordCodeIssued(purpose string) {
	m.codesIssued.WithLabelValues(purpose).Inc()
}

// RecordRedemption counts one redemption attempt; outcome is "ok" or
// "rejected".
func (m *Metrics) RecordRedemption(purpose, outcome string) {
	m.codeRedemptions.WithLabelValues(purpose, outcome).Inc()
}

// RecordApprovalResolved counts one resolved review request.
func (m *Metrics) RecordApprovalResolved(state string) {
	m.approvalsResolved.WithLabelValues(state).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts requests and observes latency. The route label uses the
// chi route pattern, read after the handler ran so path parameters stay
// collapsed into placeholders.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
