package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the UI server.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	sessionLookups   *prometheus.CounterVec
	sessionLatency   prometheus.Observer
	mutations        *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "events_api_request_duration_seconds",
		Help:    "Duration of calls to the events REST API",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	upstreamTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "events_api_requests_total",
		Help: "Total calls to the events REST API",
	}, []string{"method", "endpoint", "status"})

	sessionLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "session_state_lookups_total",
		Help: "Session page state lookups by result",
	}, []string{"result"})

	sessionLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "session_state_latency_seconds",
		Help:    "Latency for session state reads",
		Buckets: prometheus.DefBuckets,
	})

	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_mutations_total",
		Help: "Event create/update/delete attempts by outcome",
	}, []string{"action", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, upstreamTotal, sessionLookups, sessionLatency, mutations, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:         registry,
		handler:          handler,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		upstreamTotal:    upstreamTotal,
		sessionLookups:   sessionLookups,
		sessionLatency:   sessionLatency,
		mutations:        mutations,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records served request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveUpstreamRequest records a call made to the events API.
func (m *MetricsService) ObserveUpstreamRequest(method, endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.upstreamDuration.WithLabelValues(method, endpoint, labelStatus).Observe(duration.Seconds())
	m.upstreamTotal.WithLabelValues(method, endpoint, labelStatus).Inc()
}

// RecordSessionLookup records whether a session state read found state.
func (m *MetricsService) RecordSessionLookup(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.sessionLookups.WithLabelValues(result).Inc()
	m.sessionLatency.Observe(duration.Seconds())
}

// RecordMutation counts a mutation attempt.
func (m *MetricsService) RecordMutation(action string, success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.mutations.WithLabelValues(action, outcome).Inc()
}
