// Package metrics exposes Prometheus instrumentation for the store, caches,
// Redis client and HTTP layer.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

const namespace = "skillswap"

// Metrics owns a private registry so tests can create independent instances.
type Metrics struct {
	Registry *prometheus.Registry

	ActionsTotal        *prometheus.CounterVec
	PersistFailures     *prometheus.CounterVec
	CacheLookups        *prometheus.CounterVec
	RedisErrors         *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	LoginAttempts       *prometheus.CounterVec
	SwapTransitions     *prometheus.CounterVec
	BroadcastListeners  prometheus.Gauge
	BroadcastsDelivered prometheus.Counter
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		ActionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_actions_total",
			Help:      "State actions applied by the store, by action name.",
		}, []string{"action"}),
		PersistFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_persist_failures_total",
			Help:      "Snapshot writes that failed, by key.",
		}, []string{"key"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and result.",
		}, []string{"cache", "result"}),
		RedisErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redis_errors_total",
			Help:      "Redis command errors by command.",
		}, []string{"command"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		SwapTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swap_transitions_total",
			Help:      "Swap request status changes by target status.",
		}, []string{"status"}),
		BroadcastListeners: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "broadcast_listeners",
			Help:      "Open admin message streams.",
		}),
		BroadcastsDelivered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_delivered_total",
			Help:      "Admin messages delivered to stream listeners.",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ActionDispatched(name string) {
	m.ActionsTotal.WithLabelValues(name).Inc()
}

func (m *Metrics) PersistFailed(key string) {
	m.PersistFailures.WithLabelValues(key).Inc()
}

func (m *Metrics) Hit(cache string) {
	m.CacheLookups.WithLabelValues(cache, "hit").Inc()
}

func (m *Metrics) Miss(cache string) {
	m.CacheLookups.WithLabelValues(cache, "miss").Inc()
}

func (m *Metrics) LoginAttempt(outcome string) {
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SwapTransition(status string) {
	m.SwapTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) ListenerAdded()   { m.BroadcastListeners.Inc() }
func (m *Metrics) ListenerRemoved() { m.BroadcastListeners.Dec() }
func (m *Metrics) Delivered()       { m.BroadcastsDelivered.Inc() }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Instrument wraps next and records its count and latency under route.
func (m *Metrics) Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RedisHook returns a go-redis hook counting failed commands.
func (m *Metrics) RedisHook() goredis.Hook {
	return redisHook{m: m}
}

type redisHook struct {
	m *Metrics
}

func (h redisHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return next
}

func (h redisHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, goredis.Nil) {
			h.m.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h redisHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, goredis.Nil) {
			h.m.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}
