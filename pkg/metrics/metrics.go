// Package metrics exports talentmap activity as Prometheus metrics.
//
// A [Manager] implements the observability hook interfaces; main registers
// it once and serves [Manager.Handler] on /metrics:
//
//	m := metrics.NewManager()
//	m.Register()
//	router.Handle("/metrics", m.Handler())
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/observability"
	"github.com/matzehuels/talentmap/pkg/palette"
)

// Manager owns a registry and the collectors registered on it.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry
	runtime   bool

	// categories are the filter values kept as label values; others
	// are counted as "other".
	categories map[string]bool

	fetches         *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
	snapshotEntries prometheus.Gauge

	layouts        *prometheus.CounterVec
	layoutDuration prometheus.Histogram
	renderDuration *prometheus.HistogramVec
	renders        *prometheus.CounterVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	clientRequests *prometheus.CounterVec
	clientDuration *prometheus.HistogramVec
	clientErrors   *prometheus.CounterVec

	serverRequests *prometheus.CounterVec
	serverDuration *prometheus.HistogramVec
}

// Option configures a [Manager].
type Option func(*Manager)

// WithNamespace sets the metric namespace (default "talentmap").
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets the latency buckets, in seconds.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRegistry registers collectors on r instead of a fresh registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(m *Manager) { m.runtime = true }
}

// WithCategories sets the category filters recorded by name on layout
// metrics (default: the default palette's categories). Every other filter
// value is recorded as "other", so clients cannot grow the series count.
func WithCategories(categories ...string) Option {
	return func(m *Manager) {
		m.categories = knownCategories(categories)
	}
}

func knownCategories(categories []string) map[string]bool {
	known := map[string]bool{distribution.All: true}
	for _, c := range categories {
		known[c] = true
	}
	return known
}

// categoryLabel bounds the category label to the known set.
func (m *Manager) categoryLabel(category string) string {
	if m.categories[category] {
		return category
	}
	return "other"
}

// NewManager creates a manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "talentmap",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),

		categories: knownCategories(palette.Default().Categories()),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "snapshot", Name: "fetches_total",
		Help: "Snapshot fetches by outcome.",
	}, []string{"outcome"})
	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "snapshot", Name: "fetch_duration_seconds",
		Help: "Time to obtain a snapshot, cached or not.", Buckets: m.buckets,
	})
	m.snapshotEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "snapshot", Name: "entries",
		Help: "Skills plus languages in the last fetched snapshot.",
	})

	m.layouts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "layout", Name: "computed_total",
		Help: "Layouts computed, by category filter.",
	}, []string{"category"})
	m.layoutDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "layout", Name: "duration_seconds",
		Help: "Layout computation time.", Buckets: m.buckets,
	})
	m.renders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "render", Name: "runs_total",
		Help: "Render runs by format and outcome.",
	}, []string{"format", "outcome"})
	m.renderDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "render", Name: "duration_seconds",
		Help: "Render time per requested format set.", Buckets: m.buckets,
	}, []string{"outcome"})

	m.cacheHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "cache", Name: "hits_total",
		Help: "Cache hits by key type.",
	}, []string{"key_type"})
	m.cacheMisses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "cache", Name: "misses_total",
		Help: "Cache misses by key type.",
	}, []string{"key_type"})
	m.cacheBytes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "cache", Name: "written_bytes_total",
		Help: "Bytes written to the cache by key type.",
	}, []string{"key_type"})

	m.clientRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "api_client", Name: "responses_total",
		Help: "Responses received from upstream APIs.",
	}, []string{"host", "code"})
	m.clientDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "api_client", Name: "request_duration_seconds",
		Help: "Upstream API latency.", Buckets: m.buckets,
	}, []string{"host"})
	m.clientErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "api_client", Name: "errors_total",
		Help: "Upstream requests that failed without a response.",
	}, []string{"host"})

	m.serverRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http", Name: "requests_total",
		Help: "HTTP requests served, by route and status.",
	}, []string{"method", "route", "code"})
	m.serverDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http", Name: "request_duration_seconds",
		Help: "HTTP request latency by route.", Buckets: m.buckets,
	}, []string{"method", "route"})
}

// Register installs the manager as the global pipeline, cache and HTTP hooks.
func (m *Manager) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Registry returns the registry holding the manager's collectors.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request. route is the matched
// route pattern, not the raw path.
func (m *Manager) ObserveRequest(method, route string, status int, d time.Duration) {
	m.serverRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.serverDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Manager) OnFetchStart(context.Context, string) {}

func (m *Manager) OnFetchComplete(_ context.Context, _ string, entries int, d time.Duration, err error) {
	m.fetchDuration.Observe(d.Seconds())
	if err != nil {
		m.fetches.WithLabelValues("error").Inc()
		return
	}
	m.fetches.WithLabelValues("ok").Inc()
	m.snapshotEntries.Set(float64(entries))
}

func (m *Manager) OnLayoutStart(context.Context, string, int) {}

func (m *Manager) OnLayoutComplete(_ context.Context, category string, d time.Duration) {
	m.layouts.WithLabelValues(m.categoryLabel(category)).Inc()
	m.layoutDuration.Observe(d.Seconds())
}

func (m *Manager) OnRenderStart(context.Context, []string) {}

func (m *Manager) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	outcome := outcomeOf(err)
	m.renderDuration.WithLabelValues(outcome).Observe(d.Seconds())
	for _, f := range formats {
		m.renders.WithLabelValues(f, outcome).Inc()
	}
}

func (m *Manager) OnCacheHit(_ context.Context, keyType string) {
	m.cacheHits.WithLabelValues(keyType).Inc()
}

func (m *Manager) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheMisses.WithLabelValues(keyType).Inc()
}

func (m *Manager) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Manager) OnRequest(context.Context, string, string, string) {}

func (m *Manager) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	m.clientRequests.WithLabelValues(host, strconv.Itoa(status)).Inc()
	m.clientDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (m *Manager) OnError(_ context.Context, _, host, _ string, _ error) {
	m.clientErrors.WithLabelValues(host).Inc()
}

func outcomeOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ observability.PipelineHooks = (*Manager)(nil)
	_ observability.CacheHooks    = (*Manager)(nil)
	_ observability.HTTPHooks     = (*Manager)(nil)
)
