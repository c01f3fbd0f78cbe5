// Package metrics exposes the Prometheus collectors of the ticker service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sync results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Config is the metrics naming config.
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig returns the default naming config.
func DefaultConfig() Config {
	return Config{
		Namespace: "hodlinfo",
		Subsystem: "tickers",
	}
}

// Metrics holds the collectors on a private registry. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	syncTotal     *prometheus.CounterVec
	syncDuration  prometheus.Histogram
	tickersStored prometheus.Gauge
	lastSyncedAt  prometheus.Gauge
	publishErrors prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them with a fresh registry.
func New(cfg Config) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		syncTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "sync_total",
			Help:      "Number of fetch-and-store runs by result.",
		}, []string{"result"}),
		syncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "sync_duration_seconds",
			Help:      "Duration of fetch-and-store runs.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		tickersStored: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "stored",
			Help:      "Number of tickers stored by the last successful sync.",
		}),
		lastSyncedAt: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "last_sync_timestamp_seconds",
			Help:      "Unix time of the last successful sync.",
		}),
		publishErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "publish_errors_total",
			Help:      "Number of sync events that could not be published.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveSync records a finished sync. stored is ignored on failure.
func (m *Metrics) ObserveSync(result string, duration time.Duration, stored int, syncedAt time.Time) {
	if m == nil {
		return
	}

	m.syncTotal.WithLabelValues(result).Inc()
	m.syncDuration.Observe(duration.Seconds())

	if result == ResultSuccess {
		m.tickersStored.Set(float64(stored))
		m.lastSyncedAt.Set(float64(syncedAt.Unix()))
	}
}

// IncPublishErrors counts a failed sync event publish.
func (m *Metrics) IncPublishErrors() {
	if m == nil {
		return
	}
	m.publishErrors.Inc()
}

// ObserveHTTP records a served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the exposition handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
