// Package metric provides Prometheus metrics for flowlog.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flowlog"

// Drop reasons reported by IncDropped.
const (
	DropPrivate     = "private"
	DropRateLimited = "rate_limited"
)

// Registry holds all logger metrics. A nil *Registry is valid and records
// nothing.
type Registry struct {
	registry *prometheus.Registry

	EntriesTotal   *prometheus.CounterVec
	EntriesDropped *prometheus.CounterVec
	FieldsRedacted prometheus.Counter
	MetricValue    *prometheus.GaugeVec
}

// NewRegistry creates a registry with Go runtime and process collectors
// already registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		EntriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_total",
			Help:      "Log entries written, by level.",
		}, []string{"level"}),
		EntriesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_dropped_total",
			Help:      "Log entries discarded before writing, by reason.",
		}, []string{"reason"}),
		FieldsRedacted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fields_redacted_total",
			Help:      "Fields replaced by the redaction mask.",
		}),
		MetricValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "metric_value",
			Help:      "Last value reported through Logger.Metric, by message key.",
		}, []string{"message_key"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.EntriesTotal,
		r.EntriesDropped,
		r.FieldsRedacted,
		r.MetricValue,
	)
	return r
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler returns an HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// Handler returns an HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Register adds an extra collector to the registry.
func (r *Registry) Register(c prometheus.Collector) error {
	if r == nil {
		return nil
	}
	return r.registry.Register(c)
}

// IncEntry counts one written entry.
func (r *Registry) IncEntry(level string) {
	if r == nil {
		return
	}
	r.EntriesTotal.WithLabelValues(level).Inc()
}

// IncDropped counts one discarded entry.
func (r *Registry) IncDropped(reason string) {
	if r == nil {
		return
	}
	r.EntriesDropped.WithLabelValues(reason).Inc()
}

// AddRedacted adds n masked fields.
func (r *Registry) AddRedacted(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.FieldsRedacted.Add(float64(n))
}

// SetMetric records the latest value for a message key.
func (r *Registry) SetMetric(messageKey string, value float64) {
	if r == nil {
		return
	}
	r.MetricValue.WithLabelValues(messageKey).Set(value)
}
