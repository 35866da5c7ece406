package logger

import (
	"time"

	"github.com/yndnr/flowlog/internal/telemetry/metric"
)

type options struct {
	meta    map[string]any
	metrics *metric.Registry
	now     func() time.Time
}

// Option configures a Logger at construction.
type Option func(*options)

// WithInitialMetaData seeds the logger's metadata.
func WithInitialMetaData(meta map[string]any) Option {
	return func(o *options) {
		o.meta = meta
	}
}

// WithMetrics records entry, drop, redaction and metric values in r.
func WithMetrics(r *metric.Registry) Option {
	return func(o *options) {
		o.metrics = r
	}
}

// WithClock overrides the entry timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
