// Package logger provides structured logging for call-flow services.
//
// It wraps the standard library log/slog to provide structured JSON logging
// with per-logger metadata and policy-driven redaction of logged messages.
//
// Features:
//   - JSON structured logging (default) or text
//   - Seven levels, error through silly, adjustable at runtime
//   - Redaction of message fields by flow/state or global policy
//   - Optional rate limiting, entry IDs and Prometheus metrics
package logger

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/flowlog/internal/telemetry/metric"
	"github.com/yndnr/flowlog/pkg/redact"
)

// Output keys written on every entry.
const (
	TimestampKey  = "Timestamp"
	LevelKey      = "level"
	MessageKeyKey = "messageKey"
	MessageKey    = "message"
	EntryIDKey    = "entryId"
	StackKey      = "stack"
	MetricKey     = "metric"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level written (error, warn, info, http, verbose,
	// debug, silly).
	Level string
	// Format is the output format (json, text).
	Format string
	// Output is the output writer (defaults to os.Stdout).
	Output io.Writer
	// AddSource adds source file information to log entries.
	AddSource bool
	// EntryIDs stamps every entry with a ULID.
	EntryIDs bool
	// RateLimit caps the number of entries written per second.
	RateLimit RateLimit
	// Policy selects the message fields to mask. Nil disables redaction.
	Policy *redact.Policy
}

// RateLimit configures entry throttling. A zero PerSecond disables it.
type RateLimit struct {
	PerSecond float64
	Burst     int
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  DefaultLevel,
		Format: "json",
		Output: os.Stdout,
	}
}

// core is the state a logger shares with its children.
type core struct {
	handler slog.Handler
	level   *slog.LevelVar
	source  bool
	metrics *metric.Registry
	now     func() time.Time

	policy   atomic.Pointer[redact.Policy]
	limiter  atomic.Pointer[rate.Limiter]
	entryIDs atomic.Bool

	idMu    sync.Mutex
	entropy io.Reader
}

// Logger writes entries decorated with its metadata. All methods are safe for
// concurrent use.
type Logger struct {
	core *core
	meta *metaData
}

// New creates a new logger with the given configuration.
func New(cfg Config, opts ...Option) (*Logger, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	c := &core{
		level:   new(slog.LevelVar),
		source:  cfg.AddSource,
		metrics: o.metrics,
		now:     o.now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       c.level,
		AddSource:   cfg.AddSource,
		ReplaceAttr: replaceAttr,
	}
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		c.handler = slog.NewTextHandler(output, handlerOpts)
	default: // json
		c.handler = slog.NewJSONHandler(output, handlerOpts)
	}

	c.apply(cfg)

	if o.metrics != nil {
		// A second logger on the same registry reports through the first
		// one's collector.
		_ = o.metrics.Register(metric.NewCollector(func() int {
			return len(c.policy.Load().Rules())
		}))
	}

	return &Logger{core: c, meta: newMetaData(o.meta)}, nil
}

func validate(cfg Config) error {
	switch strings.ToLower(cfg.Format) {
	case "", "json", "text", "console":
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, cfg.Format)
	}
	if cfg.RateLimit.PerSecond < 0 || cfg.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidConfig)
	}
	return nil
}

// apply installs the runtime-adjustable parts of cfg.
func (c *core) apply(cfg Config) {
	c.level.Set(parseLevel(cfg.Level))
	c.policy.Store(cfg.Policy)
	c.entryIDs.Store(cfg.EntryIDs)

	if cfg.RateLimit.PerSecond > 0 {
		burst := cfg.RateLimit.Burst
		if burst == 0 {
			burst = max(1, int(cfg.RateLimit.PerSecond))
		}
		c.limiter.Store(rate.NewLimiter(rate.Limit(cfg.RateLimit.PerSecond), burst))
	} else {
		c.limiter.Store(nil)
	}
}

// UpdateConfig replaces the level, redaction policy, rate limit and entry ID
// settings. Format, output and source settings are fixed at construction.
// A zero Config restores the defaults. Children created by With see the
// change.
func (l *Logger) UpdateConfig(cfg Config) {
	l.core.apply(cfg)
}

// Level returns the current minimum level name.
func (l *Logger) Level() string {
	return LevelName(l.core.level.Level())
}

// Policy returns the active redaction policy. It must not be modified.
func (l *Logger) Policy() *redact.Policy {
	return l.core.policy.Load()
}

// With returns a child logger holding a copy of this logger's metadata plus
// meta. The child shares level, policy and output with its parent.
func (l *Logger) With(meta map[string]any) *Logger {
	child := newMetaData(l.meta.snapshot())
	child.merge(meta)
	return &Logger{core: l.core, meta: child}
}

// Silly logs at silly level.
func (l *Logger) Silly(msgKey string, message any) {
	l.log(context.Background(), 0, LevelSilly, msgKey, message, nil)
}

// Debug logs at debug level.
func (l *Logger) Debug(msgKey string, message any) {
	l.log(context.Background(), 0, LevelDebug, msgKey, message, nil)
}

// Verbose logs at verbose level.
func (l *Logger) Verbose(msgKey string, message any) {
	l.log(context.Background(), 0, LevelVerbose, msgKey, message, nil)
}

// HTTP logs at http level.
func (l *Logger) HTTP(msgKey string, message any) {
	l.log(context.Background(), 0, LevelHTTP, msgKey, message, nil)
}

// Info logs at info level.
func (l *Logger) Info(msgKey string, message any) {
	l.log(context.Background(), 0, LevelInfo, msgKey, message, nil)
}

// Warn logs at warn level.
func (l *Logger) Warn(msgKey string, message any) {
	l.log(context.Background(), 0, LevelWarn, msgKey, message, nil)
}

// Error logs at error level.
func (l *Logger) Error(msgKey string, message any) {
	l.log(context.Background(), 0, LevelError, msgKey, message, nil)
}

// Log logs at an arbitrary level.
func (l *Logger) Log(ctx context.Context, level slog.Level, msgKey string, message any) {
	l.log(ctx, 0, level, msgKey, message, nil)
}

// Metric logs a numeric measurement at info level. NaN is logged as 0, and a
// non-zero multiplier scales the value (some dashboards need it for
// graphing). The scaled value is attached as the "metric" field of this entry
// only, and recorded in the metric_value gauge.
func (l *Logger) Metric(msgKey string, value, multiplier float64) {
	scaled := value
	if math.IsNaN(scaled) {
		scaled = 0
	}
	if multiplier != 0 && !math.IsNaN(multiplier) {
		scaled *= multiplier
	}

	l.core.metrics.SetMetric(msgKey, scaled)
	l.log(context.Background(), 0, LevelInfo, msgKey, formatFloat(value),
		map[string]any{MetricKey: formatFloat(scaled)})
}

// log runs the entry pipeline: level check, private filter, rate limit,
// error enumeration, redaction, then formatting. depth counts wrappers
// between the public method and the caller.
func (l *Logger) log(ctx context.Context, depth int, level slog.Level, msgKey string, message any, extra map[string]any) {
	c := l.core
	if !c.handler.Enabled(ctx, level) {
		return
	}

	meta := l.meta.snapshot()
	for k, v := range extra {
		meta[k] = v
	}

	if redact.Truthy(meta[PrivateKey]) {
		c.metrics.IncDropped(metric.DropPrivate)
		return
	}
	if lim := c.limiter.Load(); lim != nil && !lim.Allow() {
		c.metrics.IncDropped(metric.DropRateLimited)
		return
	}

	message, stack := enumerateError(message, 2+depth)
	message, masked := redactMessage(message, meta, c.policy.Load())

	var pc uintptr
	if c.source {
		var pcs [1]uintptr
		runtime.Callers(3+depth, pcs[:])
		pc = pcs[0]
	}

	now := c.now()
	r := slog.NewRecord(now, level, msgKey, pc)
	r.AddAttrs(slog.Any(MessageKey, message))
	if c.entryIDs.Load() {
		r.AddAttrs(slog.String(EntryIDKey, c.newID(now)))
	}
	if stack != "" {
		r.AddAttrs(slog.String(StackKey, stack))
	}
	for _, k := range sortedKeys(meta) {
		r.AddAttrs(slog.Any(k, meta[k]))
	}

	if err := c.handler.Handle(ctx, r); err != nil {
		return
	}
	c.metrics.IncEntry(LevelName(level))
	c.metrics.AddRedacted(masked)
}

func (c *core) newID(t time.Time) string {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), c.entropy).String()
}

// replaceAttr renames slog's built-in keys and writes custom level names.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		a.Key = TimestampKey
	case slog.MessageKey:
		a.Key = MessageKeyKey
	case slog.LevelKey:
		if level, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(LevelName(level))
		}
	}
	return a
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Global logger instance for convenience methods.
var defaultLogger atomic.Pointer[Logger]

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(l)
}

// SetDefault sets the default global logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// Default returns the default global logger.
func Default() *Logger {
	return defaultLogger.Load()
}

// Debug logs at debug level using the default logger.
func Debug(msgKey string, message any) {
	defaultLogger.Load().log(context.Background(), 0, LevelDebug, msgKey, message, nil)
}

// Info logs at info level using the default logger.
func Info(msgKey string, message any) {
	defaultLogger.Load().log(context.Background(), 0, LevelInfo, msgKey, message, nil)
}

// Warn logs at warn level using the default logger.
func Warn(msgKey string, message any) {
	defaultLogger.Load().log(context.Background(), 0, LevelWarn, msgKey, message, nil)
}

// Error logs at error level using the default logger.
func Error(msgKey string, message any) {
	defaultLogger.Load().log(context.Background(), 0, LevelError, msgKey, message, nil)
}
