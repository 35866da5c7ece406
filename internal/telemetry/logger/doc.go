// Package logger provides structured logging for call-flow services.
//
// This package wraps log/slog:
//
//   - logger.go: Logger construction, level methods and the entry pipeline
//   - level.go: The seven severity levels, error through silly
//   - metadata.go: Per-logger metadata attached to every entry
//   - redact.go: Policy-driven masking of the logged message
//   - context.go: Context propagation of loggers and metadata
//
// Every entry carries a Timestamp, its level, a messageKey naming the call
// site, the message itself and the logger's metadata. Before an entry is
// written its message is passed through pkg/redact, scoped by the Flow and
// NextState metadata keys.
package logger
