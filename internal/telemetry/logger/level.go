package logger

import (
	"log/slog"
	"strings"
)

// Levels from most to least important. They are spaced so that slog's own
// Debug, Info, Warn and Error keep their usual values.
const (
	LevelError   = slog.LevelError
	LevelWarn    = slog.LevelWarn
	LevelInfo    = slog.LevelInfo
	LevelHTTP    = slog.Level(-1)
	LevelVerbose = slog.Level(-2)
	LevelDebug   = slog.LevelDebug
	LevelSilly   = slog.Level(-8)
)

// DefaultLevel is used when no level, or an unknown one, is configured.
const DefaultLevel = "error"

var levelNames = map[slog.Level]string{
	LevelError:   "error",
	LevelWarn:    "warn",
	LevelInfo:    "info",
	LevelHTTP:    "http",
	LevelVerbose: "verbose",
	LevelDebug:   "debug",
	LevelSilly:   "silly",
}

// ParseLevel converts a level name to its slog.Level. Matching is
// case-insensitive and "warning" is accepted for warn.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return LevelError, true
	case "warn", "warning":
		return LevelWarn, true
	case "info":
		return LevelInfo, true
	case "http":
		return LevelHTTP, true
	case "verbose":
		return LevelVerbose, true
	case "debug":
		return LevelDebug, true
	case "silly":
		return LevelSilly, true
	default:
		return LevelError, false
	}
}

// parseLevel is ParseLevel falling back to DefaultLevel.
func parseLevel(name string) slog.Level {
	level, ok := ParseLevel(name)
	if !ok {
		level, _ = ParseLevel(DefaultLevel)
	}
	return level
}

// LevelName returns the name written to log output for level.
func LevelName(level slog.Level) string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return strings.ToLower(level.String())
}
