package logger

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   slog.Level
		wantOK bool
	}{
		{"error", LevelError, true},
		{"warn", LevelWarn, true},
		{"WARNING", LevelWarn, true},
		{"Info", LevelInfo, true},
		{"http", LevelHTTP, true},
		{"verbose", LevelVerbose, true},
		{" debug ", LevelDebug, true},
		{"silly", LevelSilly, true},
		{"trace", LevelError, false},
		{"", LevelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLevel(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLevelOrdering(t *testing.T) {
	order := []slog.Level{LevelError, LevelWarn, LevelInfo, LevelHTTP, LevelVerbose, LevelDebug, LevelSilly}
	for i := 1; i < len(order); i++ {
		if order[i] >= order[i-1] {
			t.Errorf("%s should be less important than %s", LevelName(order[i]), LevelName(order[i-1]))
		}
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{LevelError, "error"},
		{LevelHTTP, "http"},
		{LevelSilly, "silly"},
		{slog.Level(2), "info+2"},
	}

	for _, tt := range tests {
		if got := LevelName(tt.level); got != tt.want {
			t.Errorf("LevelName(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
