package config

// Config is the root configuration for flowlog.
type Config struct {
	Logger  LoggerSection  `koanf:"logger"`
	Metrics MetricsSection `koanf:"metrics"`
}

// LoggerSection configures the logger.
type LoggerSection struct {
	Level     string          `koanf:"level"`
	Format    string          `koanf:"format"`
	AddSource bool            `koanf:"add_source"`
	EntryIDs  bool            `koanf:"entry_ids"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	// Redact is the redaction policy in its configuration form:
	// {"global": {field: redact}, flow: {state: {field: redact}}}.
	Redact map[string]any `koanf:"redact"`
}

// RateLimitConfig throttles entries. Zero PerSecond disables it.
type RateLimitConfig struct {
	PerSecond float64 `koanf:"per_second"`
	Burst     int     `koanf:"burst"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	// Addr is the listen address for /metrics. Empty disables it.
	Addr string `koanf:"addr"`
}
