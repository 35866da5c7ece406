package config

// Default configuration values.
const (
	DefaultLogLevel  = "error"
	DefaultLogFormat = "json"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Logger: LoggerSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// defaults is Default in the nested map form the loader merges first.
func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"logger": map[string]any{
			"level":      d.Logger.Level,
			"format":     d.Logger.Format,
			"add_source": d.Logger.AddSource,
			"entry_ids":  d.Logger.EntryIDs,
			"rate_limit": map[string]any{"per_second": d.Logger.RateLimit.PerSecond, "burst": d.Logger.RateLimit.Burst},
		},
		"metrics": map[string]any{
			"addr": d.Metrics.Addr,
		},
	}
}
