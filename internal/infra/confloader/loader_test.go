package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Logger struct {
		Level     string `koanf:"level"`
		RateLimit struct {
			PerSecond float64 `koanf:"per_second"`
			Burst     int     `koanf:"burst"`
		} `koanf:"rate_limit"`
		Redact map[string]any `koanf:"redact"`
	} `koanf:"logger"`
	Metrics struct {
		Addr string `koanf:"addr"`
	} `koanf:"metrics"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowlog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/etc/flowlog.yaml"))
	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want TEST_", l.envPrefix)
	}
	if l.filePath != "/etc/flowlog.yaml" {
		t.Errorf("filePath = %q", l.filePath)
	}
}

func TestLoader_Load_File(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  redact:
    global:
      ADDRESS1: redact
    SRS:
      PINValidation:
        Digit: redact
`)

	l := NewLoader(WithConfigFile(path))
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logger.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logger.Level)
	}
	global, ok := cfg.Logger.Redact["global"].(map[string]any)
	if !ok || global["ADDRESS1"] != "redact" {
		t.Errorf("Redact[global] = %v", cfg.Logger.Redact["global"])
	}
	if got := l.GetString("logger.redact.SRS.PINValidation.Digit"); got != "redact" {
		t.Errorf("GetString() = %q, field names should keep their case", got)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() = false after Load()")
	}
}

func TestLoader_Load_Precedence(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: info
  rate_limit:
    per_second: 10
`)
	t.Setenv("FLOWLOG_LOGGER_LEVEL", "silly")
	t.Setenv("FLOWLOG_LOGGER_RATE_LIMIT_PER_SECOND", "25")
	t.Setenv("FLOWLOG_LOGGER_RATE_LIMIT_BURST", "5")

	l := NewLoader(
		WithConfigFile(path),
		WithDefaults(map[string]any{
			"logger": map[string]any{
				"level":      "error",
				"rate_limit": map[string]any{"per_second": 0, "burst": 0},
			},
			"metrics": map[string]any{"addr": ":9090"},
		}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logger.Level != "silly" {
		t.Errorf("Level = %q, env should override file", cfg.Logger.Level)
	}
	if cfg.Logger.RateLimit.PerSecond != 25 {
		t.Errorf("PerSecond = %v, want 25", cfg.Logger.RateLimit.PerSecond)
	}
	if cfg.Logger.RateLimit.Burst != 5 {
		t.Errorf("Burst = %v, want 5", cfg.Logger.RateLimit.Burst)
	}
	if cfg.Metrics.Addr != ":9090" {
		t.Errorf("Addr = %q, default should apply", cfg.Metrics.Addr)
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	l := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	var cfg testConfig
	if err := l.Load(&cfg); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "logger: [unclosed")
	l := NewLoader(WithConfigFile(path))
	var cfg testConfig
	if err := l.Load(&cfg); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"metrics": map[string]any{"addr": ":1"}}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if got := l.Get("metrics.addr"); got != ":1" {
		t.Errorf("Get() = %v, want :1", got)
	}
	if _, ok := l.All()["metrics.addr"]; !ok {
		t.Error("All() missing metrics.addr")
	}
	if len(l.Keys()) != 1 {
		t.Errorf("Keys() = %v", l.Keys())
	}
}

func TestEnvKeyResolver(t *testing.T) {
	r := newEnvKeyResolver([]string{
		"logger.level",
		"logger.rate_limit.per_second",
		"logger.redact.global.ADDRESS1",
	})

	tests := []struct {
		env  string
		want string
	}{
		{"LOGGER_LEVEL", "logger.level"},
		{"LOGGER_RATE_LIMIT_PER_SECOND", "logger.rate_limit.per_second"},
		{"LOGGER_REDACT_GLOBAL_ADDRESS1", "logger.redact.global.ADDRESS1"},
		{"METRICS_ADDR", "metrics.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := r.resolve(tt.env); got != tt.want {
				t.Errorf("resolve(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestMapProvider(t *testing.T) {
	p := mapProvider{"a": 1}
	if _, err := p.ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v", err)
	}
	m, err := p.Read()
	if err != nil || m["a"] != 1 {
		t.Errorf("Read() = %v, %v", m, err)
	}
}
