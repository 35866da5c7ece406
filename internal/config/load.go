package config

import (
	"fmt"

	"github.com/yndnr/flowlog/internal/infra/confloader"
)

// Load reads the configuration from path (optional) and the environment,
// on top of the defaults, and verifies it.
func Load(path string) (*Config, error) {
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithDefaults(defaults()),
	)

	cfg := Default()
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
