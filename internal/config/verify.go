package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/flowlog/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyLogger(&cfg.Logger); err != nil {
		return err
	}
	if err := verifyMetrics(&cfg.Metrics); err != nil {
		return err
	}
	return nil
}

func verifyLogger(cfg *LoggerSection) error {
	if _, ok := logger.ParseLevel(cfg.Level); !ok {
		return fmt.Errorf("%w: logger.level %q is not one of error, warn, info, http, verbose, debug, silly",
			ErrInvalidConfig, cfg.Level)
	}

	switch strings.ToLower(cfg.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("%w: logger.format %q must be json or text", ErrInvalidConfig, cfg.Format)
	}

	if cfg.RateLimit.PerSecond < 0 {
		return fmt.Errorf("%w: logger.rate_limit.per_second must not be negative", ErrInvalidConfig)
	}
	if cfg.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: logger.rate_limit.burst must not be negative", ErrInvalidConfig)
	}

	if _, err := cfg.Policy(); err != nil {
		return fmt.Errorf("%w: logger.redact: %w", ErrInvalidConfig, err)
	}
	return nil
}

func verifyMetrics(cfg *MetricsSection) error {
	if cfg.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return fmt.Errorf("%w: metrics.addr: %w", ErrInvalidConfig, err)
	}
	return nil
}
