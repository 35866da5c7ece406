package config

import (
	"io"

	"github.com/yndnr/flowlog/internal/telemetry/logger"
	"github.com/yndnr/flowlog/pkg/redact"
)

// Policy parses the redact section. An absent section yields an empty
// policy.
func (s *LoggerSection) Policy() (*redact.Policy, error) {
	return redact.ParsePolicy(s.Redact)
}

// LoggerConfig converts the logger section for logger.New or
// Logger.UpdateConfig. out may be nil for stdout.
func (c *Config) LoggerConfig(out io.Writer) (logger.Config, error) {
	policy, err := c.Logger.Policy()
	if err != nil {
		return logger.Config{}, err
	}
	return logger.Config{
		Level:     c.Logger.Level,
		Format:    c.Logger.Format,
		Output:    out,
		AddSource: c.Logger.AddSource,
		EntryIDs:  c.Logger.EntryIDs,
		RateLimit: logger.RateLimit{
			PerSecond: c.Logger.RateLimit.PerSecond,
			Burst:     c.Logger.RateLimit.Burst,
		},
		Policy: policy,
	}, nil
}
