// Package config provides flowlog configuration.
//
//   - spec.go: Config struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation of levels, formats and the redaction policy
//   - load.go: Loading through internal/infra/confloader
//   - logger.go: Conversion to a logger.Config
//
// Configuration is read from a YAML file and FLOWLOG_* environment
// variables, on top of the defaults.
package config
