// Package command provides the flowlog CLI commands.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, config loading
//   - redact.go: Redact a payload read from stdin or a file
//   - log.go: Emit one entry, or tail stdin through the logger
//   - policy.go: Inspect the configured redaction policy
//   - version.go: Build information
//
// Commands read from App.Reader and write to App.Writer so they can be
// exercised in tests without a terminal.
package command
