package command

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/flowlog/internal/cli/output"
	"github.com/yndnr/flowlog/internal/config"
	"github.com/yndnr/flowlog/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "flowlog",
		Usage:   "Structured call-flow logging with field redaction",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RedactCommand(),
			LogCommand(),
			TailCommand(),
			PolicyCommand(),
			VersionCommand(),
		},
		Before: func(c *cli.Context) error {
			if _, err := output.ParseFormat(c.String("output"), output.FormatTable); err != nil {
				return cli.Exit(err.Error(), 2)
			}
			return nil
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (YAML)",
			EnvVars: []string{"FLOWLOG_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
	}
}

// loadConfig loads the file named by --config, the environment and the
// defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	return config.Load(c.String("config"))
}

// render writes data in the --output format, or def when none was given.
func render(c *cli.Context, def output.Format, data any) error {
	format, err := output.ParseFormat(c.String("output"), def)
	if err != nil {
		return err
	}
	return output.NewFormatter(format).Format(c.App.Writer, data)
}

// diagnostics returns a logger for the CLI's own messages on stderr.
func diagnostics(c *cli.Context) *slog.Logger {
	var w io.Writer = c.App.ErrWriter
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// parseMeta turns K=V pairs into metadata.
func parseMeta(pairs []string) (map[string]any, error) {
	meta := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --meta %q: want KEY=VALUE", p)
		}
		meta[k] = v
	}
	return meta, nil
}
