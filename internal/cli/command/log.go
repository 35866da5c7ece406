package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/flowlog/internal/config"
	"github.com/yndnr/flowlog/internal/infra/confloader"
	"github.com/yndnr/flowlog/internal/infra/shutdown"
	"github.com/yndnr/flowlog/internal/telemetry/logger"
	"github.com/yndnr/flowlog/internal/telemetry/metric"
)

// shutdownTimeout bounds the hooks run when tail stops.
const shutdownTimeout = 5 * time.Second

func entryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "level",
			Aliases: []string{"l"},
			Usage:   "Entry level: error, warn, info, http, verbose, debug, silly",
			Value:   "info",
		},
		&cli.StringFlag{
			Name:     "key",
			Aliases:  []string{"k"},
			Usage:    "Message key of the entry",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    "meta",
			Aliases: []string{"m"},
			Usage:   "Metadata `KEY=VALUE`; Flow and NextState select the redaction scope",
		},
	}
}

// LogCommand returns the log command.
func LogCommand() *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "Write one entry through the logger",
		ArgsUsage: "MESSAGE",
		Flags:     entryFlags(),
		Action:    logAction,
	}
}

// TailCommand returns the tail command.
func TailCommand() *cli.Command {
	flags := append(entryFlags(),
		&cli.BoolFlag{
			Name:  "watch",
			Usage: "Reload the logger when the --config file changes",
		},
		&cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "Serve Prometheus metrics on `ADDR` (overrides metrics.addr)",
		},
	)
	return &cli.Command{
		Name:   "tail",
		Usage:  "Log every line of stdin until EOF or a signal",
		Flags:  flags,
		Action: tailAction,
	}
}

// entrySpec is what log and tail need to write entries.
type entrySpec struct {
	level  slog.Level
	key    string
	logger *logger.Logger
}

func newEntrySpec(c *cli.Context, cfg *config.Config, opts ...logger.Option) (*entrySpec, error) {
	level, ok := logger.ParseLevel(c.String("level"))
	if !ok {
		return nil, fmt.Errorf("unknown level %q", c.String("level"))
	}
	meta, err := parseMeta(c.StringSlice("meta"))
	if err != nil {
		return nil, err
	}

	lc, err := cfg.LoggerConfig(c.App.Writer)
	if err != nil {
		return nil, err
	}
	l, err := logger.New(lc, append(opts, logger.WithInitialMetaData(meta))...)
	if err != nil {
		return nil, err
	}
	return &entrySpec{level: level, key: c.String("key"), logger: l}, nil
}

func (e *entrySpec) write(ctx context.Context, message any) {
	e.logger.Log(ctx, e.level, e.key, message)
}

func logAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("log requires exactly one MESSAGE argument", 2)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	spec, err := newEntrySpec(c, cfg)
	if err != nil {
		return err
	}

	spec.write(c.Context, c.Args().First())
	return nil
}

func tailAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	diag := diagnostics(c)
	handler := shutdown.NewHandler(shutdownTimeout)

	registry := metric.NewRegistry()
	spec, err := newEntrySpec(c, cfg, logger.WithMetrics(registry))
	if err != nil {
		return err
	}

	// The watcher is set up first so a failure here leaves no metrics listener behind.
	if c.Bool("watch") {
		path := c.String("config")
		if path == "" {
			return cli.Exit("--watch requires --config", 2)
		}
		w, err := confloader.NewWatcher(confloader.WithWatcherLogger(diag))
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		if err := w.Watch(path); err != nil {
			w.Stop()
			return fmt.Errorf("watch config: %w", err)
		}
		w.OnChange(func(string) {
			reload(path, c.App.Writer, spec.logger, diag)
		})
		w.StartAsync(c.Context)
		handler.OnShutdown(func(context.Context) error { return w.Stop() })
	}

	addr := cfg.Metrics.Addr
	if c.IsSet("metrics-addr") {
		addr = c.String("metrics-addr")
	}
	if addr != "" {
		srv, err := serveMetrics(addr, registry, diag)
		if err != nil {
			handler.Trigger()
			_ = handler.Wait(c.Context)
			return err
		}
		handler.OnShutdown(srv.Shutdown)
	}

	go func() {
		if err := readLines(c.App.Reader, func(line string) { spec.write(c.Context, line) }); err != nil {
			diag.Error("read input", "error", err)
		}
		handler.Trigger()
	}()

	return handler.Wait(c.Context)
}

// reload applies the config at path to l. A config that fails to load or
// verify leaves the logger as it was.
func reload(path string, out io.Writer, l *logger.Logger, diag *slog.Logger) {
	cfg, err := config.Load(path)
	if err != nil {
		diag.Error("config reload failed", "path", path, "error", err)
		return
	}
	lc, err := cfg.LoggerConfig(out)
	if err != nil {
		diag.Error("config reload failed", "path", path, "error", err)
		return
	}
	l.UpdateConfig(lc)
	diag.Info("config reloaded", "path", path, "level", l.Level())
}

func readLines(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			fn(line)
		}
	}
	return scanner.Err()
}

func serveMetrics(addr string, registry *metric.Registry, diag *slog.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			diag.Error("metrics server", "error", err)
		}
	}()
	diag.Info("serving metrics", "addr", ln.Addr().String())
	return srv, nil
}
