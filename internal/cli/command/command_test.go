package command

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/urfave/cli/v2"
)

const testConfig = `
logger:
  level: info
  redact:
    global:
      ADDRESS1: redact
    SRS:
      PINValidation:
        Digit: redact
`

// syncBuffer is a bytes.Buffer safe for the concurrent writes tail makes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "flowlog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// runApp runs the CLI with stdin and returns stdout and stderr.
func runApp(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr syncBuffer
	app := App()
	app.Reader = stdin
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"flowlog"}, args...))
	return stdout.String(), stderr.String(), err
}

func decodeLines(t *testing.T, s string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("json.Unmarshal(%q) error = %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestApp(t *testing.T) {
	app := App()
	if app.Name != "flowlog" {
		t.Errorf("Name = %q, want flowlog", app.Name)
	}

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"redact", "log", "tail", "policy", "version"} {
		if !names[name] {
			t.Errorf("missing command: %s", name)
		}
	}

	flags := make(map[string]bool)
	for _, f := range app.Flags {
		flags[f.Names()[0]] = true
	}
	for _, name := range []string{"config", "output"} {
		if !flags[name] {
			t.Errorf("missing global flag: %s", name)
		}
	}
}

func TestApp_InvalidOutput(t *testing.T) {
	_, _, err := runApp(t, nil, "-o", "xml", "version")
	if err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestParseMeta(t *testing.T) {
	meta, err := parseMeta([]string{"Flow=SRS", "Query=a=b"})
	if err != nil {
		t.Fatalf("parseMeta() error = %v", err)
	}
	if meta["Flow"] != "SRS" || meta["Query"] != "a=b" {
		t.Errorf("parseMeta() = %v", meta)
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := parseMeta([]string{bad}); err == nil {
			t.Errorf("parseMeta(%q) expected error", bad)
		}
	}
}
