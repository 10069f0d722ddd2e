package logging

import (
	"io"
	"log/slog"
	"os"
	"testing"
)

// Format selects the wire format of log output.
type Format string

const (
	// FormatText is the colorized human-readable format.
	FormatText Format = "text"
	// FormatJSON is line-delimited JSON for log files and tooling.
	FormatJSON Format = "json"
)

// Config describes a logger to build.
type Config struct {
	// Level is the minimum level that gets written.
	Level slog.Level
	// Format picks text or JSON output. Unknown values mean text.
	Format Format
	// Output receives the log stream, os.Stderr when nil.
	Output io.Writer
}

// New builds a logger from cfg.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = NewHandler(output, opts)
	}

	return slog.New(handler)
}

// Default returns the logger used when a component is constructed
// outside the CLI lifecycle: Info level, text format, stderr.
func Default() *slog.Logger {
	return New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	})
}

// NewDiscard returns a logger that drops everything. Handy for
// components that require a logger but run in quiet mode.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testWriter routes a log stream into t.Log.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	// t.Log appends its own newline.
	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest returns a logger whose output lands in the test log, shown
// only on failure or under -v. The level is Trace so per-candidate
// output from locators and scanners is captured too.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
