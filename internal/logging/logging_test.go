package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("tool located", "name", "git")

	out := buf.String()
	if !strings.Contains(out, "tool located") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "name=git") {
		t.Errorf("output missing attribute: %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Info("scan complete", "installs", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "scan complete" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["installs"] != float64(3) {
		t.Errorf("installs = %v", record["installs"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("should not appear")
	logger.Debug("should not appear either")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("filtered level leaked into output: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn level missing from output: %q", out)
	}
}

func TestUnknownFormatFallsBackToText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Format: Format("xml"),
		Output: &buf,
	})

	logger.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("fallback handler produced %q", buf.String())
	}
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	// Must not panic and must accept all levels silently.
	logger.Debug("quiet")
	logger.Error("still quiet")
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	logger.Debug("captured by the test framework")
}
