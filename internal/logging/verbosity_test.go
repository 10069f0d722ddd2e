package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{4, LevelTrace},
	}

	for _, tt := range tests {
		got := LevelFromVerbosity(tt.verbosity)
		if got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestLevelTrace(t *testing.T) {
	if LevelTrace >= slog.LevelDebug {
		t.Error("LevelTrace should be lower than LevelDebug")
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := NewDiscard()
	ctx := NewContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext did not return the stored logger")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("FromContext without a stored logger returned nil")
	}
}
