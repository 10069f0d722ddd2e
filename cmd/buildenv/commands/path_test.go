package commands

import (
	"strings"
	"testing"

	"github.com/thoreinstein/buildenv/internal/host"
)

func TestPathCommandFlagConflict(t *testing.T) {
	origWindows, origNative := pathWindows, pathNative
	defer func() { pathWindows, pathNative = origWindows, origNative }()

	_, err := executeCommand(t, "path", "--windows", "--native", "/tmp")
	if err == nil {
		t.Fatal("expected an error for --windows with --native")
	}
}

func TestPathCommandIdentityOffWindowsHosts(t *testing.T) {
	if host.Detect().IsWindowsHost {
		t.Skip("translation is not the identity on windows hosts")
	}

	origWindows, origNative := pathWindows, pathNative
	defer func() { pathWindows, pathNative = origWindows, origNative }()
	pathWindows, pathNative = false, false

	out, err := executeCommand(t, "path", "--windows", "/usr/local/bin")
	if err != nil {
		t.Fatalf("path failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "/usr/local/bin" {
		t.Errorf("path = %q, want identity", got)
	}
}

func TestPathCommandQuote(t *testing.T) {
	if host.Detect().IsWindowsHost {
		t.Skip("quoting differs on windows hosts")
	}

	origWindows, origNative, origQuote := pathWindows, pathNative, pathQuote
	defer func() { pathWindows, pathNative, pathQuote = origWindows, origNative, origQuote }()
	pathWindows, pathNative = false, false

	out, err := executeCommand(t, "path", "--quote", "/opt/my tools/bin")
	if err != nil {
		t.Fatalf("path --quote failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "'/opt/my tools/bin'" {
		t.Errorf("path --quote = %q, want single-quoted result", got)
	}
}
