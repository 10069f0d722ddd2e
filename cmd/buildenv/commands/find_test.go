package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/buildenv/internal/config"
	benverrors "github.com/thoreinstein/buildenv/internal/errors"
)

func TestFindCommandMissingTool(t *testing.T) {
	out, err := executeCommand(t, "find", "no-such-tool-on-any-host")
	require.Error(t, err)
	assert.Contains(t, out, "no-such-tool-on-any-host: not found")

	var exitErr *benverrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, benverrors.ExitSystem, exitErr.Code)
}

func TestFindCommandConfigOverride(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX fake executable")
	}

	dir := t.TempDir()
	fake := filepath.Join(dir, "mytool")
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755))

	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = &config.Config{Tools: map[string]string{"mytool": fake}}

	out, err := executeCommand(t, "find", "mytool")
	require.NoError(t, err)
	assert.Contains(t, out, "mytool: "+fake)
}

func TestFindCommandSDKRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sdks"), 0o755))

	origCfg := cfg
	origSDKRoot := findSDKRoot
	defer func() {
		cfg = origCfg
		findSDKRoot = origSDKRoot
	}()
	cfg = &config.Config{SDKRoot: filepath.Join(dir, "sdks")}

	out, err := executeCommand(t, "find", "--sdk-root")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "sdks"))
}

func TestFindCommandAllTools(t *testing.T) {
	// Without arguments every registered tool is reported; absent tools
	// print "not found" without failing the command.
	out, err := executeCommand(t, "find")
	require.NoError(t, err)
	for _, name := range []string{"git:", "p4:", "doxygen:", "watcom:"} {
		assert.Contains(t, out, name)
	}
}
