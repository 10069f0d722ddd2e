package msdev

import (
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/host"
)

// Reader reads string values and subkey names from the 32-bit view of
// HKEY_LOCAL_MACHINE. Paths are relative to the hive root and use
// backslash separators, e.g. "SOFTWARE\\Microsoft\\VisualStudio\\SxS\\VS7".
type Reader interface {
	// Subkeys returns the names of the immediate subkeys of path.
	Subkeys(path string) ([]string, error)

	// Value returns the REG_SZ or REG_EXPAND_SZ value stored under
	// path with the given name. Missing keys and missing values both
	// report ErrNotFound.
	Value(path, name string) (string, error)
}

// NewReader returns a registry reader appropriate for the host. Native
// Windows reads the registry directly; WSL, Cygwin and MSYS2 shell out
// to reg.exe through the interop layer. Other hosts have no registry.
func NewReader(info *host.Info) (Reader, error) {
	if info.IsWindows {
		return newNativeReader()
	}
	if info.IsWindowsHost {
		return newRegExeReader()
	}
	return nil, errors.Wrapf(benverrors.ErrUnsupportedPlatform,
		"no registry access on %s", info.Variant)
}

// regExeReader queries the registry by running reg.exe, which Windows
// exposes to WSL, Cygwin and MSYS2 processes via binary interop.
type regExeReader struct {
	exe string

	// run is replaced in tests.
	run func(args ...string) ([]byte, error)
}

func newRegExeReader() (*regExeReader, error) {
	exe, err := exec.LookPath("reg.exe")
	if err != nil {
		return nil, errors.Wrap(benverrors.ErrExternalToolMissing, "reg.exe")
	}
	return &regExeReader{exe: exe}, nil
}

func (r *regExeReader) query(args ...string) ([]byte, error) {
	if r.run != nil {
		return r.run(args...)
	}
	return exec.Command(r.exe, args...).Output()
}

func (r *regExeReader) Subkeys(path string) ([]string, error) {
	full := `HKEY_LOCAL_MACHINE\` + path
	out, err := r.query("query", full, "/reg:32")
	if err != nil {
		return nil, errors.Wrapf(benverrors.ErrNotFound, "registry key %q", path)
	}

	var keys []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(strings.ToUpper(line), `HKEY_LOCAL_MACHINE\`) {
			continue
		}
		if strings.EqualFold(line, full) {
			continue
		}
		if idx := strings.LastIndexByte(line, '\\'); idx >= 0 {
			keys = append(keys, line[idx+1:])
		}
	}
	return keys, nil
}

func (r *regExeReader) Value(path, name string) (string, error) {
	full := `HKEY_LOCAL_MACHINE\` + path
	out, err := r.query("query", full, "/v", name, "/reg:32")
	if err != nil {
		return "", errors.Wrapf(benverrors.ErrNotFound,
			"registry value %q under %q", name, path)
	}

	for _, line := range strings.Split(string(out), "\n") {
		gotName, value, ok := parseValueLine(line)
		if ok && strings.EqualFold(gotName, name) {
			return value, nil
		}
	}
	return "", errors.Wrapf(benverrors.ErrNotFound,
		"registry value %q under %q", name, path)
}

// parseValueLine splits one reg.exe output line of the form
// "    Name    REG_SZ    Value" into its name and value parts.
func parseValueLine(line string) (name, value string, ok bool) {
	line = strings.TrimRight(line, "\r")
	idx := strings.Index(line, "REG_")
	if idx < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(line[:idx])
	if name == "" {
		return "", "", false
	}
	rest := line[idx:]
	fields := strings.SplitN(rest, "    ", 2)
	if len(fields) < 2 {
		// Tab separated output from older reg.exe builds.
		fields = strings.SplitN(rest, "\t", 2)
		if len(fields) < 2 {
			return "", "", false
		}
	}
	regType := strings.TrimSpace(fields[0])
	if regType != "REG_SZ" && regType != "REG_EXPAND_SZ" {
		return "", "", false
	}
	return name, strings.TrimSpace(fields[1]), true
}
