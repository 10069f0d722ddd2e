package pathconv

import (
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/host"
	"github.com/thoreinstein/buildenv/internal/logging"
)

// Translator converts path strings between Windows and POSIX representations
// for the same underlying file.
//
// On WSL the work is delegated to the wslpath helper; on Cygwin and MSYS2 to
// cygpath. On every other host both directions are the identity function,
// because there is no second representation to translate to.
type Translator struct {
	info   *host.Info
	logger *slog.Logger

	once      sync.Once
	helper    string
	helperErr error

	// Test seams. Nil means use the real implementations.
	lookPath func(name string) (string, error)
	output   func(helper string, args ...string) ([]byte, error)
}

// NewTranslator creates a Translator for the given host.
func NewTranslator(info *host.Info) *Translator {
	return NewTranslatorWithLogger(info, logging.Default())
}

// NewTranslatorWithLogger creates a Translator that logs conversions to the
// given logger.
func NewTranslatorWithLogger(info *host.Info, logger *slog.Logger) *Translator {
	return &Translator{info: info, logger: logger}
}

// helperName returns the external conversion tool for the host variant,
// or "" when no tool is needed.
func (t *Translator) helperName() string {
	switch {
	case t.info.IsWSL:
		return "wslpath"
	case t.info.IsCygwin, t.info.IsMSYS:
		return "cygpath"
	default:
		return ""
	}
}

// resolveHelper locates the conversion helper once and caches the result
// for the life of the Translator.
func (t *Translator) resolveHelper() (string, error) {
	t.once.Do(func() {
		name := t.helperName()
		if name == "" {
			return
		}

		look := t.lookPath
		if look == nil {
			look = exec.LookPath
		}

		path, err := look(name)
		if err != nil {
			t.helperErr = errors.Wrapf(benverrors.ErrExternalToolMissing, "%s", name)
			return
		}
		t.helper = path
	})
	return t.helper, t.helperErr
}

// convert runs the helper with the given mode flag and returns its output
// with the trailing newline removed.
func (t *Translator) convert(flag, path string) (string, error) {
	helper, err := t.resolveHelper()
	if err != nil {
		return "", err
	}

	run := t.output
	if run == nil {
		run = func(helper string, args ...string) ([]byte, error) {
			return exec.Command(helper, args...).Output()
		}
	}

	out, err := run(helper, flag, path)
	if err != nil {
		return "", errors.Wrapf(err, "converting %q", path)
	}
	result := strings.TrimRight(string(out), "\r\n")
	logging.Trace(t.logger, "converted path", "helper", helper, "flag", flag, "in", path, "out", result)
	return result, nil
}

// ToWindows converts a path to its Windows representation
// (e.g. "/mnt/c/code" to "C:\code" on WSL). The input is treated as a path
// string and is not checked for existence. On hosts without a second path
// scheme the input is returned unchanged.
//
// Returns ErrExternalToolMissing when the conversion helper is not
// installed; callers choose whether to fall back to the unmodified string.
func (t *Translator) ToWindows(path string) (string, error) {
	if t.helperName() == "" {
		return path, nil
	}
	return t.convert("-w", path)
}

// ToNative converts a path to the host's native POSIX representation
// (e.g. "C:\code" to "/mnt/c/code" on WSL). On hosts without a second path
// scheme the input is returned unchanged.
//
// Returns ErrExternalToolMissing when the conversion helper is not
// installed.
func (t *Translator) ToNative(path string) (string, error) {
	if t.helperName() == "" {
		return path, nil
	}
	return t.convert("-u", path)
}

// ToNativeOr converts a path to native form, falling back to the input when
// the helper is unavailable. Discovery code paths use this: a best-effort
// path beats no path.
func (t *Translator) ToNativeOr(path string) string {
	converted, err := t.ToNative(path)
	if err != nil {
		t.logger.Debug("path conversion unavailable, using input as-is", "path", path, "error", err)
		return path
	}
	return converted
}

// QuoteHosted quotes a pathname for the shell that will actually consume it.
// On Windows hosts the path is first converted to Windows form and quoted
// with Windows rules; elsewhere bash rules apply.
func (t *Translator) QuoteHosted(path string) string {
	if t.info.IsWindowsHost {
		converted, err := t.ToWindows(path)
		if err != nil {
			converted = path
		}
		return QuoteWindows(converted)
	}
	return QuotePOSIX(path)
}
