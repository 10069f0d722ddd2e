package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is attached to a terminal. Anything exposing
// an Fd method (os.File and friends) is probed; other writers are not
// terminals.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether ANSI color output is appropriate on w:
// the writer must be a terminal, NO_COLOR must be unset
// (https://no-color.org), and TERM must not be "dumb".
func SupportsColor(w io.Writer) bool {
	return supportsColor(w, IsTTY(w))
}

func supportsColor(_ io.Writer, isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
