package pathconv

import (
	"strings"

	"github.com/thoreinstein/buildenv/internal/host"
)

// Characters that survive a Windows shell without quoting.
const windowsSafeSet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" + "_-.:\\"

// Characters that survive bash without quoting.
const posixSafeSet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" + "@%_-+=:,./"

// needsQuoting reports whether any rune falls outside the safe set.
func needsQuoting(s, safeSet string) bool {
	for _, r := range s {
		if !strings.ContainsRune(safeSet, r) {
			return true
		}
	}
	return false
}

// QuoteWindows quotes a pathname for the Windows shell. Slashes are forced
// to backslashes first. Paths containing only shell-safe characters are
// returned as is; everything else is wrapped in double quotes with interior
// quotes escaped.
func QuoteWindows(path string) string {
	temp := WindowsSlashes(path, false)

	if !needsQuoting(temp, windowsSafeSet) {
		if temp == "" {
			return `""`
		}
		return temp
	}

	return `"` + strings.ReplaceAll(temp, `"`, `\"`) + `"`
}

// QuotePOSIX quotes a pathname for bash. Backslashes are forced to forward
// slashes first. Paths containing only shell-safe characters are returned
// as is; everything else is wrapped in single quotes with interior single
// quotes spliced out.
func QuotePOSIX(path string) string {
	temp := POSIXSlashes(path, false)

	if !needsQuoting(temp, posixSafeSet) {
		if temp == "" {
			return "''"
		}
		return temp
	}

	return "'" + strings.ReplaceAll(temp, "'", `'"'"'`) + "'"
}

// Quote quotes a pathname for the native system shell of the host:
// Windows rules on native Windows, bash rules everywhere else.
func Quote(info *host.Info, path string) string {
	if info.IsWindows {
		return QuoteWindows(path)
	}
	return QuotePOSIX(path)
}
