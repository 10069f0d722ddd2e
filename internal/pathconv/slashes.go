package pathconv

import "strings"

// WindowsSlashes converts a path to Windows form by replacing every "/"
// with "\". When forceTrailing is true, a trailing "\" is appended if not
// already present.
func WindowsSlashes(path string, forceTrailing bool) string {
	result := strings.ReplaceAll(path, "/", "\\")
	if forceTrailing && !strings.HasSuffix(result, "\\") {
		result += "\\"
	}
	return result
}

// POSIXSlashes converts a path to POSIX form by replacing every "\" with
// "/". When forceTrailing is true, a trailing "/" is appended if not
// already present.
func POSIXSlashes(path string, forceTrailing bool) string {
	result := strings.ReplaceAll(path, "\\", "/")
	if forceTrailing && !strings.HasSuffix(result, "/") {
		result += "/"
	}
	return result
}

// Pack joins entries into a single PATH-style string. An empty separator
// defaults to ";".
func Pack(entries []string, separator string) string {
	if separator == "" {
		separator = ";"
	}
	return strings.Join(entries, separator)
}

// PackSlashes joins entries into a PATH-style string after normalizing each
// entry to the given slash style ("\\" for Windows, anything else for
// POSIX). An empty separator defaults to ";".
func PackSlashes(entries []string, separator, slash string, forceTrailing bool) string {
	if separator == "" {
		separator = ";"
	}

	converted := make([]string, len(entries))
	for i, entry := range entries {
		if slash == "\\" {
			converted[i] = WindowsSlashes(entry, forceTrailing)
		} else {
			converted[i] = POSIXSlashes(entry, forceTrailing)
		}
	}
	return strings.Join(converted, separator)
}
