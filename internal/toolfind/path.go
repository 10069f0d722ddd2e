package toolfind

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/thoreinstein/buildenv/internal/host"
)

// PathExt returns the executable extension list for the host.
//
// When override is empty the PATHEXT environment variable is consulted.
// Windows sets it like ".COM;.EXE;.BAT;.CMD;...". Cygwin and MSYS2 inherit
// the Windows value verbatim, so the separator is ";" there even though the
// shell's path list separator is ":". On WSL the variable is normally unset
// and ".EXE" is assumed so Windows binaries remain callable. On hosts
// without Windows capability the list is empty.
func PathExt(info *host.Info, override string) []string {
	pathext := override
	if pathext == "" {
		var ok bool
		pathext, ok = os.LookupEnv("PATHEXT")
		if !ok {
			if info.IsWSL {
				return []string{".EXE"}
			}
			return nil
		}
	}

	separator := string(os.PathListSeparator)
	if info.IsCygwin || info.IsMSYS {
		separator = ";"
	}

	var result []string
	for _, ext := range strings.Split(pathext, separator) {
		if ext != "" {
			result = append(result, ext)
		}
	}
	return result
}

// IsExecutable returns true if path names an executable regular file.
// Windows filesystems have no execute bit, so existence is sufficient there.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// candidateNames expands a bare executable name with the PATHEXT extensions.
// A name that already carries one of the extensions is used as is. On
// POSIX-on-Windows shells the bare name is also kept, since native Linux
// tools carry no extension.
func candidateNames(info *host.Info, name string, pathext []string) []string {
	if len(pathext) == 0 {
		return []string{name}
	}

	lower := strings.ToLower(name)
	for _, ext := range pathext {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return []string{name}
		}
	}

	candidates := make([]string, 0, len(pathext)+1)
	for _, ext := range pathext {
		candidates = append(candidates, name+ext)
	}
	if !info.IsWindows && info.IsWindowsHost {
		candidates = append(candidates, name)
	}
	return candidates
}

// ExePath resolves a path-plus-basename to a real executable, trying the
// PATHEXT extensions. It returns "" when nothing matches; absence is an
// expected outcome, not an error.
func ExePath(info *host.Info, base string) string {
	for _, candidate := range candidateNames(info, base, PathExt(info, "")) {
		if IsExecutable(candidate) {
			return candidate
		}
	}
	return ""
}

// FindOptions controls a FindInPath search.
type FindOptions struct {
	// SearchPath overrides the PATH environment variable. Entries may be
	// directories or a single os.PathListSeparator separated string.
	SearchPath []string

	// Executable requires candidates to pass IsExecutable and enables
	// PATHEXT expansion; otherwise any regular file matches.
	Executable bool
}

// FindInPath searches the system PATH (or an explicit list of directories)
// for a file and returns its full path, or "" when no candidate exists.
//
// On Windows hosts the current directory takes precedence over PATH,
// matching cmd.exe lookup rules. Duplicate directories are skipped.
// Repeated calls with an unchanged environment return the same result.
func FindInPath(info *host.Info, filename string, opts FindOptions) string {
	testList := []string{filename}
	if opts.Executable {
		if pathext := PathExt(info, ""); len(pathext) != 0 {
			testList = candidateNames(info, filename, pathext)
		}
	}

	dirs := opts.SearchPath
	if len(dirs) == 0 {
		path := os.Getenv("PATH")
		if path == "" {
			path = defaultPath()
		}
		dirs = filepath.SplitList(path)

		// cmd.exe checks the working directory before PATH.
		if info.IsWindowsHost {
			if cwd, err := os.Getwd(); err == nil {
				dirs = append([]string{cwd}, dirs...)
			}
		}
	} else if len(dirs) == 1 && strings.ContainsRune(dirs[0], os.PathListSeparator) {
		dirs = filepath.SplitList(dirs[0])
	}

	tested := make(map[string]struct{}, len(dirs))
	for _, dir := range dirs {
		normalized := filepath.Clean(dir)
		if _, done := tested[normalized]; done {
			continue
		}
		tested[normalized] = struct{}{}

		for _, item := range testList {
			candidate := filepath.Join(normalized, item)
			if opts.Executable {
				if IsExecutable(candidate) {
					return candidate
				}
			} else if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
				return candidate
			}
		}
	}

	return ""
}

// defaultPath mirrors the os.defpath fallback used when PATH is unset.
func defaultPath() string {
	if runtime.GOOS == "windows" {
		return `.;C:\Windows\System32;C:\Windows`
	}
	return "/usr/local/bin:/usr/bin:/bin"
}
