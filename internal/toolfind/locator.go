package toolfind

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/thoreinstein/buildenv/internal/config"
	"github.com/thoreinstein/buildenv/internal/host"
	"github.com/thoreinstein/buildenv/internal/logging"
	"github.com/thoreinstein/buildenv/internal/pathconv"
)

// windowsEnvPaths are the environment variables that point at Windows
// program install roots, in search order.
var windowsEnvPaths = []string{"ProgramFiles", "ProgramFiles(x86)"}

// toolSpec describes how a named tool is located on each host family.
type toolSpec struct {
	// name is the canonical tool name and the name searched on PATH.
	name string

	// envVar is a dedicated environment variable pointing at the tool's
	// install root.
	envVar string

	// envWindows lists candidate paths relative to the envVar root on
	// Windows hosts, in Windows slash form.
	envWindows []string

	// envPosix is the candidate path relative to the envVar root on
	// POSIX hosts.
	envPosix string

	// windowsSub is the path under each ProgramFiles root.
	windowsSub string

	// macPaths and linuxPaths are well-known absolute install locations.
	macPaths   []string
	linuxPaths []string
}

// specs is the registry of locatable tools.
var specs = map[string]toolSpec{
	"git": {
		name:       "git",
		envVar:     "GIT",
		envWindows: []string{`\git.exe`, `\bin\git.exe`},
		envPosix:   "/git",
		windowsSub: `git\bin\git.exe`,
		macPaths:   []string{"/opt/local/bin/git"},
		linuxPaths: []string{"/usr/bin/git"},
	},
	"p4": {
		name:       "p4",
		envVar:     "PERFORCE",
		envWindows: []string{`\p4.exe`},
		envPosix:   "/p4",
		windowsSub: `perforce\p4.exe`,
		macPaths:   []string{"/opt/local/bin/p4"},
		linuxPaths: []string{"/usr/bin/p4"},
	},
	"doxygen": {
		name:       "doxygen",
		envVar:     "DOXYGEN",
		envWindows: []string{`\bin\doxygen.exe`},
		envPosix:   "/doxygen",
		windowsSub: `doxygen\bin\doxygen.exe`,
		macPaths: []string{
			"/Applications/Doxygen.app/Contents/Resources/doxygen",
			"/opt/local/bin/doxygen",
		},
		linuxPaths: []string{"/usr/bin/doxygen"},
	},
	"codeblocks": {
		name:       "CodeBlocks",
		envVar:     "CODEBLOCKS",
		envWindows: []string{`\codeblocks.exe`},
		envPosix:   "/CodeBlocks",
		windowsSub: `CodeBlocks\codeblocks.exe`,
		macPaths: []string{
			"/Applications/CodeBlocks.app/Contents/MacOS/CodeBlocks",
			"/opt/local/bin/CodeBlocks",
		},
		linuxPaths: []string{"/usr/bin/codeblocks", "/usr/bin/CodeBlocks"},
	},
}

// Locator finds build tools. Results are cached; repeated calls with an
// unchanged environment return the same path.
//
// Priority order, highest first: config override, cache, dedicated
// environment variable, PATH, well-known install roots. An empty result
// means the tool does not exist on this host; that is absence, never
// an error.
type Locator struct {
	info   *host.Info
	cfg    *config.Config
	tr     *pathconv.Translator
	cache  map[string]string
	logger *slog.Logger
}

// NewLocator creates a Locator. cfg may be nil when no overrides apply.
func NewLocator(info *host.Info, cfg *config.Config, tr *pathconv.Translator) *Locator {
	return NewLocatorWithLogger(info, cfg, tr, logging.Default())
}

// NewLocatorWithLogger creates a Locator that reports its probing on
// the given logger: hits at Debug, every candidate tried at Trace.
func NewLocatorWithLogger(info *host.Info, cfg *config.Config, tr *pathconv.Translator, logger *slog.Logger) *Locator {
	return &Locator{
		info:   info,
		cfg:    cfg,
		tr:     tr,
		cache:  make(map[string]string),
		logger: logger,
	}
}

// Refresh clears the cache, forcing the next lookup to rescan.
func (l *Locator) Refresh() {
	l.cache = make(map[string]string)
}

// Names returns the names of all registered tools in deterministic order.
func Names() []string {
	names := make([]string, 0, len(specs)+1)
	for name := range specs {
		names = append(names, name)
	}
	names = append(names, "watcom")
	sort.Strings(names)
	return names
}

// Git returns the path to the git executable, or "".
func (l *Locator) Git() string { return l.Find("git") }

// Perforce returns the path to the p4 executable, or "".
func (l *Locator) Perforce() string { return l.Find("p4") }

// Doxygen returns the path to the doxygen executable, or "".
func (l *Locator) Doxygen() string { return l.Find("doxygen") }

// CodeBlocks returns the path to the CodeBlocks executable, or "".
func (l *Locator) CodeBlocks() string { return l.Find("codeblocks") }

// Find locates a registered tool by name, or falls back to a plain PATH
// search for unregistered names. Returns "" when the tool is absent.
func (l *Locator) Find(name string) string {
	if override := l.cfg.ToolOverride(name); override != "" {
		l.logger.Debug("using configured tool override", "tool", name, "path", override)
		return override
	}

	if cached, ok := l.cache[name]; ok {
		return cached
	}

	spec, ok := specs[name]
	if !ok {
		found := FindInPath(l.info, name, FindOptions{Executable: true})
		l.logger.Debug("PATH search", "tool", name, "found", found)
		l.cache[name] = found
		return found
	}

	found := l.locate(spec)
	l.logger.Debug("located tool", "tool", name, "found", found)
	l.cache[name] = found
	return found
}

// locate applies the full search order for a registered tool.
func (l *Locator) locate(spec toolSpec) string {
	// Dedicated environment variable.
	if root := os.Getenv(spec.envVar); root != "" {
		if l.info.IsWindowsHost {
			for _, sub := range spec.envWindows {
				candidate := l.tr.ToNativeOr(root + sub)
				if IsExecutable(candidate) {
					logging.Trace(l.logger, "env var candidate hit", "tool", spec.name, "path", candidate)
					return candidate
				}
				logging.Trace(l.logger, "env var candidate miss", "tool", spec.name, "path", candidate)
			}
		} else if IsExecutable(root + spec.envPosix) {
			logging.Trace(l.logger, "env var candidate hit", "tool", spec.name, "path", root+spec.envPosix)
			return root + spec.envPosix
		}
	}

	// Extra configured search roots, then PATH.
	if l.cfg != nil && len(l.cfg.SearchRoots) != 0 {
		if found := FindInPath(l.info, spec.name, FindOptions{
			SearchPath: l.cfg.SearchRoots,
			Executable: true,
		}); found != "" {
			return found
		}
	}
	if found := FindInPath(l.info, spec.name, FindOptions{Executable: true}); found != "" {
		return found
	}

	// Well-known install roots.
	for _, candidate := range l.knownLocations(spec) {
		if IsExecutable(candidate) {
			logging.Trace(l.logger, "known location hit", "tool", spec.name, "path", candidate)
			return candidate
		}
		logging.Trace(l.logger, "known location miss", "tool", spec.name, "path", candidate)
	}

	return ""
}

// knownLocations builds the list of default install locations for the host.
func (l *Locator) knownLocations(spec toolSpec) []string {
	var paths []string

	switch {
	case l.info.IsWindowsHost:
		for _, envName := range windowsEnvPaths {
			if root := os.Getenv(envName); root != "" && spec.windowsSub != "" {
				paths = append(paths, l.tr.ToNativeOr(root+`\`+spec.windowsSub))
			}
		}
	case l.info.IsMacOS:
		paths = append(paths, spec.macPaths...)
	}

	if l.info.IsLinux {
		paths = append(paths, spec.linuxPaths...)
	}

	return paths
}

// SDKRoot returns the folder holding vendored SDKs and tools, or "".
// The configured sdk_root wins, then the BUILDENV_SDKS environment
// variable (converted from windows form on hosted shells), then the
// nearest directory named "sdks" walking up from dir.
func (l *Locator) SDKRoot(dir string) string {
	if l.cfg != nil && l.cfg.SDKRoot != "" {
		l.logger.Debug("using configured sdk root", "path", l.cfg.SDKRoot)
		return l.cfg.SDKRoot
	}

	if root := os.Getenv("BUILDENV_SDKS"); root != "" {
		return l.tr.ToNativeOr(root)
	}

	current, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(current, "sdks")
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			logging.Trace(l.logger, "sdks folder found", "path", candidate)
			return candidate
		}

		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

// Watcom returns the root folder of an Open Watcom install, or "".
// Unlike the other locators, Watcom is identified by folder: the WATCOM
// environment variable, then <boot drive>\WATCOM, then the ProgramFiles
// roots on Windows hosts, then /usr/bin/watcom on Linux.
func (l *Locator) Watcom() string {
	if override := l.cfg.ToolOverride("watcom"); override != "" {
		return override
	}
	if cached, ok := l.cache["watcom"]; ok {
		return cached
	}

	found := l.locateWatcom()
	l.cache["watcom"] = found
	return found
}

// WatcomTool returns the full path of a Watcom binary ("wcc386", "wlink")
// inside the located install, or "". The binary folder and suffix differ
// per host: binnt/*.exe on Windows hosts, binl/* on Linux. Watcom does not
// ship for macOS.
func (l *Locator) WatcomTool(command string) string {
	root := l.Watcom()
	if root == "" {
		return ""
	}
	folder, suffix := l.watcomBinFolder()
	if folder == "" {
		return ""
	}
	candidate := filepath.Join(root, folder, command+suffix)
	if !IsExecutable(candidate) {
		return ""
	}
	return candidate
}

func (l *Locator) watcomBinFolder() (folder, suffix string) {
	switch {
	case l.info.IsWindowsHost:
		return "binnt", ".exe"
	case l.info.IsMacOS:
		return "", ""
	default:
		return "binl", ""
	}
}

func (l *Locator) locateWatcom() string {
	folder, suffix := l.watcomBinFolder()
	if folder == "" {
		return ""
	}
	// The probe binary confirms the folder really holds a toolchain.
	probe := "wcc386" + suffix

	var roots []string
	if root := os.Getenv("WATCOM"); root != "" {
		roots = append(roots, l.tr.ToNativeOr(root))
	}

	if l.info.IsWindowsHost {
		drive := os.Getenv("HOMEDRIVE")
		if drive == "" {
			drive = "C:"
		}
		roots = append(roots, l.tr.ToNativeOr(drive+`\WATCOM`))

		for _, envName := range windowsEnvPaths {
			if root := os.Getenv(envName); root != "" {
				roots = append(roots, l.tr.ToNativeOr(root+`\watcom`))
			}
		}
	}
	if l.info.IsLinux {
		roots = append(roots, "/usr/bin/watcom")
	}

	for _, root := range roots {
		if IsExecutable(filepath.Join(root, folder, probe)) {
			return root
		}
	}
	return ""
}
