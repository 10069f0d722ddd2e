package msdev

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/thoreinstein/buildenv/internal/host"
	"github.com/thoreinstein/buildenv/internal/logging"
	"github.com/thoreinstein/buildenv/internal/pathconv"
	"github.com/thoreinstein/buildenv/internal/version"
)

// installedRoots is the registry key everything hangs off.
const installedRoots = `SOFTWARE\Microsoft`

var (
	// IDE front ends probed under Common7\IDE.
	ideTools = []string{"devenv.exe", "devenv.com"}

	// Compiler toolchain probed under the VC bin folder.
	vcTools = []string{"cl.exe", "link.exe", "lib.exe"}

	// Registry value names under VisualStudio\SxS\VS7 for the
	// 2003 through 2015 releases.
	legacyVersions = []string{"7.1", "8.0", "9.0", "10.0", "11.0", "12.0", "14.0"}

	// Marketing names for the legacy releases.
	legacyNames = map[string]string{
		"7.1":  "Visual Studio 2003",
		"8.0":  "Visual Studio 2005",
		"9.0":  "Visual Studio 2008",
		"10.0": "Visual Studio 2010",
		"11.0": "Visual Studio 2012",
		"12.0": "Visual Studio 2013",
		"14.0": "Visual Studio 2015",
	}

	// Product versions for the installer based releases. Ordered by
	// year, which appears in the install path and application name.
	modernReleases = []struct {
		year, version string
	}{
		{"2017", "15.0"},
		{"2019", "16.0"},
		{"2022", "17.0"},
	}

	// Registry value names under Windows Kits\Installed Roots for the
	// two Windows 8 kits, with the SDK version each one ships.
	win8Kits = []struct {
		value, version string
	}{
		{"KitsRoot", "8.0"},
		{"KitsRoot81", "8.1"},
	}

	win8CPUs          = []string{"x86", "x64", "arm"}
	win8HeaderFolders = []string{"um", "shared", "winrt"}
	win8LibFolders    = []string{"win8", "winv6.3"}

	sdkCPUs          = []string{"x86", "x64", "arm", "arm64"}
	sdkHeaderFolders = []string{"ucrt", "um", "shared", "winrt", "cppwinrt"}
	sdkLibFolders    = []string{"ucrt", "um"}
	sdkTools         = []string{"rc.exe", "signtool.exe", "makecat.exe", "midl.exe", "mc.exe"}
)

// Scanner finds installed copies of Visual Studio and the Windows
// SDKs. Scanning shells out to the registry and stats a lot of files,
// so results are cached until Refresh is called.
type Scanner struct {
	info   *host.Info
	tr     *pathconv.Translator
	logger *slog.Logger

	mu      sync.Mutex
	cache   []ToolInstance
	scanned bool

	// Test seams. Nil fields use the real implementations.
	reader  Reader
	exists  func(string) bool
	listDir func(string) []string
}

// NewScanner returns a Scanner for the given host.
func NewScanner(info *host.Info, tr *pathconv.Translator) *Scanner {
	return NewScannerWithLogger(info, tr, logging.Default())
}

// NewScannerWithLogger returns a Scanner that reports scan progress to
// the given logger.
func NewScannerWithLogger(info *host.Info, tr *pathconv.Translator, logger *slog.Logger) *Scanner {
	return &Scanner{info: info, tr: tr, logger: logger}
}

// Discover is a one-shot scan without caching.
func Discover(info *host.Info, tr *pathconv.Translator) ([]ToolInstance, error) {
	return NewScanner(info, tr).Instances()
}

// Instances returns every Visual Studio and Windows SDK install
// found on the host, ordered by version. On hosts with no Windows
// registry the result is empty with no error.
func (s *Scanner) Instances() ([]ToolInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scanned {
		instances, err := s.scan()
		if err != nil {
			return nil, err
		}
		s.cache = instances
		s.scanned = true
	}
	out := make([]ToolInstance, len(s.cache))
	copy(out, s.cache)
	return out, nil
}

// Refresh drops the cache and rescans the host.
func (s *Scanner) Refresh() ([]ToolInstance, error) {
	s.mu.Lock()
	s.scanned = false
	s.cache = nil
	s.mu.Unlock()
	return s.Instances()
}

func (s *Scanner) scan() ([]ToolInstance, error) {
	if s.info.WindowsCPU(true) == "" {
		s.logger.Debug("no windows registry on this host, skipping scan")
		return nil, nil
	}

	r := s.reader
	if r == nil {
		var err error
		r, err = NewReader(s.info)
		if err != nil {
			return nil, err
		}
	}

	var instances []ToolInstance
	instances = append(instances, s.findLegacyStudios(r)...)
	instances = append(instances, s.findModernStudios(r)...)
	instances = append(instances, s.findWin8SDKs(r)...)
	instances = append(instances, s.findWin10SDKs(r)...)

	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].VersionInfo.Less(instances[j].VersionInfo)
	})
	s.logger.Debug("scan complete", "instances", len(instances))
	return instances, nil
}

// toNative converts a path read from the registry to the host's native
// form, so filesystem probes work from WSL, Cygwin and MSYS2.
func (s *Scanner) toNative(path string) string {
	return s.tr.ToNativeOr(path)
}

func (s *Scanner) pathExists(path string) bool {
	if s.exists != nil {
		return s.exists(path)
	}
	_, err := os.Stat(path)
	return err == nil
}

func (s *Scanner) readDir(path string) []string {
	if s.listDir != nil {
		return s.listDir(path)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// findLegacyStudios locates Visual Studio 2003 through 2015 from the
// VisualStudio\SxS\VS7 and VC7 registry keys.
func (s *Scanner) findLegacyStudios(r Reader) []ToolInstance {
	var instances []ToolInstance

	for _, key := range legacyVersions {
		value, err := r.Value(installedRoots+`\VisualStudio\SxS\VS7`, key)
		if err != nil {
			continue
		}
		vsPath := s.toNative(value)

		knownPaths := make(map[string]string)
		for _, item := range ideTools {
			candidate := filepath.Join(vsPath, "Common7", "IDE", item)
			if s.pathExists(candidate) {
				knownPaths[item+"_x86"] = candidate
			}
		}

		// VS 2003 shipped vsvars32.bat instead of vcvarsall.bat.
		if key == "7.1" {
			candidate := filepath.Join(vsPath, "Common7", "Tools", "vsvars32.bat")
			if s.pathExists(candidate) {
				knownPaths["vcvarsall.bat"] = candidate
			}
		}

		value, err = r.Value(installedRoots+`\VisualStudio\SxS\VC7`, key)
		if err != nil {
			continue
		}
		vcPath := s.toNative(value)

		if key != "7.1" {
			candidate := filepath.Join(vcPath, "vcvarsall.bat")
			if s.pathExists(candidate) {
				knownPaths["vcvarsall.bat"] = candidate
			}
		}
		for _, item := range vcTools {
			candidate := filepath.Join(vcPath, "bin", item)
			if s.pathExists(candidate) {
				knownPaths[item+"_x86"] = candidate
			}
		}

		// MSBuild registers separately, VS 2013 and higher.
		value, err = r.Value(installedRoots+`\MSBuild\ToolsVersions\`+key, "MSBuildToolsPath")
		if err == nil {
			candidate := filepath.Join(s.toNative(value), "msbuild.exe")
			if s.pathExists(candidate) {
				knownPaths["msbuild.exe_x86"] = candidate
			}
		}

		if knownPaths["devenv.exe_x86"] == "" {
			logging.Trace(s.logger, "registry entry without devenv.exe, skipping", "version", key, "path", vsPath)
			continue
		}
		s.logger.Debug("found visual studio", "name", legacyNames[key], "version", key, "path", vsPath)
		instances = append(instances, newInstance(legacyNames[key], key, vsPath, knownPaths))
	}
	return instances
}

// findModernStudios locates Visual Studio 2017 and higher, which
// register per-instance keys named VisualStudio_<id>.
func (s *Scanner) findModernStudios(r Reader) []ToolInstance {
	var instances []ToolInstance

	keys, err := r.Subkeys(installedRoots)
	if err != nil {
		return nil
	}

	for _, key := range keys {
		if !strings.HasPrefix(key, "VisualStudio_") {
			continue
		}

		// ApplicationDescription points into the install, e.g.
		// "@C:\...\2019\Community\Common7\IDE\devenvdesc.dll,-1004".
		value, err := r.Value(installedRoots+`\`+key+`\Capabilities`, "ApplicationDescription")
		if err != nil {
			continue
		}
		value = strings.TrimPrefix(value, "@")
		if idx := strings.LastIndexByte(value, ','); idx >= 0 {
			value = value[:idx]
		}
		vsPath := s.toNative(value)
		vsPath = filepath.Dir(filepath.Dir(filepath.Dir(vsPath)))

		name, ver, ok := modernNameVersion(r, key, vsPath)
		if !ok {
			continue
		}

		knownPaths := make(map[string]string)
		for _, item := range ideTools {
			candidate := filepath.Join(vsPath, "Common7", "IDE", item)
			if s.pathExists(candidate) {
				knownPaths[item+"_x86"] = candidate
			}
		}
		candidate := filepath.Join(vsPath, "VC", "Auxiliary", "Build", "vcvarsall.bat")
		if s.pathExists(candidate) {
			knownPaths["vcvarsall.bat"] = candidate
		}

		candidate = filepath.Join(vsPath, "MSBuild", ver, "Bin", "MSBuild.exe")
		if !s.pathExists(candidate) {
			candidate = filepath.Join(vsPath, "MSBuild", "Current", "Bin", "MSBuild.exe")
		}
		if s.pathExists(candidate) {
			knownPaths["msbuild.exe_x86"] = candidate
		}

		if knownPaths["devenv.exe_x86"] == "" {
			logging.Trace(s.logger, "registry entry without devenv.exe, skipping", "key", key, "path", vsPath)
			continue
		}
		s.logger.Debug("found visual studio", "name", name, "version", ver, "path", vsPath)
		instances = append(instances, newInstance(name, ver, vsPath, knownPaths))
	}
	return instances
}

// modernNameVersion derives the product name and version for an
// installer based Visual Studio. The product year is taken from the
// application name, falling back to the install path; releases with an
// unknown year are skipped rather than reported with a bogus version.
func modernNameVersion(r Reader, key, vsPath string) (name, ver string, ok bool) {
	name, err := r.Value(installedRoots+`\`+key+`\Capabilities`, "ApplicationName")
	if err != nil {
		name = ""
	}

	// The application name is authoritative. An install relocated into a
	// directory mentioning another year must still report its own version.
	for _, rel := range modernReleases {
		if strings.Contains(name, rel.year) {
			return name, rel.version, true
		}
	}
	for _, rel := range modernReleases {
		if strings.Contains(vsPath, rel.year) {
			if name == "" {
				name = "Visual Studio " + rel.year
			}
			return name, rel.version, true
		}
	}
	return "", "", false
}

// findWin8SDKs locates the Windows 8.0 and 8.1 kits from the Windows
// Kits Installed Roots key. Unlike the 10 kits these install one SDK
// version per kit root, with unversioned Include and bin layouts.
func (s *Scanner) findWin8SDKs(r Reader) []ToolInstance {
	var instances []ToolInstance

	for _, kit := range win8Kits {
		value, err := r.Value(installedRoots+`\Windows Kits\Installed Roots`, kit.value)
		if err != nil {
			continue
		}
		kitsRoot := s.toNative(value)

		// The kit reports its exact build under Microsoft SDKs, e.g.
		// v8.1A ProductVersion = "8.1.51636". Fall back to the plain
		// kit version when that key is absent.
		ver := kit.version
		if pv, err := r.Value(installedRoots+`\Microsoft SDKs\Windows\v`+kit.version+`A`, "ProductVersion"); err == nil && pv != "" {
			ver = pv
		}

		knownPaths := make(map[string]string)
		for _, item := range win8HeaderFolders {
			candidate := filepath.Join(kitsRoot, "Include", item)
			if s.pathExists(candidate) {
				knownPaths["WinSDK."+item] = candidate
			}
		}
		// winv6.3 is the 8.1 refresh of the win8 libs; when both exist
		// the newer set wins.
		for _, folder := range win8LibFolders {
			for _, cpu := range win8CPUs {
				candidate := filepath.Join(kitsRoot, "Lib", folder, "um", cpu)
				if s.pathExists(candidate) {
					knownPaths["WinSDK.lib_"+cpu] = candidate
				}
			}
		}
		for _, item := range sdkTools {
			for _, cpu := range win8CPUs {
				candidate := filepath.Join(kitsRoot, "bin", cpu, item)
				if s.pathExists(candidate) {
					knownPaths[item+"_"+cpu] = candidate
				}
			}
		}

		s.logger.Debug("found windows sdk", "name", "Windows 8 SDK", "version", ver, "path", kitsRoot)
		instances = append(instances, newInstance("Windows 8 SDK", ver, kitsRoot, knownPaths))
	}
	return instances
}

// findWin10SDKs locates every installed Windows 10 SDK from the
// Windows Kits Installed Roots key.
func (s *Scanner) findWin10SDKs(r Reader) []ToolInstance {
	value, err := r.Value(installedRoots+`\Windows Kits\Installed Roots`, "KitsRoot10")
	if err != nil {
		return nil
	}
	kitsRoot := s.toNative(value)

	var instances []ToolInstance
	for _, versionName := range s.readDir(filepath.Join(kitsRoot, "Include")) {
		info := version.Parse(versionName)
		if info.Major() != 10 {
			continue
		}

		knownPaths := make(map[string]string)
		for _, item := range sdkHeaderFolders {
			candidate := filepath.Join(kitsRoot, "Include", versionName, item)
			if s.pathExists(candidate) {
				knownPaths["WinSDK."+item] = candidate
			}
		}
		for _, item := range sdkLibFolders {
			for _, cpu := range sdkCPUs {
				candidate := filepath.Join(kitsRoot, "Lib", versionName, item, cpu)
				if !s.pathExists(candidate) {
					continue
				}
				suffix := "_" + cpu
				if item != "um" {
					suffix = item + suffix
				}
				knownPaths["WinSDK.lib"+suffix] = candidate
			}
		}
		for _, item := range sdkTools {
			for _, cpu := range sdkCPUs {
				candidate := filepath.Join(kitsRoot, "bin", versionName, cpu, item)
				if s.pathExists(candidate) {
					knownPaths[item+"_"+cpu] = candidate
					continue
				}
				// Older SDKs keep the tools in an unversioned bin.
				candidate = filepath.Join(kitsRoot, "bin", cpu, item)
				if s.pathExists(candidate) {
					knownPaths[item+"_"+cpu] = candidate
				}
			}
		}

		s.logger.Debug("found windows sdk", "name", "Windows 10 SDK", "version", versionName, "path", kitsRoot)
		instances = append(instances, newInstance("Windows 10 SDK", versionName, kitsRoot, knownPaths))
	}
	return instances
}
