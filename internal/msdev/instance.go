package msdev

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/buildenv/internal/version"
)

// ToolInstance describes one installed copy of Visual Studio or a
// Windows SDK. Instances are constructed by the scanner and should be
// treated as read only.
type ToolInstance struct {
	// Name is the product name, e.g. "Visual Studio 2019".
	Name string

	// Version is the version string as reported by the installation.
	Version string

	// VersionInfo is Version parsed into a comparable tuple.
	VersionInfo version.Tuple

	// Path is the installation root with trailing separators trimmed.
	Path string

	knownPaths map[string]string
}

// newInstance builds a ToolInstance, parsing the version tuple once.
func newInstance(name, ver, path string, knownPaths map[string]string) ToolInstance {
	return ToolInstance{
		Name:        name,
		Version:     ver,
		VersionInfo: version.Parse(ver),
		Path:        strings.TrimRight(path, "\\/"),
		knownPaths:  knownPaths,
	}
}

// KnownPath returns the discovered location for a named item, such as
// "devenv.exe_x86" or "vcvarsall.bat". The empty string means the item
// was not found during the scan.
func (t ToolInstance) KnownPath(name string) string {
	return t.knownPaths[name]
}

// KnownPaths returns a copy of every discovered item location.
func (t ToolInstance) KnownPaths() map[string]string {
	out := make(map[string]string, len(t.knownPaths))
	for k, v := range t.knownPaths {
		out[k] = v
	}
	return out
}

func (t ToolInstance) String() string {
	return fmt.Sprintf("%s %s at %s", t.Name, t.Version, t.Path)
}
