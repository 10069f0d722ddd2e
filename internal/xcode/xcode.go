// Package xcode locates installed copies of Xcode on macOS.
//
// Xcode 3 and 4 live under /Developer, every later release installs as
// an app bundle under /Applications. The locator reads each bundle's
// version.plist rather than trusting the folder name, since renamed
// side-by-side installs ("Xcode14.app") are common on build machines.
package xcode

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"howett.net/plist"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/host"
)

// Install is one usable copy of Xcode.
type Install struct {
	// Xcodebuild is the full path to the xcodebuild binary.
	Xcodebuild string

	// Major is the major version of the release, 3 or higher.
	Major int
}

// Finder scans the conventional install locations for Xcode.
type Finder struct {
	info *host.Info

	// Overridable in tests.
	appDirs      []string
	xcode3Root   string
	legacyBuilds []string
}

// NewFinder returns a Finder for the given host.
func NewFinder(info *host.Info) *Finder {
	return &Finder{
		info:       info,
		appDirs:    []string{"/Developer/Applications", "/Applications"},
		xcode3Root: "/Developer",
		// Lion and higher keep Xcode 3.1.4 in its own folder.
		legacyBuilds: []string{"/Xcode3.1.4/usr/bin/xcodebuild"},
	}
}

// Find locates xcodebuild. A requested major version of 0 means the
// newest install wins; otherwise only an exact major match is returned.
// Non-macOS hosts return (nil, nil); a macOS host with no usable
// install reports ErrNotFound.
func (f *Finder) Find(requested int) (*Install, error) {
	if f.info.MacCPU() == "" {
		return nil, nil
	}

	dirs := f.searchDirs(requested)

	var best *Install
	for _, baseDir := range dirs {
		for _, name := range listDir(baseDir) {
			if !strings.HasPrefix(strings.ToLower(name), "xcode") {
				continue
			}

			major, ok := bundleMajor(filepath.Join(baseDir, name, "Contents", "version.plist"))
			if !ok {
				continue
			}

			// Xcode 3 keeps its tools outside the bundle.
			build := filepath.Join(baseDir, name, "Contents", "Developer", "usr", "bin", "xcodebuild")
			if major == 3 {
				build = filepath.Join(f.xcode3Root, "usr", "bin", "xcodebuild")
			}
			if !isFile(build) {
				continue
			}

			if requested != 0 {
				if major == requested {
					return &Install{Xcodebuild: build, Major: major}, nil
				}
				continue
			}
			if best == nil || major > best.Major {
				best = &Install{Xcodebuild: build, Major: major}
			}
		}
	}

	// Last resort for ancient build machines.
	if (requested == 0 && best == nil) || requested == 3 {
		for _, build := range f.legacyBuilds {
			if isFile(build) {
				return &Install{Xcodebuild: build, Major: 3}, nil
			}
		}
	}

	if best == nil {
		if requested != 0 {
			return nil, errors.Wrapf(benverrors.ErrNotFound, "Xcode %d", requested)
		}
		return nil, errors.Wrap(benverrors.ErrNotFound, "Xcode")
	}
	return best, nil
}

// searchDirs narrows the scan by requested version: 3 and 4 only ever
// lived under /Developer, 5 and higher only under /Applications.
func (f *Finder) searchDirs(requested int) []string {
	var dirs []string
	if requested == 0 || requested < 5 {
		dirs = append(dirs, f.appDirs[0])
	}
	if requested == 0 || requested > 3 {
		dirs = append(dirs, f.appDirs[1:]...)
	}
	return dirs
}

// bundleMajor reads CFBundleShortVersionString out of a version.plist
// and returns its major component.
func bundleMajor(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	var v struct {
		ShortVersion string `plist:"CFBundleShortVersionString"`
	}
	if _, err := plist.Unmarshal(data, &v); err != nil || v.ShortVersion == "" {
		return 0, false
	}

	major, err := strconv.Atoi(strings.SplitN(v.ShortVersion, ".", 2)[0])
	if err != nil {
		return 0, false
	}
	return major, true
}

func listDir(path string) []string {
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

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
