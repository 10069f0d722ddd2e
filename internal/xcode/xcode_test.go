package xcode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/host"
)

const versionPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleShortVersionString</key>
	<string>%s</string>
	<key>ProjectName</key>
	<string>IDEApplication</string>
</dict>
</plist>
`

// writeBundle creates a minimal Xcode app bundle and returns the path
// to its xcodebuild binary.
func writeBundle(t *testing.T, baseDir, appName, version string) string {
	t.Helper()

	contents := filepath.Join(baseDir, appName, "Contents")
	if err := os.MkdirAll(filepath.Join(contents, "Developer", "usr", "bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	plistData := fmt.Sprintf(versionPlist, version)
	if err := os.WriteFile(filepath.Join(contents, "version.plist"), []byte(plistData), 0o644); err != nil {
		t.Fatal(err)
	}
	build := filepath.Join(contents, "Developer", "usr", "bin", "xcodebuild")
	if err := os.WriteFile(build, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return build
}

func newTestFinder(t *testing.T) (*Finder, string, string) {
	t.Helper()
	devApps := t.TempDir()
	apps := t.TempDir()

	f := NewFinder(host.NewInfo(host.VariantMacOS))
	f.appDirs = []string{devApps, apps}
	f.xcode3Root = filepath.Join(t.TempDir(), "Developer")
	f.legacyBuilds = nil
	return f, devApps, apps
}

func TestFindEmptyOffMacOS(t *testing.T) {
	for _, variant := range []host.Variant{host.VariantLinux, host.VariantWindows, host.VariantWSL} {
		install, err := NewFinder(host.NewInfo(variant)).Find(0)
		if err != nil {
			t.Fatalf("Find(0) on %s error = %v", variant, err)
		}
		if install != nil {
			t.Errorf("Find(0) on %s = %v, want nil", variant, install)
		}
	}
}

func TestFindNewestWins(t *testing.T) {
	f, _, apps := newTestFinder(t)
	writeBundle(t, apps, "Xcode13.app", "13.4.1")
	want := writeBundle(t, apps, "Xcode.app", "14.2")
	writeBundle(t, apps, "NotXcode.app", "99.0")

	install, err := f.Find(0)
	if err != nil {
		t.Fatalf("Find(0) error = %v", err)
	}
	if install.Major != 14 {
		t.Errorf("Major = %d, want 14", install.Major)
	}
	if install.Xcodebuild != want {
		t.Errorf("Xcodebuild = %q, want %q", install.Xcodebuild, want)
	}
}

func TestFindExactVersion(t *testing.T) {
	f, _, apps := newTestFinder(t)
	want := writeBundle(t, apps, "Xcode13.app", "13.4.1")
	writeBundle(t, apps, "Xcode.app", "14.2")

	install, err := f.Find(13)
	if err != nil {
		t.Fatalf("Find(13) error = %v", err)
	}
	if install.Major != 13 || install.Xcodebuild != want {
		t.Errorf("Find(13) = %+v, want major 13 at %q", install, want)
	}
}

func TestFindRequestedVersionMissing(t *testing.T) {
	f, _, apps := newTestFinder(t)
	writeBundle(t, apps, "Xcode.app", "14.2")

	if _, err := f.Find(11); !errors.Is(err, benverrors.ErrNotFound) {
		t.Errorf("Find(11) error = %v, want ErrNotFound", err)
	}
}

func TestFindNothingInstalled(t *testing.T) {
	f, _, _ := newTestFinder(t)

	if _, err := f.Find(0); !errors.Is(err, benverrors.ErrNotFound) {
		t.Errorf("Find(0) error = %v, want ErrNotFound", err)
	}
}

func TestFindSkipsBundleWithoutBinary(t *testing.T) {
	f, _, apps := newTestFinder(t)
	build := writeBundle(t, apps, "Xcode.app", "14.2")
	if err := os.Remove(build); err != nil {
		t.Fatal(err)
	}

	if _, err := f.Find(0); !errors.Is(err, benverrors.ErrNotFound) {
		t.Errorf("Find(0) error = %v, want ErrNotFound for gutted bundle", err)
	}
}

func TestFindXcode3UsesDeveloperRoot(t *testing.T) {
	f, devApps, _ := newTestFinder(t)
	writeBundle(t, devApps, "Xcode.app", "3.2.6")

	want := filepath.Join(f.xcode3Root, "usr", "bin", "xcodebuild")
	if err := os.MkdirAll(filepath.Dir(want), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(want, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	install, err := f.Find(0)
	if err != nil {
		t.Fatalf("Find(0) error = %v", err)
	}
	if install.Major != 3 || install.Xcodebuild != want {
		t.Errorf("Find(0) = %+v, want major 3 at %q", install, want)
	}
}

func TestFindLegacyFallback(t *testing.T) {
	f, _, _ := newTestFinder(t)
	legacy := filepath.Join(t.TempDir(), "Xcode3.1.4", "usr", "bin", "xcodebuild")
	if err := os.MkdirAll(filepath.Dir(legacy), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(legacy, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	f.legacyBuilds = []string{legacy}

	install, err := f.Find(0)
	if err != nil {
		t.Fatalf("Find(0) error = %v", err)
	}
	if install.Major != 3 || install.Xcodebuild != legacy {
		t.Errorf("Find(0) = %+v, want legacy build %q", install, legacy)
	}
}
