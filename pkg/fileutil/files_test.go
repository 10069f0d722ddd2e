package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/thoreinstein/buildenv/internal/host"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setMTime(t *testing.T, path string, when time.Time) {
	t.Helper()
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	// A second call on the existing directory is fine.
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() on existing error = %v", err)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("EnsureDir() did not create %q", dir)
	}
}

func TestDeleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk")
	writeFile(t, path, "x")

	if err := DeleteFile(path); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("file still exists")
	}
	// Deleting a file that is already gone is not an error.
	if err := DeleteFile(path); err != nil {
		t.Errorf("DeleteFile(missing) error = %v", err)
	}
}

func TestIsSourceNewer(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src")
	destination := filepath.Join(dir, "dst")
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	tests := []struct {
		name    string
		srcTime time.Time
		dstTime time.Time
		noSrc   bool
		noDst   bool
		want    bool
	}{
		{name: "missing source", noSrc: true, want: false},
		{name: "missing destination", srcTime: base, noDst: true, want: true},
		{name: "source much newer", srcTime: base.Add(time.Minute), dstTime: base, want: true},
		{name: "equal times", srcTime: base, dstTime: base, want: false},
		{name: "within slop", srcTime: base.Add(time.Second), dstTime: base, want: false},
		{name: "destination newer", srcTime: base, dstTime: base.Add(time.Minute), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Remove(source)
			os.Remove(destination)
			if !tt.noSrc {
				writeFile(t, source, "s")
				setMTime(t, source, tt.srcTime)
			}
			if !tt.noDst {
				writeFile(t, destination, "d")
				setMTime(t, destination, tt.dstTime)
			}

			got, err := IsSourceNewer(source, destination)
			if err != nil {
				t.Fatalf("IsSourceNewer() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsSourceNewer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCopyFileIfNeeded(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src")
	destination := filepath.Join(dir, "dst")
	writeFile(t, source, "payload")

	copied, err := CopyFileIfNeeded(source, destination)
	if err != nil {
		t.Fatalf("CopyFileIfNeeded() error = %v", err)
	}
	if !copied {
		t.Fatal("first copy reported no work")
	}
	got, err := os.ReadFile(destination)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Errorf("destination content = %q", got)
	}

	// Destination is now fresh; a second call must not copy.
	copied, err = CopyFileIfNeeded(source, destination)
	if err != nil {
		t.Fatalf("CopyFileIfNeeded() error = %v", err)
	}
	if copied {
		t.Error("second copy ran even though destination was fresh")
	}

	// Stale destination triggers the copy again.
	setMTime(t, destination, time.Now().Add(-time.Hour))
	writeFile(t, source, "updated")
	copied, err = CopyFileIfNeeded(source, destination)
	if err != nil {
		t.Fatalf("CopyFileIfNeeded() error = %v", err)
	}
	if !copied {
		t.Error("stale destination was not refreshed")
	}
}

func TestCopyDirIfNeeded(t *testing.T) {
	source := t.TempDir()
	destination := filepath.Join(t.TempDir(), "out")

	writeFile(t, filepath.Join(source, "keep.txt"), "keep")
	writeFile(t, filepath.Join(source, "skip.o"), "skip")
	writeFile(t, filepath.Join(source, "nested", "deep.txt"), "deep")
	writeFile(t, filepath.Join(source, "nested", "junk.tmp"), "junk")

	if err := CopyDirIfNeeded(source, destination, []string{".o", ".tmp"}); err != nil {
		t.Fatalf("CopyDirIfNeeded() error = %v", err)
	}

	for _, want := range []string{"keep.txt", filepath.Join("nested", "deep.txt")} {
		if _, err := os.Stat(filepath.Join(destination, want)); err != nil {
			t.Errorf("%s missing from destination", want)
		}
	}
	for _, skipped := range []string{"skip.o", filepath.Join("nested", "junk.tmp")} {
		if _, err := os.Stat(filepath.Join(destination, skipped)); err == nil {
			t.Errorf("%s copied despite exclusion", skipped)
		}
	}
}

func TestDeleteDirReadOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits")
	}

	dir := filepath.Join(t.TempDir(), "victim")
	locked := filepath.Join(dir, "locked.txt")
	writeFile(t, locked, "x")
	if err := os.Chmod(locked, 0o444); err != nil {
		t.Fatal(err)
	}

	if err := DeleteDir(dir, true); err != nil {
		t.Fatalf("DeleteDir() error = %v", err)
	}
	if _, err := os.Stat(dir); err == nil {
		t.Error("directory still exists")
	}
}

func TestToolPath(t *testing.T) {
	tests := []struct {
		variant host.Variant
		want    string
	}{
		{host.VariantMacOS, filepath.Join("tools", "macosx", "makerez")},
		{host.VariantLinux, filepath.Join("tools", "linux", "makerez")},
	}
	for _, tt := range tests {
		got := ToolPath(host.NewInfo(tt.variant), "tools", "makerez")
		if got != tt.want {
			t.Errorf("ToolPath(%s) = %q, want %q", tt.variant, got, tt.want)
		}
	}

	// Windows hosts add the CPU folder and the .exe suffix.
	got := ToolPath(host.NewInfo(host.VariantWSL), "tools", "makerez")
	cpu := host.NewInfo(host.VariantWSL).WindowsCPU(true)
	want := filepath.Join("tools", "windows", cpu, "makerez.exe")
	if got != want {
		t.Errorf("ToolPath(wsl) = %q, want %q", got, want)
	}

	// Unknown hosts fall back to PATH lookup.
	if got := ToolPath(host.NewInfo(host.VariantUnknown), "tools", "makerez"); got != "makerez" {
		t.Errorf("ToolPath(unknown) = %q, want bare name", got)
	}
}

func TestTraverse(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "group", "project")
	if err := os.MkdirAll(project, 0o755); err != nil {
		t.Fatal(err)
	}
	top := filepath.Join(root, "buildenv.toml")
	inner := filepath.Join(project, "buildenv.toml")
	writeFile(t, top, "top")
	writeFile(t, inner, "inner")

	got := Traverse(project, []string{"buildenv.toml"}, false)
	if len(got) < 2 {
		t.Fatalf("Traverse() = %v, want at least both project files", got)
	}
	// Root-first ordering: the entry closest to the working dir is last.
	if got[len(got)-1] != inner {
		t.Errorf("last entry = %q, want %q", got[len(got)-1], inner)
	}
	foundTop := false
	for _, path := range got[:len(got)-1] {
		if path == top {
			foundTop = true
		}
	}
	if !foundTop {
		t.Errorf("Traverse() = %v, missing %q", got, top)
	}

	// terminate stops at the first (deepest) hit.
	got = Traverse(project, []string{"buildenv.toml"}, true)
	if len(got) != 1 || got[0] != inner {
		t.Errorf("Traverse(terminate) = %v, want [%q]", got, inner)
	}
}

func TestUnlockRelock(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked.txt")
	writable := filepath.Join(dir, "writable.txt")
	nested := filepath.Join(dir, "sub", "nested.txt")
	writeFile(t, locked, "a")
	writeFile(t, writable, "b")
	writeFile(t, nested, "c")
	if err := os.Chmod(locked, 0o444); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(nested, 0o444); err != nil {
		t.Fatal(err)
	}

	unlocked, err := Unlock(dir, false)
	if err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if len(unlocked) != 1 || unlocked[0] != locked {
		t.Fatalf("Unlock(flat) = %v, want only %q", unlocked, locked)
	}
	if fi, _ := os.Stat(locked); fi.Mode().Perm()&0o200 == 0 {
		t.Error("file is still read-only after Unlock")
	}

	if err := Relock(unlocked); err != nil {
		t.Fatalf("Relock() error = %v", err)
	}
	if fi, _ := os.Stat(locked); fi.Mode().Perm()&0o200 != 0 {
		t.Error("file is writable after Relock")
	}

	unlocked, err = Unlock(dir, true)
	if err != nil {
		t.Fatalf("Unlock(recursive) error = %v", err)
	}
	if len(unlocked) != 2 {
		t.Errorf("Unlock(recursive) = %v, want the nested file too", unlocked)
	}
}
