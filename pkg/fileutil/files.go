package fileutil

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/buildenv/internal/host"
)

// mtimeSlop absorbs the 2 second timestamp granularity of FAT
// filesystems; modification times within the slop compare as equal.
const mtimeSlop = 2 * time.Second

// EnsureDir creates a directory and any missing parents. An existing
// directory is not an error.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %q", path)
	}
	return nil
}

// DeleteFile removes a file. A missing file is not an error.
func DeleteFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "deleting %q", path)
	}
	return nil
}

// IsSourceNewer reports whether source needs to be copied over
// destination. A missing source is never newer; a missing destination
// always needs the copy.
func IsSourceNewer(source, destination string) (bool, error) {
	srcInfo, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, "stat %q", source)
	}

	dstInfo, err := os.Stat(destination)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, errors.Wrapf(err, "stat %q", destination)
	}

	return srcInfo.ModTime().Sub(dstInfo.ModTime()) > mtimeSlop, nil
}

// CopyFileIfNeeded copies source over destination when the destination
// is missing or stale. It reports whether a copy actually happened.
// The source file's permissions carry over, so executables stay
// executable.
func CopyFileIfNeeded(source, destination string) (bool, error) {
	newer, err := IsSourceNewer(source, destination)
	if err != nil || !newer {
		return false, err
	}
	if err := copyFile(source, destination); err != nil {
		return false, err
	}
	return true, nil
}

func copyFile(source, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		return errors.Wrapf(err, "opening %q", source)
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %q", source)
	}

	out, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "creating %q", destination)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copying %q", source)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "closing %q", destination)
	}
	return nil
}

// CopyDirIfNeeded recursively copies source into destination, creating
// folders as needed and copying only stale or missing files. Entries
// whose names end with any of the exclusions are skipped.
func CopyDirIfNeeded(source, destination string, exclusions []string) error {
	if err := EnsureDir(destination); err != nil {
		return err
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return errors.Wrapf(err, "reading %q", source)
	}

	for _, entry := range entries {
		if excluded(entry.Name(), exclusions) {
			continue
		}
		src := filepath.Join(source, entry.Name())
		dst := filepath.Join(destination, entry.Name())

		if entry.IsDir() {
			if err := CopyDirIfNeeded(src, dst, exclusions); err != nil {
				return err
			}
			continue
		}
		if _, err := CopyFileIfNeeded(src, dst); err != nil {
			return err
		}
	}
	return nil
}

func excluded(name string, exclusions []string) bool {
	for _, suffix := range exclusions {
		if suffix != "" && len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}

// DeleteDir recursively deletes a directory. With deleteReadOnly set,
// write protection is stripped first so checked-out files do not block
// the removal.
func DeleteDir(path string, deleteReadOnly bool) error {
	if deleteReadOnly {
		// Ignore walk errors; RemoveAll reports whatever is left.
		_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if info, statErr := d.Info(); statErr == nil {
				_ = os.Chmod(p, info.Mode().Perm()|0o200)
			}
			return nil
		})
	}

	if err := os.RemoveAll(path); err != nil {
		return errors.Wrapf(err, "deleting %q", path)
	}
	return nil
}

// ToolPath composes the path to a prebuilt tool stored under the
// per-host layout <folder>/<os>[/<cpu>]/<name>. Windows hosts get the
// CPU subfolder and an .exe suffix. Unknown hosts fall back to the
// bare name so PATH lookup can take over.
func ToolPath(info *host.Info, folder, name string) string {
	switch info.Machine() {
	case "macosx":
		return filepath.Join(folder, "macosx", name)
	case "linux":
		return filepath.Join(folder, "linux", name)
	case "windows":
		return filepath.Join(folder, "windows", info.WindowsCPU(true), name+".exe")
	default:
		return name
	}
}

// Traverse walks from dir up to the filesystem root collecting every
// file whose name appears in names. The result is ordered root first,
// with the entry closest to dir last. With terminate set the walk
// stops at the first file found.
func Traverse(dir string, names []string, terminate bool) []string {
	current, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	var found []string
	for {
		for _, name := range names {
			candidate := filepath.Join(current, name)
			if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
				found = append([]string{candidate}, found...)
				if terminate {
					return found
				}
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return found
}

// Unlock strips the write protection from every read-only file in dir,
// descending into subdirectories when recursive is set. It returns the
// files that were actually unlocked, in the form Relock expects.
func Unlock(dir string, recursive bool) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %q", dir)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", abs)
	}

	var unlocked []string
	for _, entry := range entries {
		path := filepath.Join(abs, entry.Name())
		info, err := entry.Info()
		if err != nil {
			return unlocked, errors.Wrapf(err, "stat %q", path)
		}

		if entry.IsDir() {
			if recursive {
				more, err := Unlock(path, true)
				unlocked = append(unlocked, more...)
				if err != nil {
					return unlocked, err
				}
			}
			continue
		}
		if !info.Mode().IsRegular() || info.Mode().Perm()&0o200 != 0 {
			continue
		}

		if err := os.Chmod(path, info.Mode().Perm()|0o222); err != nil {
			return unlocked, errors.Wrapf(err, "unlocking %q", path)
		}
		unlocked = append(unlocked, path)
	}
	return unlocked, nil
}

// Relock restores the write protection Unlock removed.
func Relock(paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return errors.Wrapf(err, "stat %q", path)
		}
		if err := os.Chmod(path, info.Mode().Perm()&^0o222); err != nil {
			return errors.Wrapf(err, "locking %q", path)
		}
	}
	return nil
}
