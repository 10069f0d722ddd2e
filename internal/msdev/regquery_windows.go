//go:build windows

package msdev

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows/registry"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
)

// nativeReader reads the 32-bit HKLM view directly through the Windows
// registry API.
type nativeReader struct{}

func newNativeReader() (Reader, error) {
	return nativeReader{}, nil
}

func (nativeReader) open(path string) (registry.Key, error) {
	return registry.OpenKey(registry.LOCAL_MACHINE, path,
		registry.READ|registry.WOW64_32KEY)
}

func (r nativeReader) Subkeys(path string) ([]string, error) {
	key, err := r.open(path)
	if err != nil {
		return nil, errors.Wrapf(benverrors.ErrNotFound, "registry key %q", path)
	}
	defer key.Close()

	keys, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, errors.Wrapf(benverrors.ErrNotFound, "registry key %q", path)
	}
	return keys, nil
}

func (r nativeReader) Value(path, name string) (string, error) {
	key, err := r.open(path)
	if err != nil {
		return "", errors.Wrapf(benverrors.ErrNotFound, "registry key %q", path)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(name)
	if err != nil {
		return "", errors.Wrapf(benverrors.ErrNotFound,
			"registry value %q under %q", name, path)
	}
	return value, nil
}
