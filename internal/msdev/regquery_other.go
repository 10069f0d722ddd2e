//go:build !windows

package msdev

import (
	"github.com/cockroachdb/errors"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
)

func newNativeReader() (Reader, error) {
	return nil, errors.Wrap(benverrors.ErrUnsupportedPlatform,
		"native registry access requires Windows")
}
