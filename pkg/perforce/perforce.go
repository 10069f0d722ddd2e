// Package perforce wraps the p4 command line client for the handful
// of operations build scripts need: checking out files, adding new
// ones, and listing what is already open.
package perforce

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/pathconv"
)

// Client runs a located p4 binary.
type Client struct {
	exe string
	tr  *pathconv.Translator

	// run is replaced in tests.
	run func(dir string, args ...string) (string, error)
}

// NewClient wraps the p4 executable at exe, usually the result of a
// Locator lookup. An empty exe reports ErrExternalToolMissing. The
// Translator converts file arguments to Windows form when the p4
// binary is the Windows one running under WSL, Cygwin or MSYS2.
func NewClient(exe string, tr *pathconv.Translator) (*Client, error) {
	if exe == "" {
		return nil, errors.Wrap(benverrors.ErrExternalToolMissing, "p4")
	}
	return &Client{exe: exe, tr: tr}, nil
}

func (c *Client) p4(dir string, args ...string) (string, error) {
	if c.run != nil {
		return c.run(dir, args...)
	}
	cmd := exec.Command(c.exe, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(err, "p4 %s", strings.Join(args, " "))
	}
	return string(out), nil
}

// IsUnderControl reports whether dir maps into a Perforce client.
// On unmapped folders p4 can take several seconds to answer, so call
// this sparingly.
func (c *Client) IsUnderControl(dir string) bool {
	out, err := c.p4(dir, "-s", "where", "...")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "exit: "); ok {
			return strings.TrimSpace(rest) == "0"
		}
	}
	return false
}

// Edit opens the files for editing.
func (c *Client) Edit(files ...string) error {
	return c.fileCommand("edit", files)
}

// Add opens the files for add.
func (c *Client) Add(files ...string) error {
	return c.fileCommand("add", files)
}

// fileCommand runs a p4 command once per file, with each path made
// absolute and converted to the form the p4 binary expects.
func (c *Client) fileCommand(command string, files []string) error {
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return errors.Wrapf(err, "resolving %q", file)
		}
		if _, err := c.p4("", command, c.hostedPath(abs)); err != nil {
			return err
		}
	}
	return nil
}

// hostedPath converts a native path to Windows form for the p4 binary.
// Pure POSIX and pure Windows hosts pass through unchanged, and a
// missing conversion helper degrades to the native path rather than
// failing the checkout.
func (c *Client) hostedPath(path string) string {
	if c.tr == nil {
		return path
	}
	converted, err := c.tr.ToWindows(path)
	if err != nil {
		return path
	}
	return converted
}

// Opened lists the depot paths currently open in the client, with the
// "#revision" suffix p4 prints stripped off. files narrows the query;
// none means everything.
func (c *Client) Opened(files ...string) ([]string, error) {
	args := append([]string{"opened"}, files...)
	out, err := c.p4("", args...)
	if err != nil {
		return nil, err
	}

	var opened []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, _, _ := strings.Cut(line, "#")
		opened = append(opened, name)
	}
	return opened, nil
}
