// Package gitinfo queries git for build stamping: the current branch,
// hash and tag of a working tree, and a generated C header carrying
// them into compiled code.
package gitinfo

import (
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/pkg/fileutil"
)

// Snapshot captures the version control state of a working tree.
type Snapshot struct {
	// Hash is the full commit hash of HEAD.
	Hash string

	// Branch is the abbreviated branch name, e.g. "main".
	Branch string

	// Tag is the most recent tag reachable from HEAD, "" when the
	// repository has no tags.
	Tag string

	// FullTag is the long describe form, tag-commits-ghash.
	FullTag string

	// ChangeCount is the number of commits reachable from HEAD, usable
	// as a monotonically increasing build number. Zero when unknown.
	ChangeCount int
}

// Client runs a located git binary.
type Client struct {
	exe string

	// run is replaced in tests.
	run func(dir string, args ...string) (string, error)
}

// NewClient wraps the git executable at exe, usually the result of a
// Locator lookup. An empty exe reports ErrExternalToolMissing.
func NewClient(exe string) (*Client, error) {
	if exe == "" {
		return nil, errors.Wrap(benverrors.ErrExternalToolMissing, "git")
	}
	return &Client{exe: exe}, nil
}

func (c *Client) git(dir string, args ...string) (string, error) {
	if c.run != nil {
		return c.run(dir, args...)
	}
	cmd := exec.Command(c.exe, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(err, "git %s", strings.Join(args, " "))
	}
	return strings.TrimSpace(string(out)), nil
}

// IsUnderControl reports whether dir is inside a git working tree.
func (c *Client) IsUnderControl(dir string) bool {
	_, err := c.git(dir, "rev-parse")
	return err == nil
}

// Snapshot reads the version control state of dir. Missing tags are
// tolerated; a directory that is not a git working tree is an error.
func (c *Client) Snapshot(dir string) (*Snapshot, error) {
	hash, err := c.git(dir, "rev-parse", "HEAD")
	if err != nil {
		return nil, errors.Wrapf(err, "%q is not under git control", dir)
	}

	snap := &Snapshot{Hash: hash}

	if branch, err := c.git(dir, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		snap.Branch = branch
	}
	// Repositories without tags make describe fail; that is fine.
	if tag, err := c.git(dir, "describe", "--tags", "--abbrev=0"); err == nil {
		snap.Tag = tag
	}
	if fullTag, err := c.git(dir, "describe", "--tags", "--long"); err == nil {
		snap.FullTag = fullTag
	}
	if count, err := c.git(dir, "rev-list", "--count", "HEAD"); err == nil {
		if n, err := strconv.Atoi(count); err == nil {
			snap.ChangeCount = n
		}
	}
	return snap, nil
}

// WriteVersionHeader generates a C header describing the state of the
// working tree at dir, defining GIT_HASH, GIT_BRANCH, GIT_FULL_TAG and
// GIT_TAG for whichever values exist. The output file is only touched
// when its contents would change, so builds do not go stale.
func (c *Client) WriteVersionHeader(dir, outputPath string) error {
	snap, err := c.Snapshot(dir)
	if err != nil {
		return err
	}

	guard := headerGuard(outputPath)
	var b strings.Builder
	b.WriteString("/***************************************\n")
	b.WriteString("\n")
	b.WriteString("\tThis file was generated by buildenv.\n")
	b.WriteString("\tDo not edit, it will be overwritten.\n")
	b.WriteString("\n")
	b.WriteString("***************************************/\n")
	b.WriteString("\n")
	b.WriteString("#ifndef " + guard + "\n")
	b.WriteString("#define " + guard + "\n")
	b.WriteString("\n")

	if snap.Hash != "" {
		b.WriteString("#define GIT_HASH \"" + snap.Hash + "\"\n")
	}
	if snap.Branch != "" {
		b.WriteString("#define GIT_BRANCH \"" + snap.Branch + "\"\n")
	}
	if snap.FullTag != "" {
		b.WriteString("#define GIT_FULL_TAG \"" + snap.FullTag + "\"\n")
	}
	if snap.Tag != "" {
		b.WriteString("#define GIT_TAG \"" + snap.Tag + "\"\n")
	}

	b.WriteString("\n")
	b.WriteString("#endif\n")

	data := []byte(b.String())
	if existing, err := fileutil.ReadFileWithLimit(outputPath); err == nil && string(existing) == string(data) {
		return nil
	}
	return fileutil.AtomicWriteFile(outputPath, data, 0o644)
}

// headerGuard converts a filename to an include guard macro: upper
// case, with spaces and periods turned into underscores.
func headerGuard(path string) string {
	name := strings.ToUpper(filepath.Base(path))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
