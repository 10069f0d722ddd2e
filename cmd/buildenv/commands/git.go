package commands

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/host"
	"github.com/thoreinstein/buildenv/internal/logging"
	"github.com/thoreinstein/buildenv/internal/pathconv"
	"github.com/thoreinstein/buildenv/internal/toolfind"
	"github.com/thoreinstein/buildenv/pkg/gitinfo"
)

var (
	gitJSON   bool
	gitHeader string
)

func init() {
	gitCmd.Flags().BoolVar(&gitJSON, "json", false,
		"output as JSON")
	gitCmd.Flags().StringVar(&gitHeader, "header", "",
		"write a C version header instead of printing")
	rootCmd.AddCommand(gitCmd)
}

var gitCmd = &cobra.Command{
	Use:   "git [dir]",
	Short: "Report the git state of a working tree",
	Long: `Report the version control state of a git working tree: commit hash,
branch, tags, and the commit count usable as a build number.

With --header the state is written as a C header defining GIT_HASH,
GIT_BRANCH, GIT_FULL_TAG and GIT_TAG, touched only when its contents
would change so builds do not go stale.`,
	Example: `  # Describe the current directory
  buildenv git

  # Stamp a header for the build
  buildenv git --header generated/version.h path/to/repo`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGit,
}

func runGit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	client, err := newGitClient(cmd)
	if err != nil {
		return err
	}

	if gitHeader != "" {
		if err := client.WriteVersionHeader(dir, gitHeader); err != nil {
			return errors.Wrapf(err, "writing %s", gitHeader)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", gitHeader)
		return nil
	}

	snap, err := client.Snapshot(dir)
	if err != nil {
		return benverrors.NewUserError(err, "run inside a git working tree")
	}

	out := cmd.OutOrStdout()
	if gitJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(snap), "encoding snapshot")
	}

	fmt.Fprintf(out, "hash:     %s\n", snap.Hash)
	fmt.Fprintf(out, "branch:   %s\n", snap.Branch)
	if snap.Tag != "" {
		fmt.Fprintf(out, "tag:      %s\n", snap.Tag)
	}
	if snap.FullTag != "" {
		fmt.Fprintf(out, "full tag: %s\n", snap.FullTag)
	}
	fmt.Fprintf(out, "commits:  %d\n", snap.ChangeCount)
	return nil
}

// newGitClient locates git the same way "buildenv find git" would and
// wraps it in a gitinfo client.
func newGitClient(cmd *cobra.Command) (*gitinfo.Client, error) {
	info := host.Detect()
	logger := logging.FromContext(cmd.Context())
	loc := toolfind.NewLocatorWithLogger(info, activeConfig(),
		pathconv.NewTranslatorWithLogger(info, logger), logger)

	client, err := gitinfo.NewClient(loc.Find("git"))
	if err != nil {
		return nil, benverrors.NewSystemError(err,
			"install git or set an explicit path in the [tools] section of buildenv.toml")
	}
	return client, nil
}
