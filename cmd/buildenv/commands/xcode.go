package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/host"
	"github.com/thoreinstein/buildenv/internal/xcode"
)

var xcodeVersion int

func init() {
	xcodeCmd.Flags().IntVar(&xcodeVersion, "require", 0,
		"require a specific major version (0 = newest)")
	rootCmd.AddCommand(xcodeCmd)
}

var xcodeCmd = &cobra.Command{
	Use:   "xcode",
	Short: "Locate the Xcode build tool",
	Long: `Locate xcodebuild on macOS.

Without --require the newest installed Xcode wins. Xcode 3 keeps its
command line tools outside the application bundle and is handled
specially. Off macOS the command reports nothing.`,
	Args: cobra.NoArgs,
	RunE: runXcode,
}

func runXcode(cmd *cobra.Command, _ []string) error {
	install, err := xcode.NewFinder(host.Detect()).Find(xcodeVersion)
	if err != nil {
		if errors.Is(err, benverrors.ErrNotFound) {
			return benverrors.NewSystemError(err,
				"install Xcode from the App Store or pass a different --require version")
		}
		return errors.Wrap(err, "locating Xcode")
	}
	if install == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "not a macOS host")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Xcode %d: %s\n", install.Major, install.Xcodebuild)
	return nil
}
