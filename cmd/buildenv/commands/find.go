package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/host"
	"github.com/thoreinstein/buildenv/internal/logging"
	"github.com/thoreinstein/buildenv/internal/pathconv"
	"github.com/thoreinstein/buildenv/internal/toolfind"
)

var (
	findInteractive bool
	findSDKRoot     bool
)

func init() {
	findCmd.Flags().BoolVarP(&findInteractive, "interactive", "i", false,
		"pick a tool interactively")
	findCmd.Flags().BoolVar(&findSDKRoot, "sdk-root", false,
		"report the sdks folder instead of tools")
	rootCmd.AddCommand(findCmd)
}

var findCmd = &cobra.Command{
	Use:   "find [tool...]",
	Short: "Locate development tools",
	Long: `Locate development tools on this host.

Named tools (git, p4, doxygen, codeblocks, watcom) are searched via their
dedicated environment variables, PATH, and well-known install roots; any
other name falls back to a plain PATH search. Without arguments every
registered tool is reported.

A tool configured in the [tools] section of buildenv.toml always wins.

With --sdk-root the command instead reports the sdks folder: the
configured sdk_root, the BUILDENV_SDKS environment variable, or the
nearest "sdks" directory above the working directory.`,
	Example: `  # Locate specific tools
  buildenv find git p4

  # Report every registered tool
  buildenv find

  # Pick one interactively
  buildenv find -i

  # Locate the sdks folder
  buildenv find --sdk-root`,
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	info := host.Detect()
	logger := logging.FromContext(cmd.Context())
	tr := pathconv.NewTranslatorWithLogger(info, logger)
	loc := toolfind.NewLocatorWithLogger(info, activeConfig(), tr, logger)

	if findSDKRoot {
		root := loc.SDKRoot(".")
		if root == "" {
			return benverrors.NewSystemError(errors.New("no sdks folder found"),
				"set sdk_root in buildenv.toml or export BUILDENV_SDKS")
		}
		fmt.Fprintln(cmd.OutOrStdout(), root)
		return nil
	}

	if findInteractive {
		// The fuzzy finder owns the terminal; route candidate output to
		// a discard logger so it cannot corrupt the display.
		quietLoc := toolfind.NewLocatorWithLogger(info, activeConfig(), tr, logging.NewDiscard())
		return runInteractiveFind(cmd.OutOrStdout(), quietLoc)
	}

	names := args
	if len(names) == 0 {
		names = toolfind.Names()
	}

	out := cmd.OutOrStdout()
	var missing []string
	for _, name := range names {
		path := findTool(loc, name)
		if path == "" {
			fmt.Fprintf(out, "%s: not found\n", name)
			missing = append(missing, name)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", name, path)
	}

	// Absence is only an error when the user asked for specific tools.
	if len(args) > 0 && len(missing) > 0 {
		err := errors.Newf("not found: %s", strings.Join(missing, ", "))
		return benverrors.NewSystemError(err,
			"set an explicit path in the [tools] section of buildenv.toml")
	}

	return nil
}

// findTool resolves a tool name, routing the Watcom toolchain through its
// dedicated locator.
func findTool(loc *toolfind.Locator, name string) string {
	if name == "watcom" {
		return loc.Watcom()
	}
	return loc.Find(name)
}

func runInteractiveFind(w io.Writer, loc *toolfind.Locator) error {
	names := toolfind.Names()

	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string { return names[i] },
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			path := findTool(loc, names[i])
			if path == "" {
				return "not found"
			}
			return path
		}),
	)

	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	path := findTool(loc, names[idx])
	if path == "" {
		fmt.Fprintf(w, "%s: not found\n", names[idx])
		return nil
	}
	fmt.Fprintf(w, "%s: %s\n", names[idx], path)

	return nil
}
