package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/host"
	"github.com/thoreinstein/buildenv/internal/pathconv"
)

var (
	pathWindows bool
	pathNative  bool
	pathQuote   bool
)

func init() {
	pathCmd.Flags().BoolVar(&pathWindows, "windows", false,
		"translate to windows form")
	pathCmd.Flags().BoolVar(&pathNative, "native", false,
		"translate to the shell's native form")
	pathCmd.Flags().BoolVar(&pathQuote, "quote", false,
		"quote the result for the hosted shell")
	rootCmd.AddCommand(pathCmd)
}

var pathCmd = &cobra.Command{
	Use:   "path <path>",
	Short: "Translate a path between shell and windows forms",
	Long: `Translate a path between the shell's native form and windows form.

On WSL, Cygwin, and MSYS2 the translation shells out to wslpath or
cygpath. On native Windows, macOS, and Linux both directions are the
identity, so the command is safe to use unconditionally in scripts.`,
	Example: `  # Windows form of a WSL path
  buildenv path --windows /mnt/c/projects

  # Native form of a windows path, quoted for the shell
  buildenv path --native --quote 'C:\Program Files\Git'`,
	Args: cobra.ExactArgs(1),
	RunE: runPath,
}

func runPath(cmd *cobra.Command, args []string) error {
	if pathWindows && pathNative {
		return benverrors.NewUserError(nil, "cannot use --windows and --native together")
	}

	info := host.Detect()
	tr := pathconv.NewTranslator(info)

	var (
		translated string
		err        error
	)
	switch {
	case pathWindows:
		translated, err = tr.ToWindows(args[0])
	case pathNative:
		translated, err = tr.ToNative(args[0])
	default:
		translated = tr.ToNativeOr(args[0])
	}
	if err != nil {
		return errors.Wrapf(err, "translating %q", args[0])
	}

	if pathQuote {
		translated = pathconv.Quote(info, translated)
	}

	fmt.Fprintln(cmd.OutOrStdout(), translated)
	return nil
}
