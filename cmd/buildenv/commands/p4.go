package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/host"
	"github.com/thoreinstein/buildenv/internal/logging"
	"github.com/thoreinstein/buildenv/internal/pathconv"
	"github.com/thoreinstein/buildenv/internal/toolfind"
	"github.com/thoreinstein/buildenv/pkg/perforce"
)

func init() {
	p4Cmd.AddCommand(p4OpenedCmd)
	p4Cmd.AddCommand(p4EditCmd)
	p4Cmd.AddCommand(p4AddCmd)
	rootCmd.AddCommand(p4Cmd)
}

var p4Cmd = &cobra.Command{
	Use:   "p4",
	Short: "Run Perforce operations with the located p4 client",
	Long: `Run the Perforce operations build scripts need, with p4 located the
same way "buildenv find p4" would and file paths converted to the form
the p4 binary expects on hosted platforms like WSL.`,
}

var p4OpenedCmd = &cobra.Command{
	Use:   "opened [file...]",
	Short: "List files open in the client",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newP4Client(cmd)
		if err != nil {
			return err
		}
		opened, err := client.Opened(args...)
		if err != nil {
			return benverrors.NewUserError(err, "check the p4 client and workspace mapping")
		}
		out := cmd.OutOrStdout()
		if len(opened) == 0 {
			fmt.Fprintln(out, "no files opened")
			return nil
		}
		for _, name := range opened {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

var p4EditCmd = &cobra.Command{
	Use:   "edit <file...>",
	Short: "Open files for editing",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newP4Client(cmd)
		if err != nil {
			return err
		}
		if err := client.Edit(args...); err != nil {
			return benverrors.NewUserError(err, "check the p4 client and workspace mapping")
		}
		return nil
	},
}

var p4AddCmd = &cobra.Command{
	Use:   "add <file...>",
	Short: "Open files for add",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newP4Client(cmd)
		if err != nil {
			return err
		}
		if err := client.Add(args...); err != nil {
			return benverrors.NewUserError(err, "check the p4 client and workspace mapping")
		}
		return nil
	},
}

func newP4Client(cmd *cobra.Command) (*perforce.Client, error) {
	info := host.Detect()
	logger := logging.FromContext(cmd.Context())
	tr := pathconv.NewTranslatorWithLogger(info, logger)
	loc := toolfind.NewLocatorWithLogger(info, activeConfig(), tr, logger)

	client, err := perforce.NewClient(loc.Find("p4"), tr)
	if err != nil {
		return nil, benverrors.NewSystemError(err,
			"install p4 or set an explicit path in the [tools] section of buildenv.toml")
	}
	return client, nil
}
