package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/buildenv/internal/config"
	"github.com/thoreinstein/buildenv/internal/editor"
	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage buildenv configuration",
	Long: `Manage buildenv configuration.

The config file lives in the XDG config home (or the path passed via
--config). A buildenv.toml found in the working directory tree layers
per-project tool overrides and search roots on top.

Without a subcommand, shows the effective configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration as YAML.

Project overrides from a buildenv.toml in the working directory tree are
already merged in. The source file, if any, is noted in a comment.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	merged := cloneConfig(activeConfig())

	if wd, err := os.Getwd(); err == nil {
		if err := merged.LoadProjectOverrides(wd); err != nil {
			return errors.Wrap(err, "merging project overrides")
		}
	}

	data, err := yaml.Marshal(merged)
	if err != nil {
		return errors.Wrap(err, "rendering configuration")
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# %s\n", used)
	}
	fmt.Fprint(out, string(data))

	return nil
}

// cloneConfig copies a Config deeply enough that merging project overrides
// into the clone cannot disturb the shared loaded config.
func cloneConfig(c *config.Config) *config.Config {
	clone := *c
	if c.Tools != nil {
		clone.Tools = make(map[string]string, len(c.Tools))
		for name, path := range c.Tools {
			clone.Tools[name] = path
		}
	}
	clone.SearchRoots = append([]string(nil), c.SearchRoots...)
	return &clone
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a config file with default values to the XDG config home.

Refuses to overwrite an existing file unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := filepath.Join(xdg.ConfigHome, config.AppName, "config.yaml")

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return benverrors.NewUserError(errors.Newf("%s already exists", path),
			"pass --force to overwrite it")
	}

	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the config file",
	Long: `Open the config file in the user's preferred editor.

Uses $EDITOR, then $VISUAL, then falls back to nano or vi. If no config
file exists yet, run 'buildenv config init' first.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		path = filepath.Join(xdg.ConfigHome, config.AppName, "config.yaml")
	}

	if _, err := os.Stat(path); err != nil {
		return benverrors.NewUserError(errors.Newf("no config file at %s", path),
			"run 'buildenv config init' to create one")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "editing %s\n", path)
	return editor.Open(path)
}
