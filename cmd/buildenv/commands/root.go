// Package commands implements the CLI commands for buildenv.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/buildenv/internal/config"
	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/internal/logging"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// cfg is the configuration loaded by initConfig; never nil after initialization.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// configLoaded guards initConfig so the file is read once per process.
var configLoaded bool

func init() {
	cobra.OnInitialize(initConfig)

	// Add persistent flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to config file (default: XDG config home)")

	// Add version flag
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("buildenv version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	if configLoaded {
		return
	}
	configLoaded = true

	config.Init()
	// Capture load errors for later reporting
	cfg, configLoadErr = config.Load(configPath)
	if cfg == nil {
		cfg = config.Default()
	}
}

var rootCmd = &cobra.Command{
	Use:   "buildenv",
	Short: "Inspect the host build environment",
	Long: `buildenv inspects the machine a build runs on: the host personality
(native Windows, WSL, Cygwin, MSYS2, macOS, Linux), installed compiler
toolchains and SDKs, and the location of common development tools.

Every command is a read-only query. Nothing is installed, modified, or
downloaded; the only thing buildenv ever writes is its own config file,
and only when asked to via 'buildenv config init'.`,
	Example: `  # Show the detected host personality
  buildenv host

  # Locate git, or pick a tool interactively
  buildenv find git
  buildenv find -i

  # List installed Visual Studio instances and Windows SDKs
  buildenv vs --json
  buildenv sdk

  # Translate a path for the hosted shell
  buildenv path --windows /mnt/c/projects`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return benverrors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("BUILDENV_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		// Then the config file default.
		if v == 0 {
			v = activeConfig().Verbose
		}
		level = logging.LevelFromVerbosity(v)
	}

	logger := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	})

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return benverrors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		fileHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		})
		logger = slog.New(logging.NewMultiHandler(logger.Handler(), fileHandler))
	}

	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces config load failures before a command runs.
func checkConfig(cmd *cobra.Command) error {
	// Skip for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return benverrors.NewUserError(configLoadErr,
			"check the config file (or the path passed via --config)")
	}

	return nil
}

// activeConfig returns the loaded configuration, falling back to defaults
// when commands run outside the cobra lifecycle (tests).
func activeConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
