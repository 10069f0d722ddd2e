// Package config provides configuration management for buildenv using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// AppName is the application name used for config file naming.
const AppName = "buildenv"

// ProjectFile is the per-project override file searched for in the working
// directory tree.
const ProjectFile = "buildenv.toml"

// Config represents the top-level configuration structure. A loaded Config
// is passed explicitly to the components that need it (locators, scanners);
// there is no ambient global configuration state.
type Config struct {
	Version int `mapstructure:"version" yaml:"version" toml:"version"`

	// SDKRoot overrides the folder where SDK archives are kept.
	SDKRoot string `mapstructure:"sdk_root" yaml:"sdk_root" toml:"sdk_root"`

	// Tools maps tool names (git, p4, doxygen, ...) to explicit executable
	// paths. An entry here beats every other lookup mechanism.
	Tools map[string]string `mapstructure:"tools" yaml:"tools" toml:"tools"`

	// SearchRoots lists extra directories searched before PATH.
	SearchRoots []string `mapstructure:"search_roots" yaml:"search_roots" toml:"search_roots"`

	// Verbose is the default verbosity level when no -v flag is given.
	Verbose int `mapstructure:"verbose" yaml:"verbose" toml:"verbose"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	// Environment variable support
	viper.SetEnvPrefix("BUILDENV")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Default returns a Config with defaults applied and no file loaded.
// Library callers that don't participate in the CLI config lifecycle
// use this as a starting point.
func Default() *Config {
	return &Config{Version: 1}
}

// LoadProjectOverrides reads a buildenv.toml from dir, if present, and
// merges its tool overrides and search roots into the receiver. A missing
// file is not an error.
func (c *Config) LoadProjectOverrides(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", ProjectFile, err)
	}

	var overrides Config
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parsing %s: %w", ProjectFile, err)
	}

	if overrides.SDKRoot != "" {
		c.SDKRoot = overrides.SDKRoot
	}
	for name, path := range overrides.Tools {
		if c.Tools == nil {
			c.Tools = make(map[string]string)
		}
		c.Tools[name] = path
	}
	c.SearchRoots = append(c.SearchRoots, overrides.SearchRoots...)

	return nil
}

// ToolOverride returns the configured path for a tool name, or "".
func (c *Config) ToolOverride(name string) string {
	if c == nil {
		return ""
	}
	return c.Tools[name]
}

// CacheDir returns the buildenv cache directory under the XDG cache home.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}
