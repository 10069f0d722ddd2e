// Package config provides configuration management for buildenv.
//
// Configuration is loaded once at startup and handed to components as an
// explicit *Config; nothing in this module reads viper globals after load.
//
// # Sources
//
// In order of precedence:
//
//  1. BUILDENV_* environment variables
//  2. ./config.yaml in the working directory
//  3. <XDG config home>/buildenv/config.yaml
//
// A per-project buildenv.toml can additionally override tool paths and
// search roots via [Config.LoadProjectOverrides].
//
// # Tool Overrides
//
// The tools table pins a locator to an exact executable, bypassing the
// environment, PATH and well-known install roots:
//
//	tools:
//	  doxygen: /opt/doxygen/bin/doxygen
//	  p4: /usr/local/bin/p4
package config
