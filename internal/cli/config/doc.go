// Package config provides CLI configuration for confctl.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.confctl/cli.yaml)
//   - loader.go: Configuration loading, environment overlay and validation
//
// The settings file is read with the same driver chain confctl exposes, so
// it may be written in any supported format. CONFCTL_* environment
// variables override the file; a double underscore separates sections, as
// in CONFCTL_LOG__LEVEL=debug.
package config
