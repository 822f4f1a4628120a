// Package command provides CLI command definitions for confctl.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags and the per-run Env
//   - query.go: get, dump and keys over the merged tree
//   - files.go: sources, check and extensions
//   - settings.go: settings subcommand group for ~/.confctl/cli.yaml
//   - system.go: version and the interactive shell
//
// Commands follow a consistent pattern of parsing flags, resolving the
// store through Env and formatting output. The store is loaded on first
// use, so commands that do not read configuration never touch the
// configured directory.
package command
