// Package main provides the entry point for confctl.
//
// confctl loads a directory of configuration files (Lua, YAML, JSON and
// TOML), merges them in lexical order and answers queries against the
// merged tree, in single-command mode or in an interactive shell.
package main
