// Package repl provides interactive mode for confctl.
//
// This package implements the Read-Eval-Print Loop for interactive sessions:
//
//   - repl.go: Main REPL loop, line splitting and built-in commands
//   - completer.go: Completion for command names and configuration keys
//   - history.go: Command history persistence
//
// The REPL does not know any configuration command itself. Lines are split
// into arguments and handed to an Executor, which confctl wires to its
// command handlers over the store loaded at startup.
package repl
