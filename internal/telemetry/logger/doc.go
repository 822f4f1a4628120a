// Package logger provides structured logging for confctl and the
// configuration store.
//
//   - logger.go: slog-backed Logger, global level and default logger
//   - context.go: logger and command propagation through context.Context
//   - redact.go: masking of secrets in log attributes and config trees
//
// Output is JSON by default; "text" selects the key=value handler.
package logger
