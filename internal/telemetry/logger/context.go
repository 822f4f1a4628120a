package logger

import "context"

type contextKey string

const (
	loggerKey  contextKey = "confctl.logger"
	commandKey contextKey = "confctl.command"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return Default()
	}
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithCommand records the name of the running command.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// CommandFromContext returns the command name recorded by WithCommand.
func CommandFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}

// L returns the context logger, tagged with the command name when one is set.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	if name := CommandFromContext(ctx); name != "" {
		l = l.With("command", name)
	}
	return l
}
