package logger

import (
	"log/slog"
	"strings"
)

// sensitiveKeyPatterns mark keys whose values must never be printed.
// Matching is case-insensitive on the last segment of a dotted key.
var sensitiveKeyPatterns = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"credential",
	"api_key",
	"apikey",
	"private_key",
	"dsn",
}

// RedactedValue replaces sensitive values.
const RedactedValue = "***REDACTED***"

// redactSensitive masks string attributes whose key looks sensitive.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if a.Value.String() != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, RedactedValue)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			redacted[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}
	return a
}

// IsSensitiveKey reports whether a (possibly dotted) key names a secret.
func IsSensitiveKey(key string) bool {
	if i := strings.LastIndex(key, "."); i >= 0 {
		key = key[i+1:]
	}
	key = strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(key, pattern) {
			return true
		}
	}
	return false
}

// RedactValue returns RedactedValue for non-empty scalars under a sensitive
// key and redacts nested mappings otherwise. The input is not modified.
func RedactValue(key string, v any) any {
	switch val := v.(type) {
	case map[string]any:
		return RedactTree(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = RedactValue(key, item)
		}
		return out
	case nil:
		return nil
	case string:
		if val != "" && IsSensitiveKey(key) {
			return RedactedValue
		}
		return val
	default:
		if IsSensitiveKey(key) {
			return RedactedValue
		}
		return val
	}
}

// RedactTree returns a copy of m with every sensitive leaf masked.
func RedactTree(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = RedactValue(k, v)
	}
	return out
}
