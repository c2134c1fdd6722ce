// Package logger provides structured logging with configurable log levels.
// It wraps the standard log/slog package, picking JSON output for
// production-like environments and text output for development.
package logger
