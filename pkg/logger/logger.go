package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/angeloszaimis/proxy-dashboard/internal/environment"
)

func New(lvl string, addSource bool, env environment.Environment) *slog.Logger {
	return NewWithWriter(os.Stdout, lvl, addSource, env)
}

func NewWithWriter(w io.Writer, lvl string, addSource bool, env environment.Environment) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(lvl),
		AddSource: addSource,
	}

	var handler slog.Handler
	if env.IsProductionLike() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("environment", env.String()),
	)
}

// Nop discards everything; meant for tests.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
