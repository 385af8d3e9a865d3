package logger

import (
	"io"
	"log/slog"
	"os"
)

const (
	envLocal       = "local"
	envDevelopment = "development"
	envProduction  = "production"
)

// Setup builds the process logger for env and installs it as the slog default.
func Setup(env string) *slog.Logger {
	log := New(os.Stdout, env)
	slog.SetDefault(log)
	return log
}

// New picks a handler by environment: readable text with debug output locally,
// JSON at info level in production.
func New(w io.Writer, env string) *slog.Logger {
	switch env {
	case envLocal, envDevelopment:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProduction:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
