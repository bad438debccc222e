// Package logging provides the process-wide structured logger: slog
// with a JSON handler on stdout, plus helpers for the attributes this
// service tags on every line.
package logging

import (
	"log/slog"
	"os"
)

// Logger wraps *slog.Logger so the rest of the repo depends on one
// local type instead of slog directly.
type Logger struct {
	*slog.Logger
}

// New builds a JSON logger at the given level. Unknown level strings
// fall back to info.
func New(level string) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &Logger{Logger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns an info-level logger.
func Default() *Logger {
	return New("info")
}

// WithSession returns a child logger tagged with the chat session id.
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{Logger: l.Logger.With("session_id", sessionID)}
}
