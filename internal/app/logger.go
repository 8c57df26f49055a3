package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's isolated slog.Logger from validated config
// values. The CLI layer rejects unknown levels and formats before they get
// here; an embedding host that skips that layer falls back to info/text.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
