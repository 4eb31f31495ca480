package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Init sets up the global logger. The stub server logs JSON to stdout; the
// CLI uses the text handler on stderr so command output stays clean.
// LOG_LEVEL selects the minimum level, defaulting to info.
func Init(json bool) {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
