// Package logging configures the process-wide structured logger.
//
// Usage:
//
//	logging.Configure("json", "info")    // machine-readable output
//	logging.Configure("pretty", "debug") // colored output via tint
//
// Format "pretty" uses tint; anything else emits JSON.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Configure installs the default slog logger with the given output
// format ("json" or "pretty") and minimum level ("debug", "info",
// "warn", "error").
func Configure(format, level string) {
	lvl := parseLevel(level)

	var handler slog.Handler
	if strings.EqualFold(format, "pretty") {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
