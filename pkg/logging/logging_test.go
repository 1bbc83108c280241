package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestConfigureLevel(t *testing.T) {
	ctx := context.Background()

	Configure("json", "debug")
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		t.Error("debug level not enabled after Configure(json, debug)")
	}

	Configure("pretty", "warn")
	if slog.Default().Enabled(ctx, slog.LevelInfo) {
		t.Error("info level still enabled after Configure(pretty, warn)")
	}
	if !slog.Default().Enabled(ctx, slog.LevelWarn) {
		t.Error("warn level not enabled after Configure(pretty, warn)")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got != slog.LevelInfo {
		t.Errorf("parseLevel(nonsense) = %v, want info", got)
	}
}
