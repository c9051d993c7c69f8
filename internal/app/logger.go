package app

import (
	"log/slog"
	"os"
	"strings"

	"daycare-dispatch/internal/config"
	"daycare-dispatch/internal/logx"
)

// NewLogger builds the process logger. LOG_FORMAT=zap switches to zap, anything else is slog JSON.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	if strings.EqualFold(cfg.Log.Format, "zap") {
		return logx.NewZapProduction(cfg.Log.Level)
	}
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel(cfg.Log.Level),
	}))
	return logx.NewSlogAdapter(base), nil
}

func slogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
