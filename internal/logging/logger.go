package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/Jamesrrobbins/market-news/internal/config"
)

func New(cfg config.Config, appName string) *slog.Logger {
	if cfg.AppEnv == "dev" {
		h := tint.NewHandler(os.Stdout, &tint.Options{
			Level:      cfg.LogLevel,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", appName)
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})
	return slog.New(h).With(
		"app", appName,
		"env", cfg.AppEnv,
	)
}
