package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/Jamesrrobbins/market-news/internal/app"
	"github.com/Jamesrrobbins/market-news/internal/briefing"
	"github.com/Jamesrrobbins/market-news/internal/config"
	"github.com/Jamesrrobbins/market-news/internal/logging"
	"github.com/Jamesrrobbins/market-news/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(logging.New(cfg, "market-news-briefing"))

	ctx := context.Background()

	a, err := app.New(ctx, cfg, observability.NewMetrics())
	if err != nil {
		log.Fatalf("error building app: %v", err)
	}
	defer a.Close()

	if !a.Summarizer.Available() {
		slog.Error("no LLM API key configured, exiting", "provider", cfg.LLMProvider)
		return
	}

	b, err := a.Generator.Generate(ctx)
	if errors.Is(err, briefing.ErrUnavailable) {
		slog.Error("briefing not generated, nothing saved", "error", err)
		a.Close()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("error generating briefing: %v", err)
	}

	if a.Briefings == nil {
		slog.Info("briefing generated, not saved (no DATABASE_URL)", "tickers", len(b.Tickers))
		fmt.Println(b.Content)
		return
	}

	slog.Info("briefing saved successfully", "briefing_id", b.ID, "tickers", len(b.Tickers))
}
