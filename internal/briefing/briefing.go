package briefing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jamesrrobbins/market-news/internal/model"
	"github.com/Jamesrrobbins/market-news/pkg/llm"
	"github.com/Jamesrrobbins/market-news/pkg/news"
	"github.com/jonboulle/clockwork"
)

const (
	marketHeadlineLimit = 5
	tickerHeadlineLimit = 3
)

// ErrUnavailable means the summarizer produced a fallback message instead of a briefing.
var ErrUnavailable = errors.New("briefing unavailable")

type NewsFetcher interface {
	Fetch(ctx context.Context, q news.Query) []news.Item
}

type HeadlineSource interface {
	Headlines(ctx context.Context, symbol string, limit int) []news.Item
}

type Summarizer interface {
	Briefing(ctx context.Context, marketHeadlines []string, stockNews map[string][]string) string
}

type SymbolSource interface {
	Symbols() []string
}

type Store interface {
	SaveBriefing(ctx context.Context, b *model.Briefing) error
}

type Generator struct {
	news       NewsFetcher
	headlines  HeadlineSource
	summarizer Summarizer
	symbols    SymbolSource
	store      Store
	clock      clockwork.Clock
	modelName  string
}

type Deps struct {
	News       NewsFetcher
	Headlines  HeadlineSource
	Summarizer Summarizer
	Symbols    SymbolSource
	Store      Store
	Clock      clockwork.Clock
	ModelName  string
}

func NewGenerator(d Deps) *Generator {
	clock := d.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{
		news:       d.News,
		headlines:  d.Headlines,
		summarizer: d.Summarizer,
		symbols:    d.Symbols,
		store:      d.Store,
		clock:      clock,
		modelName:  d.ModelName,
	}
}

// Generate writes today's briefing and saves it when a store is configured.
// Fallback summaries are never saved; they come back as ErrUnavailable.
func (g *Generator) Generate(ctx context.Context) (*model.Briefing, error) {
	market := MarketHeadlines(g.news.Fetch(ctx, news.Query{Country: "us", Category: "business", Limit: marketHeadlineLimit}))

	tickers := g.symbols.Symbols()
	stockNews := make(map[string][]string, len(tickers))
	for _, t := range tickers {
		items := g.headlines.Headlines(ctx, t, tickerHeadlineLimit)
		titles := make([]string, 0, len(items))
		for _, it := range items {
			titles = append(titles, it.Title)
		}
		stockNews[t] = titles
	}

	content := g.summarizer.Briefing(ctx, market, stockNews)
	if content == llm.UnavailableMessage || content == llm.NoNewsMessage {
		slog.Warn("briefing not generated", "reason", content, "tickers", len(tickers), "headlines", len(market))
		return nil, fmt.Errorf("generate briefing: %w: %s", ErrUnavailable, content)
	}

	b := &model.Briefing{
		Content:         content,
		MarketHeadlines: market,
		Tickers:         tickers,
		ModelUsed:       g.modelName,
		GeneratedAt:     g.clock.Now().UTC(),
	}

	if g.store == nil {
		return b, nil
	}
	if err := g.store.SaveBriefing(ctx, b); err != nil {
		return b, fmt.Errorf("save briefing: %w", err)
	}

	slog.Info("briefing saved", "id", b.ID, "tickers", len(tickers), "headlines", len(market))
	return b, nil
}

// MarketHeadlines formats items as "Title - Source", keeping at most five.
func MarketHeadlines(items []news.Item) []string {
	out := make([]string, 0, marketHeadlineLimit)
	for _, it := range items {
		if len(out) == marketHeadlineLimit {
			break
		}
		out = append(out, fmt.Sprintf("%s - %s", it.Title, it.Source))
	}
	return out
}
