package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/llm"
	"github.com/Jamesrrobbins/market-news/pkg/market"
	"github.com/Jamesrrobbins/market-news/pkg/news"
	"github.com/Jamesrrobbins/market-news/pkg/weather"
	"github.com/jonboulle/clockwork"
)

const (
	localNewsLimit  = 7
	globalNewsLimit = 10
	ukNewsLimit     = 10

	UKDomains = "bbc.co.uk,theguardian.com,news.sky.com"
)

type WeatherSource interface {
	Resolve(ctx context.Context, location string) weather.Snapshot
}

type NewsSource interface {
	Fetch(ctx context.Context, q news.Query) []news.Item
}

type QuoteSource interface {
	Quote(ctx context.Context, symbol string) market.Quote
}

type Summarizer interface {
	Summarize(ctx context.Context, items []llm.Item, contextLabel string, style llm.Style) string
}

type SymbolSource interface {
	Symbols() []string
}

// Section is one headline list with its summary.
type Section struct {
	Title   string
	Items   []news.Item
	Summary string
}

type TickerCard struct {
	Quote   market.Quote
	Summary string
}

type Dashboard struct {
	Location    string
	Weather     weather.Snapshot
	Local       Section
	Global      Section
	UK          Section
	Watchlist   []TickerCard
	GeneratedAt time.Time
}

type Service struct {
	weather    WeatherSource
	news       NewsSource
	quotes     QuoteSource
	summarizer Summarizer
	symbols    SymbolSource
	clock      clockwork.Clock
	style      llm.Style
}

type Deps struct {
	Weather    WeatherSource
	News       NewsSource
	Quotes     QuoteSource
	Summarizer Summarizer
	Symbols    SymbolSource
	Clock      clockwork.Clock
}

func NewService(d Deps) *Service {
	clock := d.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		weather:    d.Weather,
		news:       d.News,
		quotes:     d.Quotes,
		summarizer: d.Summarizer,
		symbols:    d.Symbols,
		clock:      clock,
		style:      llm.StyleBullets,
	}
}

// Build runs one render pass. Every section is filled even when its sources fail.
func (s *Service) Build(ctx context.Context, location string) Dashboard {
	location = strings.TrimSpace(location)

	d := Dashboard{
		Location:    location,
		Weather:     s.weather.Resolve(ctx, location),
		GeneratedAt: s.clock.Now().UTC(),
	}

	d.Local = s.section(ctx, fmt.Sprintf("Local (%s)", location), news.Query{Text: location, Limit: localNewsLimit})
	d.Global = s.section(ctx, "Global Market", news.Query{Category: "business", Limit: globalNewsLimit})
	d.UK = s.section(ctx, "UK National", news.Query{Domains: UKDomains, Limit: ukNewsLimit})

	symbols := s.symbols.Symbols()
	d.Watchlist = make([]TickerCard, 0, len(symbols))
	for _, sym := range symbols {
		d.Watchlist = append(d.Watchlist, s.card(ctx, sym))
	}

	return d
}

func (s *Service) section(ctx context.Context, title string, q news.Query) Section {
	var items []news.Item
	if q.Text != "" || q.Mode() != news.ModeEverything {
		items = s.news.Fetch(ctx, q)
	}
	if items == nil {
		items = []news.Item{}
	}
	return Section{
		Title:   title,
		Items:   items,
		Summary: s.summarizer.Summarize(ctx, SummaryItems(items), title, s.style),
	}
}

func (s *Service) card(ctx context.Context, symbol string) TickerCard {
	q := s.quotes.Quote(ctx, symbol)
	card := TickerCard{Quote: q}
	if len(q.News) > 0 {
		card.Summary = s.summarizer.Summarize(ctx, SummaryItems(q.News), fmt.Sprintf("%s Stock", q.Symbol), s.style)
	}
	return card
}

func SummaryItems(items []news.Item) []llm.Item {
	out := make([]llm.Item, len(items))
	for i, it := range items {
		out[i] = llm.Item{Title: it.Title, Source: it.Source}
	}
	return out
}
