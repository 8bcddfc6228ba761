package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/news"
	"github.com/Jamesrrobbins/market-news/pkg/observability"
	"github.com/Jamesrrobbins/market-news/pkg/upstream"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

const (
	DefaultHeadlineLimit = 5
	headlineLookback     = 7 * 24 * time.Hour
	unavailablePrice     = "N/A"
)

var ErrNoPriceData = errors.New("no price data")

type Change struct {
	Window    string
	Offset    int
	Percent   float64
	Available bool
	Direction Direction
	Color     string
}

type Quote struct {
	Symbol    string
	Price     float64
	PriceText string
	Changes   []Change
	Direction Direction
	Color     string
	News      []news.Item

	Error     string
	ErrorKind upstream.Kind
}

func (q Quote) OK() bool {
	return q.Error == ""
}

// HeadlineProvider is the market-data source's bundled company news.
type HeadlineProvider interface {
	CompanyNews(ctx context.Context, symbol string, from, to time.Time, limit int) ([]news.Item, error)
	Name() string
}

// NewsSearcher is the general news fallback used when a ticker has no bundled headlines.
type NewsSearcher interface {
	Fetch(ctx context.Context, q news.Query) []news.Item
}

type Options struct {
	YearOffset    int
	HeadlineLimit int
	Clock         clockwork.Clock
	Metrics       *observability.Metrics
}

type Resolver struct {
	history   HistoryProvider
	headlines HeadlineProvider
	search    NewsSearcher
	windows   []Window
	limit     int
	clock     clockwork.Clock
	metrics   *observability.Metrics
}

// NewResolver wires the price and headline sources. headlines and search may be nil.
func NewResolver(history HistoryProvider, headlines HeadlineProvider, search NewsSearcher, opts Options) *Resolver {
	limit := opts.HeadlineLimit
	if limit <= 0 {
		limit = DefaultHeadlineLimit
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Resolver{
		history:   history,
		headlines: headlines,
		search:    search,
		windows:   Windows(opts.YearOffset),
		limit:     limit,
		clock:     clock,
		metrics:   opts.Metrics,
	}
}

// Quote returns a sentinel quote (price "N/A", no news) instead of an error.
func (r *Resolver) Quote(ctx context.Context, symbol string) Quote {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	start := time.Now()
	closes, err := r.history.DailyCloses(ctx, symbol)
	r.metrics.ObserveUpstream(r.history.Name(), err, time.Since(start))
	if err != nil {
		slog.Warn("price history failed", "symbol", symbol, "kind", upstream.KindOf(err), "error", err)
		return sentinel(symbol, err)
	}
	if len(closes) == 0 {
		slog.Info("no price history", "symbol", symbol)
		return sentinel(symbol, upstream.New(r.history.Name(), upstream.KindNotFound, ErrNoPriceData))
	}

	current := closes[len(closes)-1]
	q := Quote{
		Symbol:    symbol,
		Price:     current.InexactFloat64(),
		PriceText: current.StringFixed(2),
		Changes:   r.changes(closes),
	}

	q.Direction = Up
	if len(q.Changes) > 0 {
		q.Direction = q.Changes[0].Direction
	}
	q.Color = q.Direction.Color()

	q.News = r.Headlines(ctx, symbol, r.limit)
	return q
}

func (r *Resolver) changes(closes []decimal.Decimal) []Change {
	out := make([]Change, 0, len(r.windows))
	for _, w := range r.windows {
		pct, ok := PercentChange(closes, w.Offset)
		c := Change{Window: w.Label, Offset: w.Offset, Percent: pct, Available: ok}
		c.Direction = DirectionOf(pct)
		c.Color = c.Direction.Color()
		out = append(out, c)
	}
	return out
}

// Headlines returns up to limit recent items for symbol: the bundled company
// news when there is any, else a general search for "<SYMBOL> stock".
func (r *Resolver) Headlines(ctx context.Context, symbol string, limit int) []news.Item {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if limit <= 0 {
		limit = r.limit
	}

	if r.headlines != nil {
		to := r.clock.Now()
		from := to.Add(-headlineLookback)

		start := time.Now()
		items, err := r.headlines.CompanyNews(ctx, symbol, from, to, limit)
		r.metrics.ObserveUpstream(r.headlines.Name(), err, time.Since(start))

		if err != nil {
			slog.Warn("company news failed, falling back to search",
				"symbol", symbol, "kind", upstream.KindOf(err), "error", err)
		} else if len(items) > 0 {
			return truncate(items, limit)
		}
	}

	if r.search == nil {
		return []news.Item{}
	}
	return truncate(r.search.Fetch(ctx, news.Query{Text: fmt.Sprintf("%s stock", symbol), Limit: limit}), limit)
}

func truncate(items []news.Item, limit int) []news.Item {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func sentinel(symbol string, err error) Quote {
	msg := err.Error()
	if errors.Is(err, ErrNoPriceData) {
		msg = ErrNoPriceData.Error()
	}
	return Quote{
		Symbol:    symbol,
		PriceText: unavailablePrice,
		Changes:   []Change{},
		Color:     "gray",
		News:      []news.Item{},
		Error:     msg,
		ErrorKind: upstream.KindOf(err),
	}
}
