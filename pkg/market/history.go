package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jamesrrobbins/market-news/pkg/upstream"
	"github.com/jonboulle/clockwork"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
)

const (
	historyProvider = "Yahoo Finance"

	// A calendar year holds about 252 trading days, one short of a 1Y change.
	historyMonths = 13
)

// HistoryProvider returns daily closing prices, oldest first.
type HistoryProvider interface {
	DailyCloses(ctx context.Context, symbol string) ([]decimal.Decimal, error)
	Name() string
}

// YahooHistory pulls thirteen months of daily bars through the finance-go chart API.
type YahooHistory struct {
	clock clockwork.Clock
}

func NewYahooHistory(clock clockwork.Clock) *YahooHistory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &YahooHistory{clock: clock}
}

func (y *YahooHistory) Name() string {
	return historyProvider
}

func (y *YahooHistory) DailyCloses(ctx context.Context, symbol string) ([]decimal.Decimal, error) {
	end := y.clock.Now()
	start := end.AddDate(0, -historyMonths, 0)

	iter := chart.Get(&chart.Params{
		Symbol:   strings.ToUpper(symbol),
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	var closes []decimal.Decimal
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, upstream.Transport(historyProvider, err)
		}
		bar := iter.Bar()
		if bar == nil || bar.Close.IsZero() {
			continue
		}
		closes = append(closes, bar.Close)
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("price history %s: %w", symbol, classifyChartError(err))
	}
	return closes, nil
}

// finance-go reports every failure as a plain error with the remote message,
// so the kind is recovered from the text.
func classifyChartError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not found"), strings.Contains(msg, "no data"):
		return upstream.New(historyProvider, upstream.KindNotFound, err)
	case strings.Contains(msg, "too many requests"), strings.Contains(msg, "429"):
		return upstream.New(historyProvider, upstream.KindRateLimited, err)
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "401"):
		return upstream.New(historyProvider, upstream.KindUnauthorized, err)
	case strings.Contains(msg, "dial"), strings.Contains(msg, "timeout"), strings.Contains(msg, "connection"):
		return upstream.Transport(historyProvider, err)
	}
	return upstream.New(historyProvider, upstream.KindUpstream, err)
}
