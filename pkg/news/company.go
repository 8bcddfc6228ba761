package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/observability"
	"github.com/Jamesrrobbins/market-news/pkg/upstream"
)

// CompanyNewsClient returns headlines tagged with one ticker.
type CompanyNewsClient interface {
	CompanyNews(ctx context.Context, symbol string, from, to time.Time, limit int) ([]Item, error)
	Name() string
}

// CompanyNewsChain tries each provider in order until one returns items.
type CompanyNewsChain struct {
	clients []CompanyNewsClient
	metrics *observability.Metrics
}

func NewCompanyNewsChain(metrics *observability.Metrics, clients ...CompanyNewsClient) *CompanyNewsChain {
	return &CompanyNewsChain{clients: clients, metrics: metrics}
}

func (c *CompanyNewsChain) Name() string {
	return "company news"
}

func (c *CompanyNewsChain) Len() int {
	return len(c.clients)
}

// CompanyNews returns the last provider error only when every provider failed.
func (c *CompanyNewsChain) CompanyNews(ctx context.Context, symbol string, from, to time.Time, limit int) ([]Item, error) {
	var errs []error
	for _, client := range c.clients {
		start := time.Now()
		items, err := client.CompanyNews(ctx, symbol, from, to, limit)
		c.metrics.ObserveUpstream(client.Name(), err, time.Since(start))

		if err != nil {
			slog.Warn("company news failed, trying next source",
				"source", client.Name(), "symbol", symbol, "kind", upstream.KindOf(err), "error", err)
			errs = append(errs, err)
			continue
		}
		if len(items) > 0 {
			return items, nil
		}
	}

	if len(errs) == len(c.clients) && len(errs) > 0 {
		return nil, errs[len(errs)-1]
	}
	return []Item{}, nil
}
