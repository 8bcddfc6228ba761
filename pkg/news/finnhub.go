package news

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
	"github.com/Jamesrrobbins/market-news/pkg/upstream"
)

const finnhubDateLayout = "2006-01-02"

// FinnHubClient serves the headlines bundled with a ticker's market data.
type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return newFinnHubClient(cfg)
}

func newFinnHubClient(cfg *finnhub.Configuration) *FinnHubClient {
	return &FinnHubClient{client: finnhub.NewAPIClient(cfg).DefaultApi}
}

func (c *FinnHubClient) Name() string {
	return "Finnhub"
}

// CompanyNews returns up to limit headlines published for symbol between from and to.
func (c *FinnHubClient) CompanyNews(ctx context.Context, symbol string, from, to time.Time, limit int) ([]Item, error) {
	res, httpResp, err := c.client.CompanyNews(ctx).
		Symbol(strings.ToUpper(symbol)).
		From(from.Format(finnhubDateLayout)).
		To(to.Format(finnhubDateLayout)).
		Execute()
	if err != nil {
		if httpResp != nil && httpResp.StatusCode >= 300 {
			return nil, fmt.Errorf("finnhub company news: %w", upstream.FromStatus(c.Name(), httpResp.StatusCode, err.Error()))
		}
		var apiErr finnhub.GenericOpenAPIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("finnhub company news: %w", upstream.Parse(c.Name(), err))
		}
		return nil, fmt.Errorf("finnhub company news: %w", upstream.Transport(c.Name(), err))
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	return normalize(companyNewsItems(res), limit, c.Name()), nil
}

func companyNewsItems(res []finnhub.CompanyNews) []Item {
	items := make([]Item, 0, len(res))
	for _, n := range res {
		var it Item

		if n.Headline != nil {
			it.Title = *n.Headline
		}

		if n.Source != nil {
			it.Source = *n.Source
		}

		if n.Url != nil {
			it.URL = *n.Url
		}

		if n.Datetime != nil && *n.Datetime > 0 {
			it.PublishedAt = time.Unix(*n.Datetime, 0).UTC()
		}

		items = append(items, it)
	}
	return items
}
