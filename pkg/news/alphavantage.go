package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/upstream"
)

const (
	alphaVantageBaseURL    = "https://www.alphavantage.co"
	alphaVantageTimeLayout = "20060102T150405"
	alphaVantageFromLayout = "20060102T1504"
)

type AlphaVantageClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

// CompanyNews queries NEWS_SENTIMENT filtered to one ticker.
func (c *AlphaVantageClient) CompanyNews(ctx context.Context, symbol string, from, to time.Time, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{
		"function":  {"NEWS_SENTIMENT"},
		"tickers":   {strings.ToUpper(symbol)},
		"time_from": {from.UTC().Format(alphaVantageFromLayout)},
		"time_to":   {to.UTC().Format(alphaVantageFromLayout)},
		"sort":      {"LATEST"},
		"limit":     {strconv.Itoa(limit)},
		"apikey":    {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, alphaVantageBaseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", upstream.Transport(c.Name(), err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("alphavantage fetch: %w", upstream.FromStatus(c.Name(), resp.StatusCode, string(body)))
	}

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", upstream.Parse(c.Name(), err))
	}

	// Quota and key problems come back as 200 with a message instead of a feed.
	if msg := raw.message(); msg != "" {
		kind := upstream.KindRateLimited
		if strings.Contains(strings.ToLower(msg), "apikey") {
			kind = upstream.KindUnauthorized
		}
		return nil, fmt.Errorf("alphavantage fetch: %w", upstream.New(c.Name(), kind, errors.New(msg)))
	}

	items := make([]Item, 0, len(raw.Feed))
	for _, f := range raw.Feed {
		publishedAt, err := time.Parse(alphaVantageTimeLayout, f.TimePublished)
		if err != nil {
			publishedAt = time.Time{}
		}

		items = append(items, Item{
			Title:       f.Title,
			Source:      f.Source,
			URL:         f.URL,
			PublishedAt: publishedAt,
		})
	}

	return normalize(items, limit, c.Name()), nil
}

type avResponse struct {
	Feed        []avFeedItem `json:"feed"`
	Note        string       `json:"Note"`
	Information string       `json:"Information"`
	ErrorMsg    string       `json:"Error Message"`
}

func (r avResponse) message() string {
	if len(r.Feed) > 0 {
		return ""
	}
	for _, m := range []string{r.ErrorMsg, r.Information, r.Note} {
		if m != "" {
			return m
		}
	}
	return ""
}

type avFeedItem struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	TimePublished string `json:"time_published"`
}
