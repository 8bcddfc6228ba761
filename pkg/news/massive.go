package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/upstream"
)

const massiveBaseURL = "https://api.massive.com"

type MassiveClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewMassiveClient(apiKey string) *MassiveClient {
	return &MassiveClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *MassiveClient) Name() string {
	return "Massive"
}

func (c *MassiveClient) CompanyNews(ctx context.Context, symbol string, from, to time.Time, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{
		"ticker":            {strings.ToUpper(symbol)},
		"published_utc.gte": {from.UTC().Format(time.RFC3339)},
		"published_utc.lte": {to.UTC().Format(time.RFC3339)},
		"order":             {"desc"},
		"sort":              {"published_utc"},
		"limit":             {strconv.Itoa(limit)},
		"apiKey":            {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, massiveBaseURL+"/v2/reference/news?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("massive fetch: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("massive fetch: %w", upstream.Transport(c.Name(), err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("massive fetch: %w", upstream.FromStatus(c.Name(), resp.StatusCode, string(body)))
	}

	var raw massiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("massive decode: %w", upstream.Parse(c.Name(), err))
	}

	items := make([]Item, 0, len(raw.Results))
	for _, r := range raw.Results {
		publishedAt, err := time.Parse(time.RFC3339, r.PublishedUTC)
		if err != nil {
			publishedAt = time.Time{}
		}

		items = append(items, Item{
			Title:       r.Title,
			Source:      r.Publisher.Name,
			URL:         r.ArticleURL,
			PublishedAt: publishedAt,
		})
	}

	return normalize(items, limit, c.Name()), nil
}

type massiveResponse struct {
	Results []massiveResult `json:"results"`
}

type massiveResult struct {
	Title        string           `json:"title"`
	ArticleURL   string           `json:"article_url"`
	PublishedUTC string           `json:"published_utc"`
	Publisher    massivePublisher `json:"publisher"`
}

type massivePublisher struct {
	Name string `json:"name"`
}
