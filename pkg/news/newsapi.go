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

const newsAPIBaseURL = "https://newsapi.org/v2"

type NewsAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

func (c *NewsAPIClient) Fetch(ctx context.Context, q Query) ([]Item, error) {
	limit := q.limit()
	endpoint, params := newsAPIRequest(q, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIBaseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", upstream.Transport(c.Name(), err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("newsapi fetch: %w", upstream.FromStatus(c.Name(), resp.StatusCode, newsAPIErrorMessage(body)))
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", upstream.Parse(c.Name(), err))
	}

	if raw.Status == "error" {
		return nil, fmt.Errorf("newsapi fetch: %w", upstream.FromStatus(c.Name(), http.StatusBadGateway, raw.Message))
	}

	items := make([]Item, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		items = append(items, Item{
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: publishedAt,
		})
	}

	return normalize(items, limit, c.Name()), nil
}

func newsAPIRequest(q Query, limit int) (string, url.Values) {
	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(limit))

	switch q.Mode() {
	case ModeDomains:
		params.Set("domains", strings.Join(q.DomainList(), ","))
		params.Set("sortBy", "publishedAt")
		return "/everything", params
	case ModeTopHeadlines:
		if country := strings.ToLower(strings.TrimSpace(q.Country)); country != "" {
			params.Set("country", country)
		}
		if category := strings.ToLower(strings.TrimSpace(q.Category)); category != "" {
			params.Set("category", category)
		}
		return "/top-headlines", params
	default:
		params.Set("q", strings.TrimSpace(q.Text))
		params.Set("sortBy", "publishedAt")
		return "/everything", params
	}
}

func newsAPIErrorMessage(body []byte) string {
	var raw newsAPIResponse
	if err := json.Unmarshal(body, &raw); err == nil && raw.Message != "" {
		return raw.Code + ": " + raw.Message
	}
	return string(body)
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
}

type newsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
