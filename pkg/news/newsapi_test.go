package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/upstream"
	"github.com/go-playground/assert/v2"
)

func newTestNewsAPIClient(srv *httptest.Server) *NewsAPIClient {
	client := &NewsAPIClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return client
}

func TestNewsAPIFetch(t *testing.T) {
	payload := map[string]interface{}{
		"status":       "ok",
		"totalResults": 3,
		"articles": []map[string]interface{}{
			{
				"source":      map[string]interface{}{"id": "bbc-news", "name": "BBC News"},
				"title":       "Bank of England holds rates",
				"url":         "https://bbc.co.uk/news/1",
				"publishedAt": "2026-03-02T09:30:00Z",
			},
			{
				"source": map[string]interface{}{"id": nil, "name": "[Removed]"},
				"title":  "[Removed]",
				"url":    "https://removed.com",
			},
			{
				"source": map[string]interface{}{"id": nil, "name": ""},
				"title":  "Markets open higher",
				"url":    "https://example.com/markets",
			},
		},
	}

	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	items, err := newTestNewsAPIClient(srv).Fetch(context.Background(), Query{Text: "London", Limit: 5})

	assert.Equal(t, nil, err)
	assert.Equal(t, "/v2/everything", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, 2, len(items))

	assert.Equal(t, "Bank of England holds rates", items[0].Title)
	assert.Equal(t, "BBC News", items[0].Source)
	assert.Equal(t, "https://bbc.co.uk/news/1", items[0].URL)
	assert.Equal(t, 2026, items[0].PublishedAt.Year())

	assert.Equal(t, "NewsAPI", items[1].Source)
	assert.Equal(t, time.Time{}, items[1].PublishedAt)
}

func TestNewsAPIFetch_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status":"error","code":"rateLimited","message":"You have made too many requests"}`))
	}))
	defer srv.Close()

	items, err := newTestNewsAPIClient(srv).Fetch(context.Background(), Query{Text: "London"})

	assert.Equal(t, 0, len(items))
	assert.NotEqual(t, nil, err)
	assert.Equal(t, upstream.KindRateLimited, upstream.KindOf(err))
}

func TestNewsAPIFetch_Truncates(t *testing.T) {
	articles := make([]map[string]interface{}, 0, 8)
	for i := 0; i < 8; i++ {
		articles = append(articles, map[string]interface{}{
			"source": map[string]interface{}{"name": "Reuters"},
			"title":  "Story",
			"url":    "https://example.com/story",
		})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "articles": articles})
	}))
	defer srv.Close()

	items, err := newTestNewsAPIClient(srv).Fetch(context.Background(), Query{Category: "business", Limit: 3})

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(items))
}

func TestNewsAPIRequest_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		query    Query
		endpoint string
		param    string
		value    string
	}{
		{
			name:     "domains win over country and category",
			query:    Query{Domains: "bbc.co.uk, theguardian.com", Country: "gb", Category: "business", Text: "rates"},
			endpoint: "/everything",
			param:    "domains",
			value:    "bbc.co.uk,theguardian.com",
		},
		{
			name:     "category uses top headlines",
			query:    Query{Category: "Business", Text: "ignored"},
			endpoint: "/top-headlines",
			param:    "category",
			value:    "business",
		},
		{
			name:     "country uses top headlines",
			query:    Query{Country: "US"},
			endpoint: "/top-headlines",
			param:    "country",
			value:    "us",
		},
		{
			name:     "plain text searches everything",
			query:    Query{Text: " London "},
			endpoint: "/everything",
			param:    "q",
			value:    "London",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, params := newsAPIRequest(tt.query, 10)
			assert.Equal(t, tt.endpoint, endpoint)
			assert.Equal(t, tt.value, params.Get(tt.param))
			assert.Equal(t, "10", params.Get("pageSize"))
		})
	}
}

func TestNewsAPIRequest_DomainsSortedByPublishTime(t *testing.T) {
	_, params := newsAPIRequest(Query{Domains: "bbc.co.uk", Country: "gb"}, 10)
	assert.Equal(t, "publishedAt", params.Get("sortBy"))
	assert.Equal(t, "", params.Get("country"))
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
