package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
	"github.com/Jamesrrobbins/market-news/pkg/upstream"
	"github.com/go-playground/assert/v2"
)

func newTestFinnHubClient(srv *httptest.Server) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", "test-key")
	cfg.HTTPClient = srv.Client()
	cfg.Servers = finnhub.ServerConfigurations{{URL: srv.URL}}
	return newFinnHubClient(cfg)
}

func TestFinnHubCompanyNews(t *testing.T) {
	payload := []map[string]interface{}{
		{
			"id":       7001,
			"headline": "Nvidia beats estimates",
			"source":   "Yahoo",
			"url":      "https://example.com/nvda",
			"datetime": 1772445600,
		},
		{
			"id":       7002,
			"headline": "Nvidia supplier update",
			"source":   "",
			"url":      "https://example.com/nvda-2",
		},
		{
			"id":       7003,
			"headline": "",
			"url":      "https://example.com/blank",
		},
	}

	var gotSymbol, gotFrom, gotTo, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbol = r.URL.Query().Get("symbol")
		gotFrom = r.URL.Query().Get("from")
		gotTo = r.URL.Query().Get("to")
		gotToken = r.Header.Get("X-Finnhub-Token")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	to := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -7)

	items, err := newTestFinnHubClient(srv).CompanyNews(context.Background(), "nvda", from, to, 5)

	assert.Equal(t, nil, err)
	assert.Equal(t, "NVDA", gotSymbol)
	assert.Equal(t, "2026-02-23", gotFrom)
	assert.Equal(t, "2026-03-02", gotTo)
	assert.Equal(t, "test-key", gotToken)

	assert.Equal(t, 2, len(items))
	assert.Equal(t, "Nvidia beats estimates", items[0].Title)
	assert.Equal(t, "Yahoo", items[0].Source)
	assert.Equal(t, int64(1772445600), items[0].PublishedAt.Unix())
	assert.Equal(t, "Finnhub", items[1].Source)
}

func TestFinnHubCompanyNews_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid API key"}`))
	}))
	defer srv.Close()

	now := time.Now()
	_, err := newTestFinnHubClient(srv).CompanyNews(context.Background(), "AAPL", now.AddDate(0, 0, -7), now, 5)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, upstream.KindUnauthorized, upstream.KindOf(err))
}

func TestCompanyNewsItems_NilFields(t *testing.T) {
	headline := "Tesla recalls vehicles"
	items := companyNewsItems([]finnhub.CompanyNews{{Headline: &headline}})

	assert.Equal(t, 1, len(items))
	assert.Equal(t, "Tesla recalls vehicles", items[0].Title)
	assert.Equal(t, "", items[0].URL)
	assert.Equal(t, time.Time{}, items[0].PublishedAt)
}
