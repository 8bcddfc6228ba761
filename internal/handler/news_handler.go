package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Jamesrrobbins/market-news/pkg/news"
	"github.com/Jamesrrobbins/market-news/pkg/upstream"
	"github.com/gin-gonic/gin"
)

const (
	defaultNewsLimit = 10
	maxNewsLimit     = 50
)

type NewsFetcher interface {
	Fetch(ctx context.Context, q news.Query) []news.Item
}

type NewsHandler struct {
	resolver NewsFetcher
	rss      news.NewsClient
}

func NewNewsHandler(resolver NewsFetcher, rss news.NewsClient) *NewsHandler {
	return &NewsHandler{resolver: resolver, rss: rss}
}

func newsQuery(c *gin.Context) news.Query {
	return news.Query{
		Text:     strings.TrimSpace(c.Query("q")),
		Country:  strings.TrimSpace(c.Query("country")),
		Category: strings.TrimSpace(c.Query("category")),
		Domains:  strings.TrimSpace(c.Query("domains")),
		Limit:    getQueryLimit(c, defaultNewsLimit, maxNewsLimit),
	}
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	q := newsQuery(c)
	if q.Text == "" && q.Mode() == news.ModeEverything {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One of q, country, category or domains is required"})
		return
	}

	items := h.resolver.Fetch(c.Request.Context(), q)
	c.JSON(http.StatusOK, NewsResponse{
		Items: toItemResponses(items),
		Mode:  string(q.Mode()),
		Count: len(items),
	})
}

// GetRSS queries the RSS backend alone and reports its failures instead of hiding them.
func (h *NewsHandler) GetRSS(c *gin.Context) {
	q := newsQuery(c)

	items, err := h.rss.Fetch(c.Request.Context(), q)
	if err != nil {
		kind := upstream.KindOf(err)
		slog.Error("error fetching rss news", "error", err, "kind", kind)
		c.JSON(upstream.HTTPStatus(kind), gin.H{"error": "News feed unavailable", "error_kind": kind})
		return
	}

	c.JSON(http.StatusOK, NewsResponse{
		Items: toItemResponses(items),
		Mode:  "rss",
		Count: len(items),
	})
}
