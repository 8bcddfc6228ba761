package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/upstream"
	"github.com/mmcdole/gofeed"
)

const (
	googleNewsBaseURL = "https://news.google.com"
	googleNewsSource  = "Google News"
	titleSeparator    = " - "
)

// RSSClient searches the Google News RSS feed. It needs no API key.
type RSSClient struct {
	parser  *gofeed.Parser
	baseURL string
}

func NewRSSClient() *RSSClient {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 15 * time.Second}
	return &RSSClient{parser: parser, baseURL: googleNewsBaseURL}
}

func (c *RSSClient) Name() string {
	return googleNewsSource
}

func (c *RSSClient) Fetch(ctx context.Context, q Query) ([]Item, error) {
	limit := q.limit()

	feed, err := c.parser.ParseURLWithContext(c.feedURL(q), ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch: %w", c.classify(err))
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		title, source := SplitTitle(entry.Title)

		it := Item{
			Title:  title,
			Source: source,
			URL:    entry.Link,
		}
		if entry.PublishedParsed != nil {
			it.PublishedAt = *entry.PublishedParsed
		}

		items = append(items, it)
	}

	return normalize(items, limit, googleNewsSource), nil
}

func (c *RSSClient) feedURL(q Query) string {
	hl, gl, ceid := edition(q.Country)
	params := url.Values{}
	params.Set("hl", hl)
	params.Set("gl", gl)
	params.Set("ceid", ceid)

	terms := rssSearchTerms(q)
	if terms == "" {
		return c.baseURL + "/rss?" + params.Encode()
	}

	params.Set("q", terms)
	return c.baseURL + "/rss/search?" + params.Encode()
}

func (c *RSSClient) classify(err error) error {
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return upstream.FromStatus(c.Name(), httpErr.StatusCode, httpErr.Status)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return upstream.Transport(c.Name(), err)
	}

	return upstream.Parse(c.Name(), err)
}

// rssSearchTerms turns a query into Google News search syntax. A domain allowlist
// becomes "site:" terms so the fallback keeps the caller's source restriction.
func rssSearchTerms(q Query) string {
	if domains := q.DomainList(); len(domains) > 0 {
		sites := make([]string, len(domains))
		for i, d := range domains {
			sites[i] = "site:" + d
		}
		return strings.Join(sites, " OR ")
	}

	var parts []string
	if text := strings.TrimSpace(q.Text); text != "" {
		parts = append(parts, text)
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		parts = append(parts, category)
	}
	return strings.Join(parts, " ")
}

func edition(country string) (hl, gl, ceid string) {
	gl = strings.ToUpper(strings.TrimSpace(country))
	if gl == "" {
		gl = "US"
	}
	return "en-" + gl, gl, gl + ":en"
}

// SplitTitle recovers the publisher from a "Title - Source" headline by splitting on
// the last separator. Titles that legitimately contain " - " lose their tail to the
// source label.
func SplitTitle(raw string) (title, source string) {
	raw = strings.TrimSpace(raw)

	idx := strings.LastIndex(raw, titleSeparator)
	if idx < 0 {
		return raw, googleNewsSource
	}

	title = strings.TrimSpace(raw[:idx])
	source = strings.TrimSpace(raw[idx+len(titleSeparator):])
	if title == "" || source == "" {
		return raw, googleNewsSource
	}

	return title, source
}
