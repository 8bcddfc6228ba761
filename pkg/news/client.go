package news

import (
	"context"
	"strings"
	"time"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	removedTitle = "[Removed]"
)

type Item struct {
	Title       string
	Source      string
	URL         string
	PublishedAt time.Time
}

type Mode string

const (
	ModeDomains      Mode = "domains"
	ModeTopHeadlines Mode = "top_headlines"
	ModeEverything   Mode = "everything"
)

// Query selects articles. Domains wins over Country/Category, which win over Text.
type Query struct {
	Text     string
	Country  string
	Category string
	Domains  string
	Limit    int
}

func (q Query) Mode() Mode {
	if len(q.DomainList()) > 0 {
		return ModeDomains
	}
	if strings.TrimSpace(q.Country) != "" || strings.TrimSpace(q.Category) != "" {
		return ModeTopHeadlines
	}
	return ModeEverything
}

// DomainList splits the comma-separated allowlist, dropping blanks.
func (q Query) DomainList() []string {
	var domains []string
	for _, d := range strings.Split(q.Domains, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return defaultLimit
	}
	if q.Limit > maxLimit {
		return maxLimit
	}
	return q.Limit
}

type NewsClient interface {
	Fetch(ctx context.Context, q Query) ([]Item, error)
	Name() string
}

// normalize drops items without a title or URL, fills in the provider label as source
// and truncates to limit. Order is preserved.
func normalize(items []Item, limit int, defaultSource string) []Item {
	out := make([]Item, 0, min(len(items), limit))
	for _, it := range items {
		if len(out) >= limit {
			break
		}

		it.Title = strings.TrimSpace(it.Title)
		it.URL = strings.TrimSpace(it.URL)
		it.Source = strings.TrimSpace(it.Source)

		if it.Title == "" || it.URL == "" || it.Title == removedTitle {
			continue
		}
		if it.Source == "" || it.Source == removedTitle {
			it.Source = defaultSource
		}

		out = append(out, it)
	}
	return out
}
