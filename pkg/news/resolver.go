package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/observability"
	"github.com/Jamesrrobbins/market-news/pkg/upstream"
)

// Resolver asks each client in order and returns the first non-empty result.
// Failures are logged and count as "no items"; callers only ever see a slice.
type Resolver struct {
	clients []NewsClient
	metrics *observability.Metrics
}

// NewResolver builds the fallback chain, skipping nil clients so a missing API key
// simply removes that provider.
func NewResolver(metrics *observability.Metrics, clients ...NewsClient) *Resolver {
	r := &Resolver{metrics: metrics}
	for _, c := range clients {
		if c != nil && !isNilClient(c) {
			r.clients = append(r.clients, c)
		}
	}
	return r
}

func (r *Resolver) Fetch(ctx context.Context, q Query) []Item {
	for _, client := range r.clients {
		start := time.Now()
		items, err := client.Fetch(ctx, q)
		r.metrics.ObserveUpstream(client.Name(), err, time.Since(start))

		if err != nil {
			slog.Warn("news fetch failed, trying next source",
				"source", client.Name(), "mode", q.Mode(), "kind", upstream.KindOf(err), "error", err)
			continue
		}

		if len(items) > 0 {
			return items
		}

		slog.Info("news source returned no items", "source", client.Name(), "mode", q.Mode())
	}

	return []Item{}
}

// isNilClient catches typed nil pointers such as (*NewsAPIClient)(nil).
func isNilClient(c NewsClient) bool {
	switch v := c.(type) {
	case *NewsAPIClient:
		return v == nil
	case *RSSClient:
		return v == nil
	}
	return false
}
