package model

import "time"

// Briefing is one generated daily briefing and the inputs it was written from.
type Briefing struct {
	ID              int64
	Content         string
	MarketHeadlines []string
	Tickers         []string
	ModelUsed       string
	GeneratedAt     time.Time
}
