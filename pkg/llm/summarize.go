package llm

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Jamesrrobbins/market-news/pkg/observability"
)

const (
	NoNewsMessage      = "No recent news found"
	UnavailableMessage = "AI Summary Unavailable"
)

// Item is the slice of a headline the prompt needs.
type Item struct {
	Title  string
	Source string
}

type Summarizer struct {
	completer Completer
	metrics   *observability.Metrics
}

// NewSummarizer accepts a nil completer; every summary is then unavailable.
func NewSummarizer(completer Completer, metrics *observability.Metrics) *Summarizer {
	return &Summarizer{completer: completer, metrics: metrics}
}

func (s *Summarizer) Available() bool {
	return s.completer != nil
}

// Summarize condenses headlines for contextLabel. It always returns display text.
func (s *Summarizer) Summarize(ctx context.Context, items []Item, contextLabel string, style Style) string {
	if len(items) == 0 {
		s.metrics.ObserveSummary("empty")
		return NoNewsMessage
	}
	return s.complete(ctx, summaryPrompt(itemLines(items), contextLabel, style), contextLabel)
}

// SummarizeText is Summarize for text the caller already formatted.
func (s *Summarizer) SummarizeText(ctx context.Context, text, contextLabel string, style Style) string {
	if strings.TrimSpace(text) == "" {
		s.metrics.ObserveSummary("empty")
		return NoNewsMessage
	}
	return s.complete(ctx, summaryPrompt(text, contextLabel, style), contextLabel)
}

// Briefing writes the two-section daily briefing: macro market, then one line per ticker.
func (s *Summarizer) Briefing(ctx context.Context, marketHeadlines []string, stockNews map[string][]string) string {
	if len(marketHeadlines) == 0 && len(stockNews) == 0 {
		s.metrics.ObserveSummary("empty")
		return NoNewsMessage
	}
	return s.complete(ctx, briefingPrompt(marketHeadlines, stockNews), "daily briefing")
}

func (s *Summarizer) complete(ctx context.Context, prompt, contextLabel string) string {
	if s.completer == nil {
		s.metrics.ObserveSummary("unavailable")
		return UnavailableMessage
	}

	out, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("summary failed", "context", contextLabel, "model", s.completer.Name(), "error", err)
		s.metrics.ObserveSummary("unavailable")
		return UnavailableMessage
	}

	out = strings.TrimSpace(out)
	if out == "" {
		s.metrics.ObserveSummary("unavailable")
		return UnavailableMessage
	}

	s.metrics.ObserveSummary("generated")
	return out
}
