package llm

import (
	"fmt"
	"sort"
	"strings"
)

type Style string

const (
	StyleBullets   Style = "bullets"
	StyleParagraph Style = "paragraph"
)

// ParseStyle accepts "bullets" or "paragraph"; anything else is bullets.
func ParseStyle(s string) Style {
	if Style(strings.ToLower(strings.TrimSpace(s))) == StyleParagraph {
		return StyleParagraph
	}
	return StyleBullets
}

func (s Style) instruction() string {
	if s == StyleParagraph {
		return "Write one short paragraph (2-3 sentences) covering only the material events."
	}
	return "Write exactly 3 concise bullet points, one material event per bullet, each starting with \"- \"."
}

func summaryPrompt(body, contextLabel string, style Style) string {
	return fmt.Sprintf(`You are a news analyst preparing a %s briefing.

Rules:
1. Ignore advertisements, sponsored content and promotional items
2. Keep only material events: earnings, policy, major incidents, market moves
3. Do not invent facts that are not in the headlines
4. %s

Headlines:
%s`, contextLabel, style.instruction(), body)
}

func itemLines(items []Item) string {
	var sb strings.Builder
	for _, it := range items {
		if it.Source != "" {
			fmt.Fprintf(&sb, "- %s (%s)\n", it.Title, it.Source)
		} else {
			fmt.Fprintf(&sb, "- %s\n", it.Title)
		}
	}
	return sb.String()
}

func briefingPrompt(marketHeadlines []string, stockNews map[string][]string) string {
	tickers := make([]string, 0, len(stockNews))
	for t := range stockNews {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	var stocks strings.Builder
	for _, t := range tickers {
		fmt.Fprintf(&stocks, "\n%s:\n", t)
		for _, s := range stockNews[t] {
			fmt.Fprintf(&stocks, "- %s\n", s)
		}
	}

	return fmt.Sprintf(`You are a financial analyst. Summarize the following news into a daily briefing.

SECTION 1: MACRO MARKET (Summarize the general vibe in 3 bullet points)
%s

SECTION 2: MY PORTFOLIO (Give a 1-sentence takeaway for each stock based on the news)
%s
Keep it professional, concise, and actionable.`, strings.Join(marketHeadlines, "\n"), stocks.String())
}
