package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Jamesrrobbins/market-news/pkg/observability"
	"github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeCompleter) Name() string { return "fake" }

var headlines = []Item{
	{Title: "Fed holds rates steady", Source: "Reuters"},
	{Title: "Oil slides on supply glut", Source: "Bloomberg"},
	{Title: "Untitled sponsor post"},
}

func TestSummarize_EmptyItemsSkipsCompleter(t *testing.T) {
	fc := &fakeCompleter{reply: "should not be used"}
	m := observability.NewMetricsForTesting()

	got := NewSummarizer(fc, m).Summarize(context.Background(), nil, "Global Market", StyleBullets)

	assert.Equal(t, NoNewsMessage, got)
	assert.Equal(t, 0, len(fc.prompts))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Summaries.WithLabelValues("empty")))
}

func TestSummarize_PromptContents(t *testing.T) {
	fc := &fakeCompleter{reply: "  - Fed holds\n- Oil slides\n- Quiet day  \n"}

	got := NewSummarizer(fc, nil).Summarize(context.Background(), headlines, "UK National", StyleBullets)

	assert.Equal(t, "- Fed holds\n- Oil slides\n- Quiet day", got)
	assert.Equal(t, 1, len(fc.prompts))

	p := fc.prompts[0]
	assert.Equal(t, true, strings.Contains(p, "UK National"))
	assert.Equal(t, true, strings.Contains(p, "- Fed holds rates steady (Reuters)"))
	assert.Equal(t, true, strings.Contains(p, "- Untitled sponsor post\n"))
	assert.Equal(t, true, strings.Contains(p, "advertisements"))
	assert.Equal(t, true, strings.Contains(p, "3 concise bullet points"))
}

func TestSummarize_ParagraphStyle(t *testing.T) {
	fc := &fakeCompleter{reply: "Markets were calm."}

	NewSummarizer(fc, nil).Summarize(context.Background(), headlines, "Local (London)", StyleParagraph)

	assert.Equal(t, true, strings.Contains(fc.prompts[0], "one short paragraph"))
}

func TestSummarize_Unavailable(t *testing.T) {
	tests := []struct {
		name      string
		completer Completer
	}{
		{"completer error", &fakeCompleter{err: errors.New("rate limited")}},
		{"empty completion", &fakeCompleter{reply: "   "}},
		{"no completer", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := observability.NewMetricsForTesting()
			got := NewSummarizer(tt.completer, m).Summarize(context.Background(), headlines, "AAPL Stock", StyleBullets)

			assert.Equal(t, UnavailableMessage, got)
			assert.Equal(t, float64(1), testutil.ToFloat64(m.Summaries.WithLabelValues("unavailable")))
		})
	}
}

func TestSummarizeText(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	s := NewSummarizer(fc, nil)

	assert.Equal(t, NoNewsMessage, s.SummarizeText(context.Background(), " \n ", "x", StyleBullets))
	assert.Equal(t, 0, len(fc.prompts))

	assert.Equal(t, "ok", s.SummarizeText(context.Background(), "Apple beats estimates", "AAPL Stock", StyleBullets))
	assert.Equal(t, true, strings.Contains(fc.prompts[0], "Apple beats estimates"))
}

func TestBriefing(t *testing.T) {
	fc := &fakeCompleter{reply: "SECTION 1 ..."}

	got := NewSummarizer(fc, nil).Briefing(context.Background(),
		[]string{"Stocks rally - Reuters", "Dollar dips - FT"},
		map[string][]string{
			"TSLA": {"Tesla recalls cars"},
			"AAPL": {"Apple unveils phone", "Apple beats estimates"},
		})

	assert.Equal(t, "SECTION 1 ...", got)

	p := fc.prompts[0]
	assert.Equal(t, true, strings.Contains(p, "SECTION 1: MACRO MARKET"))
	assert.Equal(t, true, strings.Contains(p, "Stocks rally - Reuters\nDollar dips - FT"))
	assert.Equal(t, true, strings.Contains(p, "SECTION 2: MY PORTFOLIO"))
	assert.Equal(t, true, strings.Index(p, "AAPL:") < strings.Index(p, "TSLA:"))
	assert.Equal(t, true, strings.Contains(p, "- Apple beats estimates"))
}

func TestBriefing_NothingToSummarize(t *testing.T) {
	fc := &fakeCompleter{reply: "unused"}

	assert.Equal(t, NoNewsMessage, NewSummarizer(fc, nil).Briefing(context.Background(), nil, nil))
	assert.Equal(t, 0, len(fc.prompts))
}

func TestParseStyle(t *testing.T) {
	assert.Equal(t, StyleParagraph, ParseStyle(" Paragraph "))
	assert.Equal(t, StyleBullets, ParseStyle("bullets"))
	assert.Equal(t, StyleBullets, ParseStyle(""))
	assert.Equal(t, StyleBullets, ParseStyle("haiku"))
}

func TestNewCompleter(t *testing.T) {
	assert.Equal(t, nil, NewCompleter(ProviderOpenAI, "", "key"))
	assert.Equal(t, nil, NewCompleter(ProviderAnthropic, "key", ""))
	assert.Equal(t, "gpt-4o-mini", NewCompleter("", "key", "").Name())
	assert.Equal(t, "claude-4.5-haiku", NewCompleter(ProviderAnthropic, "", "key").Name())
}
