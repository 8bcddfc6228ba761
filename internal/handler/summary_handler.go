package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/Jamesrrobbins/market-news/pkg/llm"
	"github.com/gin-gonic/gin"
)

type Summarizer interface {
	Summarize(ctx context.Context, items []llm.Item, contextLabel string, style llm.Style) string
	SummarizeText(ctx context.Context, text, contextLabel string, style llm.Style) string
}

type SummaryHandler struct {
	summarizer Summarizer
}

func NewSummaryHandler(summarizer Summarizer) *SummaryHandler {
	return &SummaryHandler{summarizer: summarizer}
}

// CreateSummary summarizes items when given, otherwise the free text.
func (h *SummaryHandler) CreateSummary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	label := strings.TrimSpace(req.Context)
	if label == "" {
		label = "General"
	}
	style := llm.ParseStyle(req.Style)

	var summary string
	if len(req.Items) > 0 {
		items := make([]llm.Item, 0, len(req.Items))
		for _, it := range req.Items {
			if strings.TrimSpace(it.Title) == "" {
				continue
			}
			items = append(items, llm.Item{Title: strings.TrimSpace(it.Title), Source: strings.TrimSpace(it.Source)})
		}
		summary = h.summarizer.Summarize(c.Request.Context(), items, label, style)
	} else {
		summary = h.summarizer.SummarizeText(c.Request.Context(), req.Text, label, style)
	}

	c.JSON(http.StatusOK, SummaryResponse{Summary: summary, Context: label, Style: string(style)})
}
