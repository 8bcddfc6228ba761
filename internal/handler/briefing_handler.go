package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Jamesrrobbins/market-news/internal/briefing"
	"github.com/Jamesrrobbins/market-news/internal/model"
	"github.com/gin-gonic/gin"
)

type BriefingStore interface {
	GetLatestBriefing(ctx context.Context) (*model.Briefing, error)
	GetBriefings(ctx context.Context, limit, offset int) ([]model.Briefing, error)
	GetBriefingTotal(ctx context.Context) (int, error)
}

type BriefingGenerator interface {
	Generate(ctx context.Context) (*model.Briefing, error)
}

type BriefingHandler struct {
	repository BriefingStore
	generator  BriefingGenerator
}

// NewBriefingHandler accepts a nil repository when no database is configured;
// every route then answers 503.
func NewBriefingHandler(repository BriefingStore, generator BriefingGenerator) *BriefingHandler {
	return &BriefingHandler{repository: repository, generator: generator}
}

func (h *BriefingHandler) available(c *gin.Context) bool {
	if h.repository == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Briefing history is not configured"})
		return false
	}
	return true
}

func (h *BriefingHandler) GetLatestBriefing(c *gin.Context) {
	if !h.available(c) {
		return
	}

	b, err := h.repository.GetLatestBriefing(c.Request.Context())
	if err != nil {
		slog.Error("error fetching latest briefing", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No briefing available"})
		return
	}

	c.JSON(http.StatusOK, toBriefingResponse(*b))
}

func (h *BriefingHandler) GetBriefings(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit := getQueryLimit(c, 10, 100)
	offset := getQueryOffset(c)

	briefings, err := h.repository.GetBriefings(c.Request.Context(), limit, offset)
	if err != nil {
		slog.Error("error fetching briefings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetBriefingTotal(c.Request.Context())
	if err != nil {
		slog.Error("error fetching briefing total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := BriefingsResponse{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		History: []BriefingResponse{},
	}

	// Only the first page starts with the latest briefing.
	if offset == 0 && len(briefings) > 0 {
		latest := toBriefingResponse(briefings[0])
		res.Latest = &latest
		briefings = briefings[1:]
	}
	for _, b := range briefings {
		res.History = append(res.History, toBriefingResponse(b))
	}

	c.JSON(http.StatusOK, res)
}

func (h *BriefingHandler) CreateBriefing(c *gin.Context) {
	if !h.available(c) {
		return
	}

	b, err := h.generator.Generate(c.Request.Context())
	if errors.Is(err, briefing.ErrUnavailable) {
		slog.Warn("briefing unavailable", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI briefing unavailable"})
		return
	}
	if err != nil {
		slog.Error("error generating briefing", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save briefing"})
		return
	}

	c.JSON(http.StatusCreated, toBriefingResponse(*b))
}
