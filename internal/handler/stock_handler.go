package handler

import (
	"context"
	"net/http"

	"github.com/Jamesrrobbins/market-news/internal/watchlist"
	"github.com/Jamesrrobbins/market-news/pkg/market"
	"github.com/gin-gonic/gin"
)

type QuoteResolver interface {
	Quote(ctx context.Context, symbol string) market.Quote
}

type StockHandler struct {
	quotes QuoteResolver
}

func NewStockHandler(quotes QuoteResolver) *StockHandler {
	return &StockHandler{quotes: quotes}
}

// GetStock always answers 200; a failed lookup comes back as a sentinel quote.
func (h *StockHandler) GetStock(c *gin.Context) {
	symbol := watchlist.Normalize(c.Param("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid symbol"})
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(h.quotes.Quote(c.Request.Context(), symbol)))
}
