package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Jamesrrobbins/market-news/internal/watchlist"
	"github.com/gin-gonic/gin"
)

type WatchlistStore interface {
	Symbols() []string
	Add(ctx context.Context, symbol string) (bool, error)
	Remove(ctx context.Context, symbol string) (bool, error)
	Clear(ctx context.Context) error
}

type WatchlistHandler struct {
	watchlist WatchlistStore
}

func NewWatchlistHandler(w WatchlistStore) *WatchlistHandler {
	return &WatchlistHandler{watchlist: w}
}

func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, WatchlistResponse{Symbols: h.watchlist.Symbols()})
}

func (h *WatchlistHandler) AddSymbol(c *gin.Context) {
	var req WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	symbol := watchlist.Normalize(req.Symbol)
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
		return
	}

	added, err := h.watchlist.Add(c.Request.Context(), symbol)
	if err != nil {
		slog.Error("error saving watchlist", "error", err, "symbol", symbol)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save watchlist"})
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, WatchlistResponse{Symbols: h.watchlist.Symbols()})
}

func (h *WatchlistHandler) RemoveSymbol(c *gin.Context) {
	symbol := watchlist.Normalize(c.Param("symbol"))

	removed, err := h.watchlist.Remove(c.Request.Context(), symbol)
	if err != nil {
		slog.Error("error saving watchlist", "error", err, "symbol", symbol)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save watchlist"})
		return
	}

	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Symbol not in watchlist"})
		return
	}

	c.JSON(http.StatusOK, WatchlistResponse{Symbols: h.watchlist.Symbols()})
}

func (h *WatchlistHandler) ClearWatchlist(c *gin.Context) {
	if err := h.watchlist.Clear(c.Request.Context()); err != nil {
		slog.Error("error clearing watchlist", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save watchlist"})
		return
	}

	c.JSON(http.StatusOK, WatchlistResponse{Symbols: h.watchlist.Symbols()})
}
