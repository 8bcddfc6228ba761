package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/Jamesrrobbins/market-news/internal/dashboard"
	"github.com/gin-gonic/gin"
)

type DashboardBuilder interface {
	Build(ctx context.Context, location string) dashboard.Dashboard
}

type DashboardHandler struct {
	builder         DashboardBuilder
	defaultLocation string
}

func NewDashboardHandler(builder DashboardBuilder, defaultLocation string) *DashboardHandler {
	return &DashboardHandler{builder: builder, defaultLocation: defaultLocation}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		location = h.defaultLocation
	}

	c.JSON(http.StatusOK, toDashboardResponse(h.builder.Build(c.Request.Context(), location)))
}
