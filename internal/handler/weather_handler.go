package handler

import (
	"context"
	"strings"

	"github.com/Jamesrrobbins/market-news/pkg/upstream"
	"github.com/Jamesrrobbins/market-news/pkg/weather"
	"github.com/gin-gonic/gin"
)

type WeatherResolver interface {
	Resolve(ctx context.Context, location string) weather.Snapshot
}

type WeatherHandler struct {
	resolver        WeatherResolver
	defaultLocation string
}

func NewWeatherHandler(resolver WeatherResolver, defaultLocation string) *WeatherHandler {
	return &WeatherHandler{resolver: resolver, defaultLocation: defaultLocation}
}

func (h *WeatherHandler) GetWeather(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		location = h.defaultLocation
	}

	snap := h.resolver.Resolve(c.Request.Context(), location)
	c.JSON(upstream.HTTPStatus(snap.ErrorKind), toWeatherResponse(snap))
}
