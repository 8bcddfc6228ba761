package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/Jamesrrobbins/market-news/internal/app"
	"github.com/Jamesrrobbins/market-news/internal/config"
	"github.com/Jamesrrobbins/market-news/internal/handler"
	"github.com/Jamesrrobbins/market-news/internal/logging"
	"github.com/Jamesrrobbins/market-news/pkg/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(logging.New(cfg, "market-news-api"))

	a, err := app.New(context.Background(), cfg, observability.NewMetrics())
	if err != nil {
		log.Fatalf("error building app: %v", err)
	}
	defer a.Close()

	weatherHandler := handler.NewWeatherHandler(a.Weather, cfg.DefaultLocation)
	newsHandler := handler.NewNewsHandler(a.News, a.RSS)
	stockHandler := handler.NewStockHandler(a.Market)
	watchlistHandler := handler.NewWatchlistHandler(a.Watchlist)
	summaryHandler := handler.NewSummaryHandler(a.Summarizer)
	dashboardHandler := handler.NewDashboardHandler(a.Dashboard, cfg.DefaultLocation)

	var briefingStore handler.BriefingStore
	if a.Briefings != nil {
		briefingStore = a.Briefings
	}
	briefingHandler := handler.NewBriefingHandler(briefingStore, a.Generator)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", handler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/weather", weatherHandler.GetWeather)
	r.GET("/news", newsHandler.GetNews)
	r.GET("/news/rss", newsHandler.GetRSS)
	r.GET("/stocks/:symbol", stockHandler.GetStock)
	r.GET("/watchlist", watchlistHandler.GetWatchlist)
	r.POST("/watchlist", watchlistHandler.AddSymbol)
	r.DELETE("/watchlist", watchlistHandler.ClearWatchlist)
	r.DELETE("/watchlist/:symbol", watchlistHandler.RemoveSymbol)
	r.POST("/summaries", summaryHandler.CreateSummary)
	r.GET("/dashboard", dashboardHandler.GetDashboard)
	r.GET("/briefings/latest", briefingHandler.GetLatestBriefing)
	r.GET("/briefings", briefingHandler.GetBriefings)
	r.POST("/briefings", briefingHandler.CreateBriefing)

	err = r.Run(cfg.HTTPAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
