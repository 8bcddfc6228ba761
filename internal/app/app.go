package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Jamesrrobbins/market-news/db"
	"github.com/Jamesrrobbins/market-news/internal/briefing"
	"github.com/Jamesrrobbins/market-news/internal/config"
	"github.com/Jamesrrobbins/market-news/internal/dashboard"
	"github.com/Jamesrrobbins/market-news/internal/repository"
	"github.com/Jamesrrobbins/market-news/internal/watchlist"
	"github.com/Jamesrrobbins/market-news/pkg/llm"
	"github.com/Jamesrrobbins/market-news/pkg/market"
	"github.com/Jamesrrobbins/market-news/pkg/news"
	"github.com/Jamesrrobbins/market-news/pkg/observability"
	"github.com/Jamesrrobbins/market-news/pkg/weather"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// App holds every component built from a Config.
type App struct {
	Config      config.Config
	Metrics     *observability.Metrics
	Weather     *weather.Resolver
	News        *news.Resolver
	RSS         *news.RSSClient
	CompanyNews *news.CompanyNewsChain
	Market      *market.Resolver
	Summarizer  *llm.Summarizer
	Watchlist   *watchlist.Watchlist
	Dashboard   *dashboard.Service
	Briefings   *repository.BriefingRepository
	Generator   *briefing.Generator

	db    *sql.DB
	redis *redis.Client
}

// New wires the components. A missing API key disables that provider and a
// missing DATABASE_URL disables briefing history; neither is an error.
func New(ctx context.Context, cfg config.Config, metrics *observability.Metrics) (*App, error) {
	a := &App{Config: cfg, Metrics: metrics}
	clock := clockwork.NewRealClock()

	a.Weather = weather.NewResolver(weather.NewClient(cfg.WeatherTimeout, cfg.WeatherModel), metrics)

	a.RSS = news.NewRSSClient()
	var newsAPI news.NewsClient
	if cfg.NewsAPIKey != "" {
		newsAPI = news.NewNewsAPIClient(cfg.NewsAPIKey)
	} else {
		slog.Warn("NEWS_API_KEY not set, serving news from RSS only")
	}
	a.News = news.NewResolver(metrics, newsAPI, a.RSS)

	var companyNews []news.CompanyNewsClient
	if cfg.FinnhubAPIKey != "" {
		companyNews = append(companyNews, news.NewFinnHubClient(cfg.FinnhubAPIKey))
	}
	if cfg.AlphaVantageAPIKey != "" {
		companyNews = append(companyNews, news.NewAlphaVantageClient(cfg.AlphaVantageAPIKey))
	}
	if cfg.MassiveAPIKey != "" {
		companyNews = append(companyNews, news.NewMassiveClient(cfg.MassiveAPIKey))
	}
	a.CompanyNews = news.NewCompanyNewsChain(metrics, companyNews...)

	var headlines market.HeadlineProvider
	if a.CompanyNews.Len() > 0 {
		headlines = a.CompanyNews
	} else {
		slog.Warn("no company news keys set, ticker headlines come from news search")
	}
	a.Market = market.NewResolver(market.NewYahooHistory(clock), headlines, a.News, market.Options{
		YearOffset:    cfg.MarketYearOffset,
		HeadlineLimit: cfg.HeadlineLimit,
		Clock:         clock,
		Metrics:       metrics,
	})

	completer := llm.NewCompleter(cfg.LLMProvider, cfg.OpenAIAPIKey, cfg.AnthropicAPIKey)
	modelName := ""
	if completer == nil {
		slog.Warn("no API key for LLM provider, summaries unavailable", "provider", cfg.LLMProvider)
	} else {
		modelName = completer.Name()
	}
	a.Summarizer = llm.NewSummarizer(completer, metrics)

	store, err := a.watchlistStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Watchlist = watchlist.New(ctx, store)

	a.Dashboard = dashboard.NewService(dashboard.Deps{
		Weather:    a.Weather,
		News:       a.News,
		Quotes:     a.Market,
		Summarizer: a.Summarizer,
		Symbols:    a.Watchlist,
		Clock:      clock,
	})

	var briefingStore briefing.Store
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.db = conn
		if err := db.Migrate(ctx, conn); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		a.Briefings = repository.NewBriefingRepository(conn)
		briefingStore = a.Briefings
	} else {
		slog.Warn("DATABASE_URL not set, briefing history disabled")
	}

	a.Generator = briefing.NewGenerator(briefing.Deps{
		News:       a.News,
		Headlines:  a.Market,
		Summarizer: a.Summarizer,
		Symbols:    a.Watchlist,
		Store:      briefingStore,
		Clock:      clock,
		ModelName:  modelName,
	})

	return a, nil
}

func (a *App) watchlistStore(ctx context.Context) (watchlist.Store, error) {
	if a.Config.WatchlistBackend != "redis" {
		return watchlist.NewFileStore(a.Config.WatchlistFile), nil
	}

	client, err := db.ConnectRedis(ctx, a.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.redis = client
	return watchlist.NewRedisStore(client, a.Config.WatchlistRedisKey), nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}
