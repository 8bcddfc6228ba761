package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultSecretsFile = ".secrets.env"

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// FrontendURL is added to the CORS allow list next to localhost:3000.
	FrontendURL string

	NewsAPIKey      string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	FinnhubAPIKey   string
	LLMProvider     string

	// Secondary company-news sources, tried after Finnhub.
	AlphaVantageAPIKey string
	MassiveAPIKey      string

	WatchlistBackend  string
	WatchlistFile     string
	WatchlistRedisKey string
	RedisURL          string
	DatabaseURL       string

	WeatherTimeout  time.Duration
	WeatherModel    string
	DefaultLocation string

	MarketYearOffset int
	HeadlineLimit    int
}

// Load reads .env into the process environment, then resolves every key from
// the secrets file first and the environment second.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	secretsFile := strings.TrimSpace(os.Getenv("SECRETS_FILE"))
	if secretsFile == "" {
		secretsFile = DefaultSecretsFile
	}
	secrets, err := readSecrets(secretsFile)
	if err != nil {
		return Config{}, err
	}

	return FromLookup(func(key string) string {
		if v, ok := secrets[key]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(os.Getenv(key))
	})
}

func readSecrets(path string) (map[string]string, error) {
	secrets, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read secrets file %q: %w", path, err)
	}
	return secrets, nil
}

// FromLookup builds a Config from an arbitrary key source.
func FromLookup(get func(string) string) (Config, error) {
	appEnv := get("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := get("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	provider := strings.ToLower(get("LLM_PROVIDER"))
	if provider == "" {
		provider = "openai"
	}
	switch provider {
	case "openai", "anthropic":
	default:
		return Config{}, fmt.Errorf("invalid LLM_PROVIDER %q (allowed: openai, anthropic)", provider)
	}

	backend := strings.ToLower(get("WATCHLIST_BACKEND"))
	if backend == "" {
		backend = "file"
	}
	switch backend {
	case "file":
	case "redis":
		if get("REDIS_URL") == "" {
			return Config{}, errors.New("WATCHLIST_BACKEND=redis requires REDIS_URL")
		}
	default:
		return Config{}, fmt.Errorf("invalid WATCHLIST_BACKEND %q (allowed: file, redis)", backend)
	}

	weatherTimeout, err := durationOr(get, "WEATHER_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	yearOffset, err := intOr(get, "MARKET_YEAR_OFFSET", 252)
	if err != nil {
		return Config{}, err
	}
	if yearOffset != 250 && yearOffset != 252 {
		return Config{}, fmt.Errorf("invalid MARKET_YEAR_OFFSET %d (allowed: 250, 252)", yearOffset)
	}

	headlineLimit, err := intOr(get, "HEADLINE_LIMIT", 5)
	if err != nil {
		return Config{}, err
	}
	if headlineLimit < 1 || headlineLimit > 20 {
		return Config{}, fmt.Errorf("invalid HEADLINE_LIMIT %d (allowed: 1-20)", headlineLimit)
	}

	return Config{
		AppEnv:             appEnv,
		LogLevel:           level,
		HTTPAddr:           or(get("HTTP_ADDR"), ":8080"),
		FrontendURL:        get("FRONTEND_URL"),
		NewsAPIKey:         get("NEWS_API_KEY"),
		OpenAIAPIKey:       get("OPENAI_API_KEY"),
		AnthropicAPIKey:    get("ANTHROPIC_API_KEY"),
		FinnhubAPIKey:      get("FINNHUB_API_KEY"),
		LLMProvider:        provider,
		AlphaVantageAPIKey: get("ALPHA_VANTAGE_API_KEY"),
		MassiveAPIKey:      get("MASSIVE_API_KEY"),
		WatchlistBackend:   backend,
		WatchlistFile:      or(get("WATCHLIST_FILE"), "watchlist.json"),
		WatchlistRedisKey:  get("WATCHLIST_REDIS_KEY"),
		RedisURL:           get("REDIS_URL"),
		DatabaseURL:        get("DATABASE_URL"),
		WeatherTimeout:     weatherTimeout,
		WeatherModel:       or(get("WEATHER_MODEL"), "ukmo_seamless"),
		DefaultLocation:    or(get("DEFAULT_LOCATION"), "London"),
		MarketYearOffset:   yearOffset,
		HeadlineLimit:      headlineLimit,
	}, nil
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(get func(string) string, key string, def int) (int, error) {
	s := get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return n, nil
}

func durationOr(get func(string) string, key string, def time.Duration) (time.Duration, error) {
	s := get(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, s)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
