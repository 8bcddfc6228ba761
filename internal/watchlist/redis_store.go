package watchlist

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "market-news:watchlist"

// RedisStore keeps the list in a Redis list shared by every API instance.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Load treats a missing key like a missing file. An empty list saved by Clear
// is stored as a sentinel so it survives a restart.
func (s *RedisStore) Load(ctx context.Context) []string {
	exists, err := s.client.Exists(ctx, s.key, s.emptyKey()).Result()
	if err != nil {
		slog.Warn("watchlist redis unavailable, using defaults", "key", s.key, "error", err)
		return defaults()
	}
	if exists == 0 {
		return defaults()
	}

	symbols, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		slog.Warn("watchlist redis read failed, using defaults", "key", s.key, "error", err)
		return defaults()
	}
	return dedupe(symbols)
}

func (s *RedisStore) Save(ctx context.Context, symbols []string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key, s.emptyKey())
		if len(symbols) == 0 {
			pipe.Set(ctx, s.emptyKey(), "1", 0)
			return nil
		}
		values := make([]any, len(symbols))
		for i, sym := range symbols {
			values[i] = sym
		}
		pipe.RPush(ctx, s.key, values...)
		return nil
	})
	return err
}

func (s *RedisStore) emptyKey() string {
	return s.key + ":empty"
}
