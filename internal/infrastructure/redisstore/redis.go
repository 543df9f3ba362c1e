package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pressroom/pressroom/config"
	"github.com/pressroom/pressroom/pkg/cache"
)

// Store implements cache.Store on top of a redis client.
type Store struct {
	client *redis.Client
}

// NewStore connects to redis and returns a cache store. When redis is
// disabled in config it returns nil, which callers treat as "no cache".
// A failed ping is logged but not fatal: the client reconnects on demand
// and every cache path degrades to direct computation meanwhile.
func NewStore(cfg *config.RedisConfig, logger zerolog.Logger) cache.Store {
	if !cfg.Enabled {
		logger.Info().Msg("Redis disabled, caching off")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).
			Str("addr", cfg.Addr).
			Msg("Redis unreachable, cache will degrade to direct reads until it recovers")
	} else {
		logger.Info().Str("addr", cfg.Addr).Msg("Redis connected")
	}

	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Close releases the underlying redis connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
