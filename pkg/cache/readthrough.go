package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ErrMiss is returned by a Store when the key is absent or expired.
var ErrMiss = errors.New("cache: key not found")

// Store is the key-value backend the read-through helper sits on.
// Implementations are expected to honor the TTL passed to Set.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Loader recomputes the cached value on a miss.
type Loader[T any] func(ctx context.Context) (T, error)

// ReadThrough caches one JSON-encoded value under a fixed key with a fixed
// TTL. On a hit it returns the cached value without invoking the loader; on
// a miss, a decode failure, or any store error it falls back to the loader
// and best-effort repopulates the cache. The store is advisory only: it may
// be nil (caching disabled) or failing, and reads still succeed.
type ReadThrough[T any] struct {
	store  Store
	key    string
	ttl    time.Duration
	load   Loader[T]
	logger zerolog.Logger
}

// NewReadThrough creates a read-through cache for a single key.
func NewReadThrough[T any](store Store, key string, ttl time.Duration, load Loader[T], logger zerolog.Logger) *ReadThrough[T] {
	return &ReadThrough[T]{
		store:  store,
		key:    key,
		ttl:    ttl,
		load:   load,
		logger: logger,
	}
}

// Get returns the cached value when present, otherwise loads a fresh one
// and writes it back with the configured TTL. Cache failures are logged and
// swallowed; loader failures propagate.
func (c *ReadThrough[T]) Get(ctx context.Context) (T, error) {
	if c.store != nil {
		data, err := c.store.Get(ctx, c.key)
		switch {
		case err == nil:
			var value T
			if err := json.Unmarshal(data, &value); err == nil {
				return value, nil
			}
			c.logger.Warn().
				Str("key", c.key).
				Msg("Discarding undecodable cache entry")
		case !errors.Is(err, ErrMiss):
			c.logger.Warn().Err(err).
				Str("key", c.key).
				Msg("Cache read failed, falling back to loader")
		}
	}

	value, err := c.load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.set(ctx, value)
	return value, nil
}

// Invalidate drops the cached value so the next Get reloads it. Other
// components that mutate the underlying data are expected to call this.
func (c *ReadThrough[T]) Invalidate(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	if err := c.store.Delete(ctx, c.key); err != nil {
		c.logger.Warn().Err(err).
			Str("key", c.key).
			Msg("Cache invalidation failed")
		return err
	}

	return nil
}

func (c *ReadThrough[T]) set(ctx context.Context, value T) {
	if c.store == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("key", c.key).
			Msg("Failed to encode value for cache")
		return
	}

	if err := c.store.Set(ctx, c.key, data, c.ttl); err != nil {
		c.logger.Warn().Err(err).
			Str("key", c.key).
			Msg("Cache write failed")
	}
}
