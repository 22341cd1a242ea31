package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrCacheMiss reports that a key is absent. Callers fall through to
// the database and backfill.
var ErrCacheMiss = errors.New("cache miss")

// JSONCache is a small read-through helper storing JSON-encoded values
// with a TTL.
type JSONCache struct {
	client *goredis.Client
	prefix string
}

func NewJSONCache(client *goredis.Client, prefix string) (*JSONCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if prefix == "" {
		return nil, fmt.Errorf("cache prefix is required")
	}

	return &JSONCache{client: client, prefix: prefix}, nil
}

func (c *JSONCache) Get(ctx context.Context, key string, dest any) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("cache is not initialized")
	}

	data, err := c.client.Get(ctx, c.prefix+":"+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get failed: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache decode failed: %w", err)
	}
	return nil
}

func (c *JSONCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("cache is not initialized")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode failed: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+":"+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}
