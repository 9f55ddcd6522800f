package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fxconvert/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisQuoteCache stores quotes as JSON values under a key prefix so the
// cache can be shared across instances. TTL handling is delegated to redis
// key expiry.
type RedisQuoteCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisQuoteCache(client *redis.Client, prefix string, ttl time.Duration) *RedisQuoteCache {
	return &RedisQuoteCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisQuoteCache) key(pair domain.Pair) string { return c.prefix + pair.Key() }

func (c *RedisQuoteCache) Get(ctx context.Context, pair domain.Pair) (*domain.Quote, error) {
	val, err := c.client.Get(ctx, c.key(pair)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get for %s failed: %w", pair, err)
	}
	var q domain.Quote
	if err = json.Unmarshal([]byte(val), &q); err != nil {
		return nil, fmt.Errorf("redis value for %s is not a quote: %w", pair, err)
	}
	return &q, nil
}

func (c *RedisQuoteCache) Set(ctx context.Context, pair domain.Pair, rate float64, source string) error {
	q := domain.Quote{
		Base:      pair.Base,
		Target:    pair.Target,
		Rate:      rate,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote for %s failed: %w", pair, err)
	}
	if err = c.client.Set(ctx, c.key(pair), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set for %s failed: %w", pair, err)
	}
	return nil
}

func (c *RedisQuoteCache) TTLRemaining(ctx context.Context, pair domain.Pair) (time.Duration, bool, error) {
	ttl, err := c.client.TTL(ctx, c.key(pair)).Result()
	if err != nil {
		return 0, false, fmt.Errorf("redis ttl for %s failed: %w", pair, err)
	}
	// -2 is "no such key", -1 is "no expiry"; neither counts as cached here.
	if ttl < 0 {
		return 0, false, nil
	}
	return ttl, true, nil
}

func (c *RedisQuoteCache) Delete(ctx context.Context, pair domain.Pair) error {
	if err := c.client.Del(ctx, c.key(pair)).Err(); err != nil {
		return fmt.Errorf("redis del for %s failed: %w", pair, err)
	}
	return nil
}

func (c *RedisQuoteCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del for key %q failed: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	return nil
}
