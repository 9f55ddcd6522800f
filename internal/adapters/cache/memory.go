package cache

import (
	"context"
	"fmt"
	"time"

	"fxconvert/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// MemoryQuoteCache keeps resolved quotes in-process with a fixed TTL applied
// on every Set.
type MemoryQuoteCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewMemoryQuoteCache(maxItems int64, ttl time.Duration) (*MemoryQuoteCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create quote cache failed: %w", err)
	}
	return &MemoryQuoteCache{cache: c, ttl: ttl}, nil
}

func (c *MemoryQuoteCache) Get(_ context.Context, pair domain.Pair) (*domain.Quote, error) {
	v, ok := c.cache.Get(pair.Key())
	if !ok {
		return nil, nil
	}
	q, ok := v.(domain.Quote)
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (c *MemoryQuoteCache) Set(_ context.Context, pair domain.Pair, rate float64, source string) error {
	q := domain.Quote{
		Base:      pair.Base,
		Target:    pair.Target,
		Rate:      rate,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
	c.cache.SetWithTTL(pair.Key(), q, 1, c.ttl)
	return nil
}

func (c *MemoryQuoteCache) TTLRemaining(_ context.Context, pair domain.Pair) (time.Duration, bool, error) {
	ttl, ok := c.cache.GetTTL(pair.Key())
	return ttl, ok, nil
}

func (c *MemoryQuoteCache) Delete(_ context.Context, pair domain.Pair) error {
	c.cache.Del(pair.Key())
	return nil
}

func (c *MemoryQuoteCache) Clear(_ context.Context) error {
	c.cache.Clear()
	return nil
}

// Wait flushes pending writes; ristretto applies sets asynchronously.
func (c *MemoryQuoteCache) Wait() { c.cache.Wait() }

func (c *MemoryQuoteCache) Close() { c.cache.Close() }
