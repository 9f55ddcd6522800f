package cache

import (
	"context"
	"testing"
	"time"

	"fxconvert/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestMemoryQuoteCache_SetAndGet(t *testing.T) {
	c, err := NewMemoryQuoteCache(128, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	pair := domain.NewPair("USD", "EUR")

	require.NoError(t, c.Set(ctx, pair, 0.92, "fixer"))
	c.Wait()

	got, err := c.Get(ctx, pair)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "USD", got.Base)
	require.Equal(t, "EUR", got.Target)
	require.InDelta(t, 0.92, got.Rate, 1e-9)
	require.Equal(t, "fixer", got.Source)
	require.False(t, got.Timestamp.IsZero())
}

func TestMemoryQuoteCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewMemoryQuoteCache(64, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Get(context.Background(), domain.NewPair("EUR", "USD"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemoryQuoteCache_EntryExpires(t *testing.T) {
	c, err := NewMemoryQuoteCache(64, 50*time.Millisecond)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	pair := domain.NewPair("USD", "JPY")
	require.NoError(t, c.Set(ctx, pair, 150.0, "frankfurter"))
	c.Wait()

	require.Eventually(t, func() bool {
		got, getErr := c.Get(ctx, pair)
		return getErr == nil && got == nil
	}, 2*time.Second, 20*time.Millisecond)
}

func TestMemoryQuoteCache_TTLRemaining(t *testing.T) {
	c, err := NewMemoryQuoteCache(64, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	pair := domain.NewPair("USD", "EUR")

	_, ok, err := c.TTLRemaining(ctx, pair)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, pair, 0.92, "fixer"))
	c.Wait()

	ttl, ok, err := c.TTLRemaining(ctx, pair)
	require.NoError(t, err)
	require.True(t, ok)
	require.Greater(t, ttl, time.Duration(0))
	require.LessOrEqual(t, ttl, time.Minute)
}

func TestMemoryQuoteCache_DeleteEvictsSinglePair(t *testing.T) {
	c, err := NewMemoryQuoteCache(128, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	usdeur := domain.NewPair("USD", "EUR")
	usdjpy := domain.NewPair("USD", "JPY")

	require.NoError(t, c.Set(ctx, usdeur, 0.92, "fixer"))
	require.NoError(t, c.Set(ctx, usdjpy, 150.0, "fixer"))
	c.Wait()

	require.NoError(t, c.Delete(ctx, usdeur))

	got, err := c.Get(ctx, usdeur)
	require.NoError(t, err)
	require.Nil(t, got)

	kept, err := c.Get(ctx, usdjpy)
	require.NoError(t, err)
	require.NotNil(t, kept)
}

func TestMemoryQuoteCache_ClearEvictsEverything(t *testing.T) {
	c, err := NewMemoryQuoteCache(128, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	pairs := []domain.Pair{
		domain.NewPair("USD", "EUR"),
		domain.NewPair("EUR", "GBP"),
		domain.NewPair("GBP", "JPY"),
	}
	for _, p := range pairs {
		require.NoError(t, c.Set(ctx, p, 1.5, "fixer"))
	}
	c.Wait()

	require.NoError(t, c.Clear(ctx))

	for _, p := range pairs {
		got, getErr := c.Get(ctx, p)
		require.NoError(t, getErr)
		require.Nil(t, got)
	}
}
