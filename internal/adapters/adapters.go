package adapters

import (
	"context"
	"fxconvert/internal/domain"
	"time"
)

// RateProvider is one external quote source. FetchRate returns the direct
// rate for the pair; a zero returned timestamp means the provider reported
// none and the caller stamps the quote itself. Errors never cross the
// aggregation boundary, the engine absorbs them per provider.
type RateProvider interface {
	Name() string
	FetchRate(ctx context.Context, base, target string) (float64, time.Time, error)
}

// QuoteCache holds the last-resolved quote per pair under a fixed TTL chosen
// at construction. Get returns (nil, nil) on a miss; TTL enforcement is the
// cache's own concern.
type QuoteCache interface {
	Get(ctx context.Context, pair domain.Pair) (*domain.Quote, error)
	Set(ctx context.Context, pair domain.Pair, rate float64, source string) error
	TTLRemaining(ctx context.Context, pair domain.Pair) (time.Duration, bool, error)
	Delete(ctx context.Context, pair domain.Pair) error
	Clear(ctx context.Context) error
}

// HistoryRepository is the append-only record of resolved rates.
// Latest returns (nil, nil) when the pair has no history.
type HistoryRepository interface {
	Append(ctx context.Context, pair domain.Pair, rate float64, source string) (*domain.HistoryRecord, error)
	Latest(ctx context.Context, pair domain.Pair) (*domain.HistoryRecord, error)
	RangeByHours(ctx context.Context, pair domain.Pair, hoursBack int) ([]domain.HistoryRecord, error)
	RangeByDates(ctx context.Context, pair domain.Pair, from, to time.Time) ([]domain.HistoryRecord, error)
	CountFor(ctx context.Context, pair domain.Pair) (int64, error)
	DistinctPairs(ctx context.Context) ([]domain.Pair, error)
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}
