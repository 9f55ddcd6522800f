package rate

import (
	"context"
	"fmt"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	identitySource = "identity"
	staleSuffix    = " (stale)"
)

// Service resolves exchange rates through three tiers: cache first, then
// concurrent provider aggregation with write-through to cache and history,
// then the last persisted rate as a stale fallback.
type Service struct {
	cache      adapters.QuoteCache
	history    adapters.HistoryRepository
	aggregator *Aggregator
	metrics    *metrics.Metrics
}

func NewService(cache adapters.QuoteCache, history adapters.HistoryRepository, aggregator *Aggregator, m *metrics.Metrics) *Service {
	return &Service{cache: cache, history: history, aggregator: aggregator, metrics: m}
}

// Resolve returns a quote for the pair or domain.ErrRateUnavailable when
// every tier comes up empty. Store failures propagate as-is.
func (s *Service) Resolve(ctx context.Context, base, target string) (*domain.Quote, error) {
	start := time.Now()
	quote, outcome, err := s.resolve(ctx, domain.NewPair(base, target))
	s.metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	s.metrics.Resolutions.WithLabelValues(outcome).Inc()
	return quote, err
}

func (s *Service) resolve(ctx context.Context, pair domain.Pair) (*domain.Quote, string, error) {
	// Same-currency pairs short-circuit to 1.0 and touch neither store.
	if pair.IsIdentity() {
		return &domain.Quote{
			Base:      pair.Base,
			Target:    pair.Target,
			Rate:      1.0,
			Source:    identitySource,
			Timestamp: time.Now().UTC(),
		}, metrics.OutcomeIdentity, nil
	}

	// Tier 1: cache. A present entry is trusted as fresh; the store owns TTL
	// enforcement.
	cached, err := s.cache.Get(ctx, pair)
	if err != nil {
		return nil, metrics.OutcomeError, fmt.Errorf("cache read for %s failed: %w", pair, err)
	}
	if cached != nil {
		s.metrics.CacheHits.Inc()
		q := *cached
		q.FromCache = true
		return &q, metrics.OutcomeCache, nil
	}
	s.metrics.CacheMisses.Inc()

	// Tier 2: live aggregation, write-through on success. The history row is
	// written before we respond.
	resp := s.aggregator.Aggregate(ctx, pair)
	if resp.Success {
		if _, err = s.history.Append(ctx, pair, resp.Rate, resp.Source); err != nil {
			return nil, metrics.OutcomeError, fmt.Errorf("history write for %s failed: %w", pair, err)
		}
		if err = s.cache.Set(ctx, pair, resp.Rate, resp.Source); err != nil {
			return nil, metrics.OutcomeError, fmt.Errorf("cache write for %s failed: %w", pair, err)
		}
		return &domain.Quote{
			Base:      pair.Base,
			Target:    pair.Target,
			Rate:      resp.Rate,
			Source:    resp.Source,
			Timestamp: resp.Timestamp,
		}, metrics.OutcomeFresh, nil
	}

	// Tier 3: stale fallback from history. Re-seed the cache so a sustained
	// provider outage doesn't hammer every provider on each request.
	latest, err := s.history.Latest(ctx, pair)
	if err != nil {
		return nil, metrics.OutcomeError, fmt.Errorf("history read for %s failed: %w", pair, err)
	}
	if latest != nil {
		staleSource := latest.Source + staleSuffix
		if err = s.cache.Set(ctx, pair, latest.Rate, staleSource); err != nil {
			return nil, metrics.OutcomeError, fmt.Errorf("cache write for %s failed: %w", pair, err)
		}
		logrus.Warnf("All providers failed for %s, serving stale rate from %s", pair, latest.CreatedAt.Format(time.RFC3339))
		return &domain.Quote{
			Base:      pair.Base,
			Target:    pair.Target,
			Rate:      latest.Rate,
			Source:    staleSource,
			Timestamp: latest.CreatedAt,
		}, metrics.OutcomeStale, nil
	}

	return nil, metrics.OutcomeError, fmt.Errorf("no rate for %s: %w", pair, domain.ErrRateUnavailable)
}

// Convert applies a resolved rate to an amount, rounded to 2 decimal places
// half away from zero.
func (s *Service) Convert(ctx context.Context, base, target string, amount float64) (*domain.Conversion, error) {
	quote, err := s.Resolve(ctx, base, target)
	if err != nil {
		return nil, err
	}

	converted, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(quote.Rate)).
		Round(2).
		Float64()

	return &domain.Conversion{
		Quote:           *quote,
		Amount:          amount,
		ConvertedAmount: converted,
	}, nil
}

// History returns the persisted records for the pair within the last
// hoursBack hours, newest first.
func (s *Service) History(ctx context.Context, base, target string, hoursBack int) (*HistoryView, error) {
	pair := domain.NewPair(base, target)
	records, err := s.history.RangeByHours(ctx, pair, hoursBack)
	if err != nil {
		return nil, err
	}
	return &HistoryView{
		Pair:    pair,
		Period:  fmt.Sprintf("%dh", hoursBack),
		Count:   len(records),
		Records: records,
	}, nil
}

// HistoryBetween returns the persisted records inside [from, to], newest first.
func (s *Service) HistoryBetween(ctx context.Context, base, target string, from, to time.Time) (*HistoryView, error) {
	pair := domain.NewPair(base, target)
	records, err := s.history.RangeByDates(ctx, pair, from, to)
	if err != nil {
		return nil, err
	}
	return &HistoryView{
		Pair:    pair,
		Period:  fmt.Sprintf("%s to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)),
		Count:   len(records),
		Records: records,
	}, nil
}

// TrackedPairs lists every pair that has history, with its record count.
func (s *Service) TrackedPairs(ctx context.Context) ([]PairStats, error) {
	pairs, err := s.history.DistinctPairs(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]PairStats, 0, len(pairs))
	for _, p := range pairs {
		count, countErr := s.history.CountFor(ctx, p)
		if countErr != nil {
			return nil, countErr
		}
		stats = append(stats, PairStats{Pair: p, Records: count})
	}
	return stats, nil
}

// CacheStatus reports the cached quote and its remaining TTL, or
// domain.ErrNotCached.
func (s *Service) CacheStatus(ctx context.Context, base, target string) (*CacheStatus, error) {
	pair := domain.NewPair(base, target)
	cached, err := s.cache.Get(ctx, pair)
	if err != nil {
		return nil, err
	}
	if cached == nil {
		return nil, fmt.Errorf("%s: %w", pair, domain.ErrNotCached)
	}
	ttl, _, err := s.cache.TTLRemaining(ctx, pair)
	if err != nil {
		return nil, err
	}
	return &CacheStatus{Quote: *cached, TTLRemaining: ttl}, nil
}

// Invalidate drops a single pair from the cache.
func (s *Service) Invalidate(ctx context.Context, base, target string) error {
	return s.cache.Delete(ctx, domain.NewPair(base, target))
}

// InvalidateAll drops every cached quote.
func (s *Service) InvalidateAll(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
