package rate

import (
	"context"
	"fmt"
	"sync"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"

	"github.com/sirupsen/logrus"
)

const defaultRefreshWorkers = 5

// RefreshTrackedPairs re-resolves every pair that has history through the
// first-success provider mode, writing results through history and cache.
// One provider call per pair keeps the background load bounded; averaging is
// reserved for the request path.
func RefreshTrackedPairs(ctx context.Context, execID string, history adapters.HistoryRepository, cache adapters.QuoteCache, aggregator *Aggregator, workers int) error {
	pairs, err := history.DistinctPairs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tracked pairs: %w", err)
	}

	if len(pairs) == 0 {
		logrus.Infof("No tracked pairs to refresh this time; execID: %s", execID)
		return nil
	}

	logrus.Infof("%d tracked pairs found, starting refresh; execID: %s", len(pairs), execID)

	if workers <= 0 {
		workers = defaultRefreshWorkers
	}

	workQueue := make(chan domain.Pair, len(pairs))
	for _, p := range pairs {
		workQueue <- p
	}
	close(workQueue)

	refreshedCh := make(chan domain.Pair, len(pairs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			runRefreshWorker(ctx, workerID, workQueue, history, cache, aggregator, refreshedCh)
		}(i)
	}

	wg.Wait()
	close(refreshedCh)

	refreshed := 0
	for range refreshedCh {
		refreshed++
	}

	logrus.Infof("%d of %d tracked pairs were refreshed; execID: %s", refreshed, len(pairs), execID)
	return nil
}

func runRefreshWorker(ctx context.Context, workerID int, workQueue <-chan domain.Pair, history adapters.HistoryRepository, cache adapters.QuoteCache, aggregator *Aggregator, refreshedCh chan<- domain.Pair) {
	for {
		select {
		case <-ctx.Done():
			return
		case pair, ok := <-workQueue:
			if !ok {
				return
			}
			if refreshPair(ctx, workerID, pair, history, cache, aggregator) {
				refreshedCh <- pair
			}
		}
	}
}

// refreshPair resolves one pair and writes it through. A failed pair is
// skipped with a warning; it'll be picked up on the next run.
func refreshPair(ctx context.Context, workerID int, pair domain.Pair, history adapters.HistoryRepository, cache adapters.QuoteCache, aggregator *Aggregator) bool {
	resp := aggregator.FirstSuccess(ctx, pair)
	if !resp.Success {
		logrus.Warnf("Pair %s wasn't refreshed by worker %d, all providers failed", pair, workerID)
		return false
	}

	if _, err := history.Append(ctx, pair, resp.Rate, resp.Source); err != nil {
		logrus.Warnf("Pair %s wasn't refreshed by worker %d, history write failed: %v", pair, workerID, err)
		return false
	}
	if err := cache.Set(ctx, pair, resp.Rate, resp.Source); err != nil {
		logrus.Warnf("Cache write failed for refreshed pair %s: %v", pair, err)
	}
	return true
}
