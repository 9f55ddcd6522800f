package rate

import (
	"context"
	"strings"
	"sync"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"

	"github.com/sirupsen/logrus"
)

const defaultProviderTimeout = 5 * time.Second

// failedSourceNone labels an aggregation where no provider succeeded.
const failedSourceNone = "none"

// Aggregator fans a pair out to every configured provider and averages the
// answers. One bad provider never fails the pipeline; it just drops out of
// the mean.
type Aggregator struct {
	providers []adapters.RateProvider
	metrics   *metrics.Metrics
	timeout   time.Duration
}

func NewAggregator(providers []adapters.RateProvider, m *metrics.Metrics, providerTimeout time.Duration) *Aggregator {
	if providerTimeout <= 0 {
		providerTimeout = defaultProviderTimeout
	}
	return &Aggregator{providers: providers, metrics: m, timeout: providerTimeout}
}

type providerOutcome struct {
	rate    float64
	source  string
	success bool
}

// Aggregate launches all providers concurrently and waits for every one to
// settle. The result is the arithmetic mean of the successes with a combined
// source label, stamped with the current time.
func (a *Aggregator) Aggregate(ctx context.Context, pair domain.Pair) domain.ProviderResponse {
	if len(a.providers) == 0 {
		return domain.ProviderResponse{Success: false, Source: failedSourceNone}
	}

	// Once aggregation is kicked off it runs to completion bounded only by
	// the per-provider timeout, even if the caller has gone away.
	detachedCtx := context.WithoutCancel(ctx)

	outcomes := make([]providerOutcome, len(a.providers))
	var wg sync.WaitGroup
	for i, p := range a.providers {
		wg.Add(1)
		go func(idx int, provider adapters.RateProvider) {
			defer wg.Done()
			outcomes[idx] = a.fetchOne(detachedCtx, provider, pair)
		}(i, p)
	}
	wg.Wait()

	var sum float64
	var count int
	sources := make([]string, 0, len(outcomes))
	for _, out := range outcomes {
		if !out.success {
			continue
		}
		sum += out.rate
		count++
		sources = append(sources, out.source)
	}

	if count == 0 {
		return domain.ProviderResponse{Success: false, Source: failedSourceNone}
	}

	return domain.ProviderResponse{
		Success:   true,
		Rate:      sum / float64(count),
		Source:    "aggregated(" + strings.Join(sources, "+") + ")",
		Timestamp: time.Now().UTC(),
	}
}

// FirstSuccess walks providers sequentially in their configured priority
// order and returns on the first that answers. Used by the background
// refresh job, where one provider call per pair is enough.
func (a *Aggregator) FirstSuccess(ctx context.Context, pair domain.Pair) domain.ProviderResponse {
	for _, p := range a.providers {
		out := a.fetchOne(ctx, p, pair)
		if out.success {
			return domain.ProviderResponse{
				Success:   true,
				Rate:      out.rate,
				Source:    out.source,
				Timestamp: time.Now().UTC(),
			}
		}
	}
	return domain.ProviderResponse{Success: false, Source: failedSourceNone}
}

func (a *Aggregator) fetchOne(ctx context.Context, provider adapters.RateProvider, pair domain.Pair) providerOutcome {
	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	rate, _, err := provider.FetchRate(reqCtx, pair.Base, pair.Target)
	if err != nil {
		logrus.Warnf("Provider '%s' failed for %s: %v", provider.Name(), pair, err)
		a.metrics.ProviderRequests.WithLabelValues(provider.Name(), "error").Inc()
		return providerOutcome{source: provider.Name()}
	}
	a.metrics.ProviderRequests.WithLabelValues(provider.Name(), "success").Inc()
	return providerOutcome{rate: rate, source: provider.Name(), success: true}
}
