package rate

import (
	"context"
	"sync"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/metrics"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SchedulerConfig struct {
	RefreshEnabled      bool
	RefreshInterval     time.Duration
	RefreshWorkers      int
	RetentionEnabled    bool
	RetentionInterval   time.Duration
	RetentionMaxAgeDays int
}

// Scheduler runs the background refresh and retention jobs.
type Scheduler struct {
	history    adapters.HistoryRepository
	cache      adapters.QuoteCache
	aggregator *Aggregator
	metrics    *metrics.Metrics
	cfg        SchedulerConfig
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func NewScheduler(history adapters.HistoryRepository, cache adapters.QuoteCache, aggregator *Aggregator, m *metrics.Metrics, cfg SchedulerConfig) *Scheduler {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 15 * time.Minute
	}
	if cfg.RetentionInterval <= 0 {
		cfg.RetentionInterval = 24 * time.Hour
	}
	if cfg.RetentionMaxAgeDays <= 0 {
		cfg.RetentionMaxAgeDays = 90
	}
	return &Scheduler{history: history, cache: cache, aggregator: aggregator, metrics: m, cfg: cfg}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	if s.cfg.RefreshEnabled {
		refreshJob := func(jobCtx context.Context) {
			execID := uuid.NewString()
			if refreshErr := RefreshTrackedPairs(jobCtx, execID, s.history, s.cache, s.aggregator, s.cfg.RefreshWorkers); refreshErr != nil {
				logrus.Errorf("Refresh tracked pairs job %s failed: %v", execID, refreshErr)
			}
		}
		if _, err = scheduler.NewJob(
			gocron.DurationJob(s.cfg.RefreshInterval),
			gocron.NewTask(refreshJob),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return err
		}
	}

	if s.cfg.RetentionEnabled {
		retentionJob := func(jobCtx context.Context) {
			execID := uuid.NewString()
			if purgeErr := PurgeExpiredHistory(jobCtx, execID, s.history, s.metrics, s.cfg.RetentionMaxAgeDays); purgeErr != nil {
				logrus.Errorf("History retention job %s failed: %v", execID, purgeErr)
			}
		}
		if _, err = scheduler.NewJob(
			gocron.DurationJob(s.cfg.RetentionInterval),
			gocron.NewTask(retentionJob),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return err
		}
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Shutdown is safe to call more than once.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
