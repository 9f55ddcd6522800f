package rate

import (
	"context"
	"fmt"

	"fxconvert/internal/adapters"
	"fxconvert/internal/metrics"

	"github.com/sirupsen/logrus"
)

// PurgeExpiredHistory removes history rows older than maxAgeDays. This is the
// only code path that ever deletes from the history table.
func PurgeExpiredHistory(ctx context.Context, execID string, history adapters.HistoryRepository, m *metrics.Metrics, maxAgeDays int) error {
	purged, err := history.PurgeOlderThan(ctx, maxAgeDays)
	if err != nil {
		return fmt.Errorf("failed to purge history: %w", err)
	}

	m.HistoryPurged.Add(float64(purged))
	logrus.Infof("%d history records older than %d days purged; execID: %s", purged, maxAgeDays, execID)
	return nil
}
