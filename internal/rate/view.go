package rate

import (
	"fxconvert/internal/domain"
	"time"
)

type HistoryView struct {
	Pair    domain.Pair
	Period  string
	Count   int
	Records []domain.HistoryRecord
}

type PairStats struct {
	Pair    domain.Pair
	Records int64
}

type CacheStatus struct {
	Quote        domain.Quote
	TTLRemaining time.Duration
}
