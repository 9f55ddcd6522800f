package domain

import (
	"strings"
	"time"
)

type Pair struct {
	Base   string
	Target string
}

// NewPair normalizes both codes to trimmed uppercase.
func NewPair(base, target string) Pair {
	return Pair{
		Base:   strings.ToUpper(strings.TrimSpace(base)),
		Target: strings.ToUpper(strings.TrimSpace(target)),
	}
}

func (p Pair) Key() string { return p.Base + ":" + p.Target }

func (p Pair) String() string { return p.Base + "/" + p.Target }

func (p Pair) IsIdentity() bool { return p.Base == p.Target }

// Quote is a resolved exchange rate with provenance. Immutable once built;
// every resolution produces a new value.
type Quote struct {
	Base      string    `json:"base"`
	Target    string    `json:"target"`
	Rate      float64   `json:"rate"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	FromCache bool      `json:"from_cache"`
}

func (q Quote) Pair() Pair { return Pair{Base: q.Base, Target: q.Target} }

// Conversion is a Quote applied to an amount. Built per request, never stored.
type Conversion struct {
	Quote
	Amount          float64
	ConvertedAmount float64
}

// HistoryRecord is one append-only persisted rate observation.
type HistoryRecord struct {
	ID        int64
	Base      string
	Target    string
	Rate      float64
	Source    string
	CreatedAt time.Time
}

// ProviderResponse is the aggregation outcome for one pair: either the mean
// of the succeeding providers or a failure with Success=false.
type ProviderResponse struct {
	Success   bool
	Rate      float64
	Source    string
	Timestamp time.Time
}
