package domain

import "errors"

var (
	// ErrRateUnavailable means every resolution tier came up empty:
	// no cache entry, no succeeding provider, no history record.
	ErrRateUnavailable = errors.New("rate unavailable")

	// ErrNotCached is returned by cache-status lookups for absent entries.
	ErrNotCached = errors.New("pair not cached")
)
