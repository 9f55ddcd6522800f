package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fxconvert/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryRepository persists every freshly resolved rate. Rows are append
// only; the retention job is the single deleter.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) Append(ctx context.Context, pair domain.Pair, rate float64, source string) (*domain.HistoryRecord, error) {
	const q = `
        insert into fx_rate_history (base, target, rate, source)
        values ($1, $2, $3, $4)
        returning id, base, target, rate, source, created_at;
    `

	var rec domain.HistoryRecord
	if err := r.pool.QueryRow(ctx, q, pair.Base, pair.Target, rate, source).Scan(
		&rec.ID, &rec.Base, &rec.Target, &rec.Rate, &rec.Source, &rec.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to append history for %s: %w", pair, err)
	}
	return &rec, nil
}

func (r *HistoryRepository) Latest(ctx context.Context, pair domain.Pair) (*domain.HistoryRecord, error) {
	const q = `
        select id, base, target, rate, source, created_at
        from fx_rate_history
        where base = $1 and target = $2
        order by created_at desc
        limit 1;
    `

	var rec domain.HistoryRecord
	if err := r.pool.QueryRow(ctx, q, pair.Base, pair.Target).Scan(
		&rec.ID, &rec.Base, &rec.Target, &rec.Rate, &rec.Source, &rec.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select latest history for %s: %w", pair, err)
	}
	return &rec, nil
}

func (r *HistoryRepository) RangeByHours(ctx context.Context, pair domain.Pair, hoursBack int) ([]domain.HistoryRecord, error) {
	const q = `
        select id, base, target, rate, source, created_at
        from fx_rate_history
        where base = $1 and target = $2
          and created_at >= now() - make_interval(hours => $3)
        order by created_at desc;
    `
	return r.queryRecords(ctx, pair, q, pair.Base, pair.Target, hoursBack)
}

func (r *HistoryRepository) RangeByDates(ctx context.Context, pair domain.Pair, from, to time.Time) ([]domain.HistoryRecord, error) {
	const q = `
        select id, base, target, rate, source, created_at
        from fx_rate_history
        where base = $1 and target = $2
          and created_at >= $3 and created_at <= $4
        order by created_at desc;
    `
	return r.queryRecords(ctx, pair, q, pair.Base, pair.Target, from, to)
}

func (r *HistoryRepository) queryRecords(ctx context.Context, pair domain.Pair, q string, args ...any) ([]domain.HistoryRecord, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for %s: %w", pair, err)
	}
	defer rows.Close()

	records := make([]domain.HistoryRecord, 0, 64)
	for rows.Next() {
		var rec domain.HistoryRecord
		if err = rows.Scan(&rec.ID, &rec.Base, &rec.Target, &rec.Rate, &rec.Source, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history records: %w", err)
	}
	return records, nil
}

func (r *HistoryRepository) CountFor(ctx context.Context, pair domain.Pair) (int64, error) {
	const q = `select count(*) from fx_rate_history where base = $1 and target = $2;`

	var count int64
	if err := r.pool.QueryRow(ctx, q, pair.Base, pair.Target).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history for %s: %w", pair, err)
	}
	return count, nil
}

func (r *HistoryRepository) DistinctPairs(ctx context.Context) ([]domain.Pair, error) {
	const q = `select distinct base, target from fx_rate_history order by base, target;`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct pairs: %w", err)
	}
	defer rows.Close()

	pairs := make([]domain.Pair, 0, 16)
	for rows.Next() {
		var p domain.Pair
		if err = rows.Scan(&p.Base, &p.Target); err != nil {
			return nil, fmt.Errorf("failed to scan pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pairs: %w", err)
	}
	return pairs, nil
}

func (r *HistoryRepository) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	const q = `delete from fx_rate_history where created_at < now() - make_interval(days => $1);`

	tag, err := r.pool.Exec(ctx, q, days)
	if err != nil {
		return 0, fmt.Errorf("failed to purge history older than %d days: %w", days, err)
	}
	return tag.RowsAffected(), nil
}
