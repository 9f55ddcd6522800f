package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"fxconvert/internal/adapters/postgres"
	"fxconvert/internal/domain"
	"fxconvert/internal/platform/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	pgSetupOnce sync.Once

	pgContainer *tcpg.PostgresContainer
	pgConnStr   string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgSetupOnce.Do(func() {
		startPostgres(t)
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	_, err = pool.Exec(ctx, `truncate table fx_rate_history restart identity`)
	require.NoError(t, err)

	return pool
}

func startPostgres(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
	)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		migCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.Migrate(migCtx, dsn) == nil
	}, 30*time.Second, time.Second)

	pgContainer = pg
	pgConnStr = dsn
}

func insertAt(t *testing.T, pool *pgxpool.Pool, base, target string, rate float64, source string, at time.Time) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`insert into fx_rate_history(base, target, rate, source, created_at) values ($1,$2,$3,$4,$5)`,
		base, target, rate, source, at)
	require.NoError(t, err)
}

func TestHistoryRepository_Append_ReturnsRecord(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewHistoryRepository(pool)
	ctx := context.Background()

	rec, err := repo.Append(ctx, domain.NewPair("USD", "EUR"), 0.9234, "aggregated(fixer+frankfurter)")
	require.NoError(t, err)
	require.NotZero(t, rec.ID)
	require.Equal(t, "USD", rec.Base)
	require.Equal(t, "EUR", rec.Target)
	require.InDelta(t, 0.9234, rec.Rate, 1e-9)
	require.Equal(t, "aggregated(fixer+frankfurter)", rec.Source)
	require.False(t, rec.CreatedAt.IsZero())
}

func TestHistoryRepository_Append_RejectsNonPositiveRate(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewHistoryRepository(pool)

	// rate > 0 is enforced by a table constraint as a last line of defense.
	_, err := repo.Append(context.Background(), domain.NewPair("USD", "EUR"), 0, "fixer")
	require.Error(t, err)
}

func TestHistoryRepository_Latest_AbsentReturnsNil(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewHistoryRepository(pool)

	rec, err := repo.Latest(context.Background(), domain.NewPair("USD", "EUR"))
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestHistoryRepository_Latest_ReturnsNewest(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewHistoryRepository(pool)
	ctx := context.Background()

	now := time.Now().UTC()
	insertAt(t, pool, "USD", "EUR", 0.90, "fixer", now.Add(-2*time.Hour))
	insertAt(t, pool, "USD", "EUR", 0.92, "frankfurter", now.Add(-time.Minute))
	insertAt(t, pool, "USD", "JPY", 150.0, "fixer", now)

	rec, err := repo.Latest(ctx, domain.NewPair("USD", "EUR"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.InDelta(t, 0.92, rec.Rate, 1e-9)
	require.Equal(t, "frankfurter", rec.Source)
}

func TestHistoryRepository_Latest_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewHistoryRepository(pool)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Latest(ctx, domain.NewPair("USD", "EUR"))
	require.Error(t, err)
}

func TestHistoryRepository_RangeByHours_NewestFirstWithinWindow(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewHistoryRepository(pool)
	ctx := context.Background()

	now := time.Now().UTC()
	insertAt(t, pool, "USD", "EUR", 0.89, "fixer", now.Add(-48*time.Hour)) // outside window
	insertAt(t, pool, "USD", "EUR", 0.90, "fixer", now.Add(-10*time.Hour))
	insertAt(t, pool, "USD", "EUR", 0.92, "frankfurter", now.Add(-time.Hour))

	records, err := repo.RangeByHours(ctx, domain.NewPair("USD", "EUR"), 24)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.InDelta(t, 0.92, records[0].Rate, 1e-9)
	require.InDelta(t, 0.90, records[1].Rate, 1e-9)
}

func TestHistoryRepository_RangeByDates_BoundsInclusive(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewHistoryRepository(pool)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	insertAt(t, pool, "EUR", "GBP", 0.84, "fixer", now.Add(-72*time.Hour))
	insertAt(t, pool, "EUR", "GBP", 0.85, "fixer", now.Add(-36*time.Hour))
	insertAt(t, pool, "EUR", "GBP", 0.86, "frankfurter", now.Add(-12*time.Hour))

	records, err := repo.RangeByDates(ctx, domain.NewPair("EUR", "GBP"), now.Add(-48*time.Hour), now)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.InDelta(t, 0.86, records[0].Rate, 1e-9)
	require.InDelta(t, 0.85, records[1].Rate, 1e-9)
}

func TestHistoryRepository_CountFor(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewHistoryRepository(pool)
	ctx := context.Background()

	count, err := repo.CountFor(ctx, domain.NewPair("USD", "EUR"))
	require.NoError(t, err)
	require.Zero(t, count)

	now := time.Now().UTC()
	insertAt(t, pool, "USD", "EUR", 0.92, "fixer", now)
	insertAt(t, pool, "USD", "EUR", 0.93, "fixer", now)
	insertAt(t, pool, "USD", "JPY", 150.0, "fixer", now)

	count, err = repo.CountFor(ctx, domain.NewPair("USD", "EUR"))
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestHistoryRepository_DistinctPairs(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewHistoryRepository(pool)
	ctx := context.Background()

	now := time.Now().UTC()
	insertAt(t, pool, "USD", "EUR", 0.92, "fixer", now)
	insertAt(t, pool, "USD", "EUR", 0.93, "frankfurter", now)
	insertAt(t, pool, "EUR", "GBP", 0.85, "fixer", now)

	pairs, err := repo.DistinctPairs(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Pair{
		{Base: "EUR", Target: "GBP"},
		{Base: "USD", Target: "EUR"},
	}, pairs)
}

func TestHistoryRepository_PurgeOlderThan(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewHistoryRepository(pool)
	ctx := context.Background()

	now := time.Now().UTC()
	insertAt(t, pool, "USD", "EUR", 0.90, "fixer", now.AddDate(0, 0, -40))
	insertAt(t, pool, "USD", "EUR", 0.91, "fixer", now.AddDate(0, 0, -35))
	insertAt(t, pool, "USD", "EUR", 0.92, "fixer", now.Add(-time.Hour))

	purged, err := repo.PurgeOlderThan(ctx, 30)
	require.NoError(t, err)
	require.Equal(t, int64(2), purged)

	count, err := repo.CountFor(ctx, domain.NewPair("USD", "EUR"))
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}
