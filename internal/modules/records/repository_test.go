package records

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE financial_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tenant_id TEXT NOT NULL,
			period_date TEXT NOT NULL,
			revenue_cents INTEGER NOT NULL DEFAULT 0,
			cogs_cents INTEGER NOT NULL DEFAULT 0,
			opex_cents INTEGER NOT NULL DEFAULT 0,
			cash_on_hand_cents INTEGER NOT NULL DEFAULT 0,
			liabilities_cents INTEGER NOT NULL DEFAULT 0,
			runway_months REAL NOT NULL DEFAULT 0,
			risk_score INTEGER NOT NULL DEFAULT 0,
			collapse_probability REAL NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			UNIQUE (tenant_id, period_date)
		)
	`)
	require.NoError(t, err)

	return NewRepository(db, zerolog.Nop())
}

func sampleRecord(tenant, period string) *FinancialRecord {
	return &FinancialRecord{
		TenantID:            tenant,
		PeriodDate:          period,
		RevenueCents:        1_000_000,
		CogsCents:           300_000,
		OpexCents:           200_000,
		CashOnHandCents:     5_000_000,
		LiabilitiesCents:    100_000,
		RunwayMonths:        999,
		RiskScore:           95,
		CollapseProbability: 4.0,
	}
}

func TestUpsertPopulatesStoredFields(t *testing.T) {
	repo := newTestRepo(t)

	rec := sampleRecord("tenant-a", "2026-01-01")
	require.NoError(t, repo.Upsert(rec))

	assert.NotZero(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.False(t, rec.UpdatedAt.IsZero())
}

func TestUpsertOverwritesSamePeriod(t *testing.T) {
	repo := newTestRepo(t)

	first := sampleRecord("tenant-a", "2026-01-01")
	require.NoError(t, repo.Upsert(first))

	second := sampleRecord("tenant-a", "2026-01-01")
	second.RevenueCents = 2_000_000
	second.RiskScore = 80
	require.NoError(t, repo.Upsert(second))

	// Same row, updated in place
	assert.Equal(t, first.ID, second.ID)

	latest, err := repo.Latest("tenant-a")
	require.NoError(t, err)
	assert.Equal(t, int64(2_000_000), latest.RevenueCents)
	assert.Equal(t, 80, latest.RiskScore)

	all, err := repo.LatestForAllTenants()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLatestPicksMostRecentPeriod(t *testing.T) {
	repo := newTestRepo(t)

	// Insert out of order; period_date ordering must win, not insertion order
	for _, period := range []string{"2026-02-01", "2026-04-01", "2026-03-01"} {
		rec := sampleRecord("tenant-a", period)
		require.NoError(t, repo.Upsert(rec))
	}

	latest, err := repo.Latest("tenant-a")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01", latest.PeriodDate)
}

func TestLatestReturnsErrNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Latest("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestForAllTenants(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Upsert(sampleRecord("tenant-a", "2026-01-01")))
	require.NoError(t, repo.Upsert(sampleRecord("tenant-a", "2026-02-01")))
	require.NoError(t, repo.Upsert(sampleRecord("tenant-b", "2026-01-01")))

	all, err := repo.LatestForAllTenants()
	require.NoError(t, err)
	require.Len(t, all, 2)

	periods := map[string]string{}
	for _, rec := range all {
		periods[rec.TenantID] = rec.PeriodDate
	}
	assert.Equal(t, "2026-02-01", periods["tenant-a"])
	assert.Equal(t, "2026-01-01", periods["tenant-b"])
}

func TestUpdateMetricsLeavesMoneyUntouched(t *testing.T) {
	repo := newTestRepo(t)

	rec := sampleRecord("tenant-a", "2026-01-01")
	require.NoError(t, repo.Upsert(rec))

	require.NoError(t, repo.UpdateMetrics(rec.ID, 3.3, 40, 48.0))

	stored, err := repo.Latest("tenant-a")
	require.NoError(t, err)
	assert.Equal(t, 3.3, stored.RunwayMonths)
	assert.Equal(t, 40, stored.RiskScore)
	assert.Equal(t, 48.0, stored.CollapseProbability)
	assert.Equal(t, rec.RevenueCents, stored.RevenueCents)
	assert.Equal(t, rec.CashOnHandCents, stored.CashOnHandCents)
}

func TestWipeTenantIsScoped(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Upsert(sampleRecord("tenant-a", "2026-01-01")))
	require.NoError(t, repo.Upsert(sampleRecord("tenant-a", "2026-02-01")))
	require.NoError(t, repo.Upsert(sampleRecord("tenant-b", "2026-01-01")))

	deleted, err := repo.WipeTenant("tenant-a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.Latest("tenant-a")
	assert.ErrorIs(t, err, ErrNotFound)

	survivor, err := repo.Latest("tenant-b")
	require.NoError(t, err)
	assert.Equal(t, "tenant-b", survivor.TenantID)
}

func TestWipeTenantEmptyIsZero(t *testing.T) {
	repo := newTestRepo(t)

	deleted, err := repo.WipeTenant("nobody")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
