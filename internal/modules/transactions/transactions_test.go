package transactions

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE daily_transactions (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			date TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL CHECK (category IN ('Income', 'COGS', 'Opex', 'Fixed')),
			amount_cents INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	require.NoError(t, err)

	return NewService(NewRepository(db, zerolog.Nop()), zerolog.Nop())
}

func TestBulkUploadAndList(t *testing.T) {
	svc := newTestService(t)

	count, err := svc.BulkUpload("tenant-a", []UploadInput{
		{Date: "2026-01-01", Description: "Invoice 42", Category: CategoryIncome, Amount: 1500.50},
		{Date: "2026-01-02", Description: "Packaging", Category: CategoryCOGS, Amount: 200},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	txs, analytics, err := svc.List("tenant-a")
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// Newest date first
	assert.Equal(t, "2026-01-02", txs[0].Date)
	assert.Equal(t, int64(150_050), txs[1].AmountCents)
	assert.Len(t, analytics.DailySummary, 2)
}

func TestBulkUploadValidation(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name  string
		input UploadInput
	}{
		{"bad date", UploadInput{Date: "Jan 1", Description: "x", Category: CategoryOpex, Amount: 1}},
		{"bad category", UploadInput{Date: "2026-01-01", Description: "x", Category: "Misc", Amount: 1}},
		{"empty description", UploadInput{Date: "2026-01-01", Description: "", Category: CategoryOpex, Amount: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BulkUpload("tenant-a", []UploadInput{tc.input})
			assert.Error(t, err)
		})
	}

	_, err := svc.BulkUpload("tenant-a", nil)
	assert.Error(t, err, "empty batch is rejected")

	// Nothing from the failed batches should have been stored
	txs, _, err := svc.List("tenant-a")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestDeleteIsTenantScoped(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.BulkUpload("tenant-a", []UploadInput{
		{Date: "2026-01-01", Description: "Invoice", Category: CategoryIncome, Amount: 100},
	})
	require.NoError(t, err)

	txs, _, err := svc.List("tenant-a")
	require.NoError(t, err)
	require.Len(t, txs, 1)

	// Another tenant cannot delete it
	assert.ErrorIs(t, svc.Delete("tenant-b", txs[0].ID), ErrNotFound)

	require.NoError(t, svc.Delete("tenant-a", txs[0].ID))
	assert.ErrorIs(t, svc.Delete("tenant-a", txs[0].ID), ErrNotFound)
}

func TestSummarizeEmptyLedger(t *testing.T) {
	analytics := Summarize(nil)

	assert.Empty(t, analytics.DailySummary)
	assert.Zero(t, analytics.MeanDailyNet)
	assert.Zero(t, analytics.StdDevDailyNet)
	assert.Nil(t, analytics.NetFlowTrend)
}

func TestSummarizeDailyTotals(t *testing.T) {
	analytics := Summarize([]Transaction{
		{Date: "2026-01-01", Category: CategoryIncome, AmountCents: 50_000},
		{Date: "2026-01-01", Category: CategoryOpex, AmountCents: 10_000},
		{Date: "2026-01-01", Category: CategoryFixed, AmountCents: 5_000},
		{Date: "2026-01-02", Category: CategoryCOGS, AmountCents: 20_000},
	})

	require.Len(t, analytics.DailySummary, 2)
	assert.Equal(t, DayTotals{IncomeCents: 50_000, ExpenseCents: 15_000}, analytics.DailySummary["2026-01-01"])
	assert.Equal(t, DayTotals{ExpenseCents: 20_000}, analytics.DailySummary["2026-01-02"])

	// Daily nets are 350.00 and -200.00 major units
	assert.Equal(t, 75.0, analytics.MeanDailyNet)
	assert.InDelta(t, 388.91, analytics.StdDevDailyNet, 0.01)
	assert.Nil(t, analytics.NetFlowTrend, "trend needs a full window")
}

func TestSummarizeSingleDayHasNoStdDev(t *testing.T) {
	analytics := Summarize([]Transaction{
		{Date: "2026-01-01", Category: CategoryIncome, AmountCents: 12_345},
	})

	assert.Equal(t, 123.45, analytics.MeanDailyNet)
	assert.Zero(t, analytics.StdDevDailyNet)
}

func TestSummarizeTrendOverFullWindow(t *testing.T) {
	var txs []Transaction
	dates := []string{
		"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04",
		"2026-01-05", "2026-01-06", "2026-01-07",
	}
	for _, date := range dates {
		txs = append(txs, Transaction{Date: date, Category: CategoryIncome, AmountCents: 10_000})
	}

	analytics := Summarize(txs)

	require.NotNil(t, analytics.NetFlowTrend)
	assert.InDelta(t, 100.0, *analytics.NetFlowTrend, 1e-9)
}
