package transactions

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/veldt-labs/cashlens/pkg/formulas"
)

// trendWindow is the moving-average period used for the net flow trend.
const trendWindow = 7

// UploadInput is one incoming transaction with its amount in major units.
type UploadInput struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
}

// Analytics summarizes the ledger for charts: per-day totals plus simple
// statistics over the daily net flow series.
type Analytics struct {
	DailySummary map[string]DayTotals `json:"dailySummary"`
	// Net flow statistics in major units, zero-valued when the ledger is empty.
	MeanDailyNet   float64  `json:"meanDailyNet"`
	StdDevDailyNet float64  `json:"stdDevDailyNet"`
	// 7-day SMA of the daily net flow, nil until a full window exists.
	NetFlowTrend *float64 `json:"netFlowTrend"`
}

// Service handles ledger uploads and summary analytics.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new transactions service.
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "transactions").Logger(),
	}
}

// BulkUpload validates and stores a batch of transactions for the tenant.
// Amounts are converted from major units to cents at this boundary.
func (s *Service) BulkUpload(tenantID string, inputs []UploadInput) (int, error) {
	if len(inputs) == 0 {
		return 0, fmt.Errorf("no transactions provided")
	}

	txs := make([]Transaction, 0, len(inputs))
	for i, in := range inputs {
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			return 0, fmt.Errorf("transaction %d: invalid date %q (expected YYYY-MM-DD)", i, in.Date)
		}
		if !ValidCategory(in.Category) {
			return 0, fmt.Errorf("transaction %d: unknown category %q", i, in.Category)
		}
		if in.Description == "" {
			return 0, fmt.Errorf("transaction %d: description is required", i)
		}

		txs = append(txs, Transaction{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			Date:        in.Date,
			Description: in.Description,
			Category:    in.Category,
			AmountCents: formulas.CentsFromMajor(in.Amount),
		})
	}

	if err := s.repo.InsertBatch(txs); err != nil {
		return 0, err
	}

	s.log.Info().Str("tenant", tenantID).Int("count", len(txs)).Msg("Uploaded transactions")
	return len(txs), nil
}

// List returns the tenant's transactions with summary analytics.
func (s *Service) List(tenantID string) ([]Transaction, Analytics, error) {
	txs, err := s.repo.List(tenantID)
	if err != nil {
		return nil, Analytics{}, err
	}
	return txs, Summarize(txs), nil
}

// Delete removes one transaction, scoped to the tenant.
func (s *Service) Delete(tenantID, id string) error {
	return s.repo.Delete(tenantID, id)
}

// Summarize builds per-day totals and net flow statistics from a set of
// transactions. Pure function, exported for reuse in tests.
func Summarize(txs []Transaction) Analytics {
	summary := make(map[string]DayTotals)
	for _, tx := range txs {
		totals := summary[tx.Date]
		if tx.Category == CategoryIncome {
			totals.IncomeCents += tx.AmountCents
		} else {
			totals.ExpenseCents += tx.AmountCents
		}
		summary[tx.Date] = totals
	}

	analytics := Analytics{DailySummary: summary}
	if len(summary) == 0 {
		return analytics
	}

	// Build the chronological daily net series in major units
	dates := make([]string, 0, len(summary))
	for date := range summary {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	nets := make([]float64, 0, len(dates))
	for _, date := range dates {
		totals := summary[date]
		nets = append(nets, formulas.MajorFromCents(totals.IncomeCents-totals.ExpenseCents))
	}

	analytics.MeanDailyNet = formulas.Round2(stat.Mean(nets, nil))
	if len(nets) > 1 {
		analytics.StdDevDailyNet = formulas.Round2(stat.StdDev(nets, nil))
	}
	analytics.NetFlowTrend = formulas.NetFlowSMA(nets, trendWindow)

	return analytics
}
