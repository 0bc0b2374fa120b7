package records

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/veldt-labs/cashlens/internal/modules/forecast"
	"github.com/veldt-labs/cashlens/internal/modules/risk"
	"github.com/veldt-labs/cashlens/pkg/formulas"
)

// IngestInput carries one period's figures in major currency units, exactly
// as they cross the HTTP boundary.
type IngestInput struct {
	PeriodDate  string  `json:"periodDate"`
	Revenue     float64 `json:"revenue"`
	Cogs        float64 `json:"cogs"`
	Opex        float64 `json:"opex"`
	CashOnHand  float64 `json:"cashOnHand"`
	Liabilities float64 `json:"liabilities"`
}

// Service handles snapshot ingestion and wiping.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new records service.
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "records").Logger(),
	}
}

// Ingest converts the major-unit amounts to integer cents (x100, rounded),
// runs the risk engine, and upserts one record per (tenant, period). The
// stored record and a fresh 6-month forecast are returned.
//
// Negative amounts are clamped to zero: the engines are defined over
// non-negative snapshots.
func (s *Service) Ingest(tenantID string, in IngestInput) (*FinancialRecord, []forecast.Point, error) {
	if _, err := time.Parse("2006-01-02", in.PeriodDate); err != nil {
		return nil, nil, fmt.Errorf("invalid periodDate %q (expected YYYY-MM-DD): %w", in.PeriodDate, err)
	}

	rec := &FinancialRecord{
		TenantID:         tenantID,
		PeriodDate:       in.PeriodDate,
		RevenueCents:     clampCents(formulas.CentsFromMajor(in.Revenue)),
		CogsCents:        clampCents(formulas.CentsFromMajor(in.Cogs)),
		OpexCents:        clampCents(formulas.CentsFromMajor(in.Opex)),
		CashOnHandCents:  clampCents(formulas.CentsFromMajor(in.CashOnHand)),
		LiabilitiesCents: clampCents(formulas.CentsFromMajor(in.Liabilities)),
	}

	metrics := risk.Compute(rec.RevenueCents, rec.CogsCents, rec.OpexCents, rec.CashOnHandCents, rec.LiabilitiesCents)
	rec.RunwayMonths = metrics.RunwayMonths
	rec.RiskScore = metrics.RiskScore
	rec.CollapseProbability = metrics.CollapseProbability

	if err := s.repo.Upsert(rec); err != nil {
		return nil, nil, err
	}

	points := forecast.Generate(rec.RevenueCents, rec.CogsCents, rec.OpexCents, rec.CashOnHandCents, rec.LiabilitiesCents, forecast.DefaultMonths)

	s.log.Info().
		Str("tenant", tenantID).
		Str("period", rec.PeriodDate).
		Int("risk_score", rec.RiskScore).
		Msg("Ingested financial record")

	return rec, points, nil
}

// Wipe removes all of the tenant's records.
func (s *Service) Wipe(tenantID string) (int64, error) {
	return s.repo.WipeTenant(tenantID)
}

func clampCents(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
