// Package dashboard composes the full financial health view for a tenant:
// stored record, live risk metrics, forecast, industry benchmark, loan
// readiness and advisor insights, behind a short-lived cache.
package dashboard

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/veldt-labs/cashlens/internal/modules/advisor"
	"github.com/veldt-labs/cashlens/internal/modules/auth"
	"github.com/veldt-labs/cashlens/internal/modules/benchmarks"
	"github.com/veldt-labs/cashlens/internal/modules/forecast"
	"github.com/veldt-labs/cashlens/internal/modules/loans"
	"github.com/veldt-labs/cashlens/internal/modules/records"
	"github.com/veldt-labs/cashlens/internal/modules/risk"
)

// View is the composed dashboard payload.
type View struct {
	CompanyName   string                   `json:"companyName"`
	Industry      string                   `json:"industry"`
	LatestRecord  *records.FinancialRecord `json:"latestRecord"`
	Metrics       risk.Metrics             `json:"calculatedMetrics"`
	Forecast      []forecast.Point         `json:"forecasts"`
	Benchmark     benchmarks.Result        `json:"benchmark"`
	LoanReadiness loans.Result             `json:"loanReadiness"`
	Insights      []advisor.Entry          `json:"advisorInsights"`
	GeneratedAt   time.Time                `json:"generatedAt"`
	FromCache     bool                     `json:"fromCache"`
}

// Service composes dashboard views.
type Service struct {
	recordRepo *records.Repository
	userRepo   *auth.Repository
	cache      *Cache
	log        zerolog.Logger
}

// NewService creates a new dashboard service.
func NewService(recordRepo *records.Repository, userRepo *auth.Repository, cache *Cache, log zerolog.Logger) *Service {
	return &Service{
		recordRepo: recordRepo,
		userRepo:   userRepo,
		cache:      cache,
		log:        log.With().Str("service", "dashboard").Logger(),
	}
}

// Compose builds the dashboard for a tenant. Metrics are always recomputed
// from the latest stored record rather than read back, so formula changes
// take effect without re-ingesting. Returns records.ErrNotFound when the
// tenant has no financial records yet.
func (s *Service) Compose(tenantID string) (*View, error) {
	if view, ok := s.cache.Get(tenantID); ok {
		view.FromCache = true
		return view, nil
	}

	user, err := s.userRepo.FindByID(tenantID)
	if err != nil {
		return nil, err
	}

	rec, err := s.recordRepo.Latest(tenantID)
	if err != nil {
		return nil, err
	}

	metrics := risk.Compute(rec.RevenueCents, rec.CogsCents, rec.OpexCents, rec.CashOnHandCents, rec.LiabilitiesCents)
	points := forecast.Generate(rec.RevenueCents, rec.CogsCents, rec.OpexCents, rec.CashOnHandCents, rec.LiabilitiesCents, forecast.DefaultMonths)

	view := &View{
		CompanyName:  user.CompanyName,
		Industry:     user.IndustryCategory,
		LatestRecord: rec,
		Metrics:      metrics,
		Forecast:     points,
		Benchmark:    benchmarks.Compare(metrics.ProfitMargin, user.IndustryCategory),
		LoanReadiness: loans.Evaluate(
			rec.LiabilitiesCents,
			rec.CashOnHandCents,
			metrics.ProfitMargin,
			metrics.RunwayMonths,
		),
		Insights: advisor.Generate(
			metrics.RunwayMonths,
			rec.LiabilitiesCents,
			rec.CashOnHandCents,
			metrics.ProfitMargin,
		),
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.cache.Set(tenantID, view); err != nil {
		// Serving a fresh view matters more than caching it
		s.log.Warn().Err(err).Str("tenant", tenantID).Msg("Failed to cache dashboard")
	}
	return view, nil
}

// Invalidate drops a tenant's cached dashboard.
func (s *Service) Invalidate(tenantID string) {
	s.cache.Invalidate(tenantID)
}
