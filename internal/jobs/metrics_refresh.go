// Package jobs contains the background maintenance jobs wired into the
// scheduler.
package jobs

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/veldt-labs/cashlens/internal/modules/records"
	"github.com/veldt-labs/cashlens/internal/modules/risk"
)

// MetricsRefreshJob recomputes the stored risk metrics on every tenant's
// latest record. Keeps stored metrics in sync after formula adjustments
// without waiting for the next ingest.
type MetricsRefreshJob struct {
	repo *records.Repository
	log  zerolog.Logger
}

// NewMetricsRefreshJob creates the nightly metrics refresh job.
func NewMetricsRefreshJob(repo *records.Repository, log zerolog.Logger) *MetricsRefreshJob {
	return &MetricsRefreshJob{
		repo: repo,
		log:  log.With().Str("job", "metrics_refresh").Logger(),
	}
}

// Name implements scheduler.Job.
func (j *MetricsRefreshJob) Name() string {
	return "metrics-refresh"
}

// Run implements scheduler.Job.
func (j *MetricsRefreshJob) Run() error {
	latest, err := j.repo.LatestForAllTenants()
	if err != nil {
		return fmt.Errorf("failed to load latest records: %w", err)
	}

	refreshed := 0
	for _, rec := range latest {
		metrics := risk.Compute(rec.RevenueCents, rec.CogsCents, rec.OpexCents, rec.CashOnHandCents, rec.LiabilitiesCents)

		if metrics.RunwayMonths == rec.RunwayMonths &&
			metrics.RiskScore == rec.RiskScore &&
			metrics.CollapseProbability == rec.CollapseProbability {
			continue
		}

		if err := j.repo.UpdateMetrics(rec.ID, metrics.RunwayMonths, metrics.RiskScore, metrics.CollapseProbability); err != nil {
			j.log.Error().Err(err).Str("tenant", rec.TenantID).Msg("Failed to refresh metrics")
			continue
		}
		refreshed++
	}

	j.log.Info().Int("tenants", len(latest)).Int("refreshed", refreshed).Msg("Metrics refresh complete")
	return nil
}
