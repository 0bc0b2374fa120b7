// Package records manages financial snapshots: one record per (tenant,
// period) holding the five monetary fields in integer cents plus the metrics
// computed at ingest time.
package records

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a tenant has no financial records.
var ErrNotFound = errors.New("financial record not found")

// FinancialRecord is one period's financial snapshot for a tenant.
//
// The stored metrics (runway, risk score, collapse probability) reflect the
// engine at ingest time. Reads recompute metrics live so formula changes
// apply retroactively; the stored values serve as the baseline for what-if
// simulation deltas and are refreshed by the nightly job.
type FinancialRecord struct {
	ID                  int64     `json:"id"`
	TenantID            string    `json:"tenantId"`
	PeriodDate          string    `json:"periodDate"` // YYYY-MM-DD
	RevenueCents        int64     `json:"revenueCents"`
	CogsCents           int64     `json:"cogsCents"`
	OpexCents           int64     `json:"opexCents"`
	CashOnHandCents     int64     `json:"cashOnHandCents"`
	LiabilitiesCents    int64     `json:"liabilitiesCents"`
	RunwayMonths        float64   `json:"runwayMonths"`
	RiskScore           int       `json:"riskScore"`
	CollapseProbability float64   `json:"collapseProbability"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
