package records

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles financial record persistence in finance.db.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new financial record repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "records").Logger(),
	}
}

// Upsert stores a snapshot, overwriting any existing record for the same
// (tenant, period) pair. At most one record exists per calendar period per
// tenant. The record's ID and timestamps are populated from the stored row.
func (r *Repository) Upsert(rec *FinancialRecord) error {
	now := time.Now().Unix()

	query := `
		INSERT INTO financial_records (
			tenant_id, period_date, revenue_cents, cogs_cents, opex_cents,
			cash_on_hand_cents, liabilities_cents, runway_months, risk_score,
			collapse_probability, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (tenant_id, period_date) DO UPDATE SET
			revenue_cents = excluded.revenue_cents,
			cogs_cents = excluded.cogs_cents,
			opex_cents = excluded.opex_cents,
			cash_on_hand_cents = excluded.cash_on_hand_cents,
			liabilities_cents = excluded.liabilities_cents,
			runway_months = excluded.runway_months,
			risk_score = excluded.risk_score,
			collapse_probability = excluded.collapse_probability,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(
		query,
		rec.TenantID,
		rec.PeriodDate,
		rec.RevenueCents,
		rec.CogsCents,
		rec.OpexCents,
		rec.CashOnHandCents,
		rec.LiabilitiesCents,
		rec.RunwayMonths,
		rec.RiskScore,
		rec.CollapseProbability,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert financial record: %w", err)
	}

	stored, err := r.find(rec.TenantID, rec.PeriodDate)
	if err != nil {
		return fmt.Errorf("failed to read back upserted record: %w", err)
	}
	*rec = *stored

	return nil
}

// Latest returns the tenant's most recent record by period date.
// Returns ErrNotFound when the tenant has no records.
func (r *Repository) Latest(tenantID string) (*FinancialRecord, error) {
	query := selectColumns + `
		WHERE tenant_id = ?
		ORDER BY period_date DESC
		LIMIT 1
	`
	rec, err := r.scanOne(r.db.QueryRow(query, tenantID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest record: %w", err)
	}
	return rec, nil
}

// LatestForAllTenants returns every tenant's most recent record. Used by the
// nightly metrics refresh job.
func (r *Repository) LatestForAllTenants() ([]FinancialRecord, error) {
	query := selectColumns + `
		WHERE (tenant_id, period_date) IN (
			SELECT tenant_id, MAX(period_date)
			FROM financial_records
			GROUP BY tenant_id
		)
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest records: %w", err)
	}
	defer rows.Close()

	var result []FinancialRecord
	for rows.Next() {
		rec, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		result = append(result, *rec)
	}
	return result, rows.Err()
}

// UpdateMetrics rewrites the stored metrics of a record in place, leaving
// the monetary fields untouched.
func (r *Repository) UpdateMetrics(id int64, runwayMonths float64, riskScore int, collapseProbability float64) error {
	query := `
		UPDATE financial_records
		SET runway_months = ?, risk_score = ?, collapse_probability = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, runwayMonths, riskScore, collapseProbability, time.Now().Unix(), id); err != nil {
		return fmt.Errorf("failed to update metrics for record %d: %w", id, err)
	}
	return nil
}

// WipeTenant deletes all of one tenant's records and returns the count.
// Other tenants' data is untouched.
func (r *Repository) WipeTenant(tenantID string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM financial_records WHERE tenant_id = ?`, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to wipe records for tenant: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count wiped records: %w", err)
	}

	r.log.Info().Str("tenant", tenantID).Int64("deleted", deleted).Msg("Wiped financial records")
	return deleted, nil
}

const selectColumns = `
	SELECT id, tenant_id, period_date, revenue_cents, cogs_cents, opex_cents,
	       cash_on_hand_cents, liabilities_cents, runway_months, risk_score,
	       collapse_probability, created_at, updated_at
	FROM financial_records
`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanOne(row scanner) (*FinancialRecord, error) {
	var rec FinancialRecord
	var createdAt, updatedAt int64

	err := row.Scan(
		&rec.ID,
		&rec.TenantID,
		&rec.PeriodDate,
		&rec.RevenueCents,
		&rec.CogsCents,
		&rec.OpexCents,
		&rec.CashOnHandCents,
		&rec.LiabilitiesCents,
		&rec.RunwayMonths,
		&rec.RiskScore,
		&rec.CollapseProbability,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	rec.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &rec, nil
}

func (r *Repository) find(tenantID, periodDate string) (*FinancialRecord, error) {
	query := selectColumns + ` WHERE tenant_id = ? AND period_date = ?`
	return r.scanOne(r.db.QueryRow(query, tenantID, periodDate))
}
