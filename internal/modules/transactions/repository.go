package transactions

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles daily transaction persistence in finance.db.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new transaction repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "transactions").Logger(),
	}
}

// InsertBatch stores a batch of transactions in one database transaction.
func (r *Repository) InsertBatch(txs []Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := dbTx.Prepare(`
		INSERT INTO daily_transactions (id, tenant_id, date, description, category, amount_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = dbTx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, tx := range txs {
		if _, err := stmt.Exec(tx.ID, tx.TenantID, tx.Date, tx.Description, tx.Category, tx.AmountCents, now); err != nil {
			_ = dbTx.Rollback()
			return fmt.Errorf("failed to insert transaction %s: %w", tx.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction batch: %w", err)
	}

	return nil
}

// List returns all of a tenant's transactions, newest date first.
func (r *Repository) List(tenantID string) ([]Transaction, error) {
	rows, err := r.db.Query(`
		SELECT id, tenant_id, date, description, category, amount_cents, created_at
		FROM daily_transactions
		WHERE tenant_id = ?
		ORDER BY date DESC, created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var result []Transaction
	for rows.Next() {
		var tx Transaction
		var createdAt int64
		if err := rows.Scan(&tx.ID, &tx.TenantID, &tx.Date, &tx.Description, &tx.Category, &tx.AmountCents, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.CreatedAt = time.Unix(createdAt, 0).UTC()
		result = append(result, tx)
	}
	return result, rows.Err()
}

// Delete removes one transaction, scoped to the tenant. Returns ErrNotFound
// when the transaction does not exist or belongs to another tenant.
func (r *Repository) Delete(tenantID, id string) error {
	result, err := r.db.Exec(`DELETE FROM daily_transactions WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
