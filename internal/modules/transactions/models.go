// Package transactions manages the per-tenant daily transaction ledger and
// its summary analytics.
package transactions

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a transaction does not exist for the tenant.
var ErrNotFound = errors.New("transaction not found")

// Transaction categories. Income raises the daily net flow; everything else
// lowers it.
const (
	CategoryIncome = "Income"
	CategoryCOGS   = "COGS"
	CategoryOpex   = "Opex"
	CategoryFixed  = "Fixed"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryIncome, CategoryCOGS, CategoryOpex, CategoryFixed:
		return true
	}
	return false
}

// Transaction is one ledger entry.
type Transaction struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Description string    `json:"description"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amountCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DayTotals aggregates one calendar day's flows in cents.
type DayTotals struct {
	IncomeCents  int64 `json:"incomeCents"`
	ExpenseCents int64 `json:"expenseCents"`
}
