package dashboard

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultTTL is how long a composed dashboard stays fresh.
const DefaultTTL = 30 * time.Second

// Cache stores composed dashboard views in cache.db, msgpack-encoded.
// The cache database is disposable; a miss just means recomputing.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	log zerolog.Logger
}

// NewCache creates a dashboard cache. ttl <= 0 falls back to DefaultTTL.
func NewCache(db *sql.DB, ttl time.Duration, log zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		db:  db,
		ttl: ttl,
		log: log.With().Str("component", "dashboard_cache").Logger(),
	}
}

// Get returns the cached view for a tenant, or ok=false on miss or expiry.
func (c *Cache) Get(tenantID string) (*View, bool) {
	var payload []byte
	err := c.db.QueryRow(`
		SELECT payload FROM dashboard_cache
		WHERE tenant_id = ? AND expires_at > ?
	`, tenantID, time.Now().Unix()).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("Cache read failed")
		return nil, false
	}

	var view View
	if err := msgpack.Unmarshal(payload, &view); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set
		c.log.Warn().Err(err).Str("tenant", tenantID).Msg("Failed to decode cached dashboard")
		return nil, false
	}
	return &view, true
}

// Set stores a composed view for a tenant.
func (c *Cache) Set(tenantID string, view *View) error {
	payload, err := msgpack.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO dashboard_cache (tenant_id, payload, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(tenant_id) DO UPDATE SET
			payload = excluded.payload,
			expires_at = excluded.expires_at
	`, tenantID, payload, time.Now().Add(c.ttl).Unix())
	if err != nil {
		return fmt.Errorf("failed to store dashboard cache: %w", err)
	}
	return nil
}

// Invalidate drops a tenant's cached view. Called after ingests and wipes.
func (c *Cache) Invalidate(tenantID string) {
	if _, err := c.db.Exec(`DELETE FROM dashboard_cache WHERE tenant_id = ?`, tenantID); err != nil {
		c.log.Warn().Err(err).Str("tenant", tenantID).Msg("Cache invalidation failed")
	}
}

// Sweep removes expired entries and returns how many were deleted.
func (c *Cache) Sweep() (int64, error) {
	result, err := c.db.Exec(`DELETE FROM dashboard_cache WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep dashboard cache: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count swept rows: %w", err)
	}
	return removed, nil
}
