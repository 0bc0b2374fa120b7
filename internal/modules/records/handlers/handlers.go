// Package handlers provides HTTP handlers for financial record ingestion.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/veldt-labs/cashlens/internal/modules/auth"
	"github.com/veldt-labs/cashlens/internal/modules/records"
)

// Invalidator drops a tenant's cached dashboard after a write.
type Invalidator interface {
	Invalidate(tenantID string)
}

// Handler handles financial record HTTP requests
type Handler struct {
	svc   *records.Service
	cache Invalidator
	log   zerolog.Logger
}

// NewHandler creates a new records handler
func NewHandler(svc *records.Service, cache Invalidator, log zerolog.Logger) *Handler {
	return &Handler{
		svc:   svc,
		cache: cache,
		log:   log.With().Str("handler", "records").Logger(),
	}
}

// HandleIngest handles POST /api/financial-records
func (h *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing tenant")
		return
	}

	var input records.IngestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, points, err := h.svc.Ingest(tenantID, input)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.cache.Invalidate(tenantID)

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"record":    rec,
		"forecasts": points,
	})
}

// HandleReset handles DELETE /api/financial-records/reset
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing tenant")
		return
	}

	deleted, err := h.svc.Wipe(tenantID)
	if err != nil {
		h.log.Error().Err(err).Str("tenant", tenantID).Msg("Failed to wipe records")
		h.writeError(w, http.StatusInternalServerError, "failed to wipe records")
		return
	}

	h.cache.Invalidate(tenantID)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": deleted,
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
