// Package handlers provides the HTTP handler for the composed dashboard.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/veldt-labs/cashlens/internal/modules/auth"
	"github.com/veldt-labs/cashlens/internal/modules/dashboard"
	"github.com/veldt-labs/cashlens/internal/modules/records"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	svc *dashboard.Service
	log zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(svc *dashboard.Service, log zerolog.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.With().Str("handler", "dashboard").Logger(),
	}
}

// HandleGet handles GET /api/dashboard
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing tenant")
		return
	}

	view, err := h.svc.Compose(tenantID)
	if err == records.ErrNotFound {
		h.writeError(w, http.StatusNotFound, "no financial records yet")
		return
	}
	if err == auth.ErrNotFound {
		h.writeError(w, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("tenant", tenantID).Msg("Failed to compose dashboard")
		h.writeError(w, http.StatusInternalServerError, "failed to compose dashboard")
		return
	}

	h.writeJSON(w, http.StatusOK, view)
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
