// Package handlers provides HTTP handlers for the daily transaction ledger.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/veldt-labs/cashlens/internal/modules/auth"
	"github.com/veldt-labs/cashlens/internal/modules/transactions"
)

// Handler handles transaction ledger HTTP requests
type Handler struct {
	svc *transactions.Service
	log zerolog.Logger
}

// NewHandler creates a new transactions handler
func NewHandler(svc *transactions.Service, log zerolog.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.With().Str("handler", "transactions").Logger(),
	}
}

// HandleList handles GET /api/daily
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing tenant")
		return
	}

	txs, analytics, err := h.svc.List(tenantID)
	if err != nil {
		h.log.Error().Err(err).Str("tenant", tenantID).Msg("Failed to list transactions")
		h.writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	if txs == nil {
		txs = []transactions.Transaction{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"analytics":    analytics,
	})
}

// HandleBulkUpload handles POST /api/daily/bulk
func (h *Handler) HandleBulkUpload(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing tenant")
		return
	}

	var input struct {
		Transactions []transactions.UploadInput `json:"transactions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inserted, err := h.svc.BulkUpload(tenantID, input.Transactions)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"inserted": inserted,
	})
}

// HandleDelete handles DELETE /api/daily/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing tenant")
		return
	}

	id := chi.URLParam(r, "id")
	err := h.svc.Delete(tenantID, id)
	if err == transactions.ErrNotFound {
		h.writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("tenant", tenantID).Msg("Failed to delete transaction")
		h.writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": id,
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
