// Package handlers provides the HTTP handler for what-if simulations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/veldt-labs/cashlens/internal/modules/auth"
	"github.com/veldt-labs/cashlens/internal/modules/records"
	"github.com/veldt-labs/cashlens/internal/modules/simulation"
	"github.com/veldt-labs/cashlens/pkg/formulas"
)

// Default per-tenant simulation budget: 2 per second, bursts of 5.
const (
	defaultRate  = rate.Limit(2)
	defaultBurst = 5
)

// Handler handles simulation HTTP requests
type Handler struct {
	recordRepo *records.Repository
	limiter    *tenantLimiter
	log        zerolog.Logger
}

// NewHandler creates a new simulation handler
func NewHandler(recordRepo *records.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		recordRepo: recordRepo,
		limiter:    newTenantLimiter(defaultRate, defaultBurst),
		log:        log.With().Str("handler", "simulation").Logger(),
	}
}

// HandleSimulate handles POST /api/simulate
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing tenant")
		return
	}

	if !h.limiter.Allow(tenantID) {
		h.writeError(w, http.StatusTooManyRequests, "too many simulations, slow down")
		return
	}

	var input struct {
		RevenueChangePercent float64 `json:"revenueChangePercent"`
		ExpenseChangePercent float64 `json:"expenseChangePercent"`
		LoanInjectionDollars float64 `json:"loanInjectionDollars"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	loanCents := formulas.CentsFromMajor(input.LoanInjectionDollars)
	if loanCents < 0 {
		loanCents = 0
	}

	baseline, err := h.recordRepo.Latest(tenantID)
	if err == records.ErrNotFound {
		h.writeError(w, http.StatusNotFound, "no financial records to simulate against")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("tenant", tenantID).Msg("Failed to load baseline record")
		h.writeError(w, http.StatusInternalServerError, "failed to load baseline record")
		return
	}

	result := simulation.Run(baseline, simulation.Input{
		RevenueChangePercent: input.RevenueChangePercent,
		ExpenseChangePercent: input.ExpenseChangePercent,
		LoanInjectionCents:   loanCents,
	})

	h.writeJSON(w, http.StatusOK, result)
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
