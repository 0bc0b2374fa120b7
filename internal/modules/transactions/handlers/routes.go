package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all transaction ledger routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/bulk", h.HandleBulkUpload)
		r.Delete("/{id}", h.HandleDelete)
	})
}
