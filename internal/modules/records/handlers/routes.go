package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all financial record routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/financial-records", func(r chi.Router) {
		r.Post("/", h.HandleIngest)
		r.Delete("/reset", h.HandleReset)
	})
}
