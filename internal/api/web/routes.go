package web

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers page routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Index)
	r.Get("/error", h.Error)
}
