package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat routes. mws wrap only the completion endpoint.
func RegisterRoutes(r chi.Router, h *Handler, mws ...func(http.Handler) http.Handler) {
	r.Route("/api/chat", func(r chi.Router) {
		r.With(mws...).Post("/completion", h.Completion)
	})
}
