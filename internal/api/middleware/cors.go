package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the chat page to be served from another origin during development
func CORS(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		MaxAge:         600,
	})

	return c.Handler(next)
}
