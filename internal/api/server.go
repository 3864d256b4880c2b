package api

import (
	"net/http"
	"time"

	chatapi "github.com/futig/ragchat-backend/internal/api/chat"
	"github.com/futig/ragchat-backend/internal/api/docs"
	"github.com/futig/ragchat-backend/internal/api/middleware"
	"github.com/futig/ragchat-backend/internal/api/web"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router.
// limiter may be nil, in which case chat requests are not throttled.
func SetupRouter(
	chatHandler *chatapi.Handler,
	webHandler *web.Handler,
	limiter *middleware.RateLimiter,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(90 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	web.RegisterRoutes(r, webHandler)

	var chatMiddlewares []func(http.Handler) http.Handler
	if limiter != nil {
		chatMiddlewares = append(chatMiddlewares, limiter.Limit(chatHandler.RateLimited))
	}
	chatapi.RegisterRoutes(r, chatHandler, chatMiddlewares...)

	return r
}
