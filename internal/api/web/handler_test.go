package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	h, err := NewHandler("Docs Assistant")
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, h)

	tests := []struct {
		path     string
		contains string
	}{
		{path: "/", contains: "/api/chat/completion"},
		{path: "/error", contains: "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), tt.contains)
			assert.Contains(t, rec.Body.String(), "Docs Assistant")
		})
	}
}
