package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

type pageData struct {
	Title string
}

// Handler renders the chat page and the generic error page
type Handler struct {
	templates *template.Template
	title     string
}

func NewHandler(title string) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	return &Handler{templates: tmpl, title: title}, nil
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index.html")
}

// Error handles GET /error
func (h *Handler) Error(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "error.html")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := h.templates.ExecuteTemplate(w, name, pageData{Title: h.title}); err != nil {
		ctxzap.Error(r.Context(), "failed to render page", zap.String("template", name), zap.Error(err))
	}
}
