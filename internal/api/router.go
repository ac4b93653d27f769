package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/nathanvale/cortex/internal/docservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *docservice.Service, authEnabled bool, token string, logger *slog.Logger) chi.Router {
	h := NewHandler(svc, logger)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/docs", h.ListDocs)
	r.Get("/docs/{stem}", h.GetDoc)
	r.Get("/search", h.Search)

	return r
}
