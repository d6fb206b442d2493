package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the public API under /api/v1/.
func NewRouter(api *API, devMode bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if devMode {
		r.Use(WithDevCORS)
	}
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", handleHealthz)
		r.Get("/qr", api.handleQR)
	})
	return r
}
