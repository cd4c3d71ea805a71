// internal/app/features/environment/routes.go
package environment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the named descriptors (mounted under
// /environments). The active descriptor is registered by the caller at
// /environment.json. Optional middlewares wrap every named-descriptor route.
func Routes(h *Handler, middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.Get("/", h.List)
	r.Get("/{name}", h.ServeNamed)
	r.Head("/", h.List)
	r.Head("/{name}", h.ServeNamed)
	return r
}
