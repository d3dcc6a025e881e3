// internal/app/features/issues/routes.go
package issues

import "github.com/go-chi/chi/v5"

// Routes returns the issue subrouter; mounted under /issues.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Report)
	r.Get("/", h.ListByCreator)
	r.Get("/collaborated", h.ListCollaborated)
	r.Get("/{id}", h.View)
	r.Post("/{id}/claim", h.Claim)
	r.Post("/{id}/resolve", h.Resolve)
	return r
}
