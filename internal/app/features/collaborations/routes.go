// internal/app/features/collaborations/routes.go
package collaborations

import "github.com/go-chi/chi/v5"

// Routes returns the collaboration subrouter; mounted under
// /collaborations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/{id}/respond", h.Respond)
	return r
}
