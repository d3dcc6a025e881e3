// internal/app/features/donations/routes.go
package donations

import "github.com/go-chi/chi/v5"

// Routes returns the donation subrouter; mounted under /donations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Donate)
	r.Get("/stats", h.Stats)
	return r
}
