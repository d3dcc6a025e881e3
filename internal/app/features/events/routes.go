// internal/app/features/events/routes.go
package events

import "github.com/go-chi/chi/v5"

// Routes returns the event subrouter; mounted under /events.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.ListByOrganization)
	r.Get("/{id}", h.View)
	r.Get("/{id}/positions", h.Positions)
	r.Post("/{id}/register", h.Register)
	r.Post("/{id}/withdraw", h.Withdraw)
	r.Post("/{id}/status", h.SetStatus)
	r.Delete("/{id}", h.Delete)
	return r
}
