// internal/app/features/notifications/routes.go
package notifications

import "github.com/go-chi/chi/v5"

// Routes returns the notification subrouter; mounted under
// /notifications.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Delete("/", h.Clear)
	r.Get("/unread", h.UnreadCount)
	r.Post("/{id}/read", h.MarkRead)
	return r
}
