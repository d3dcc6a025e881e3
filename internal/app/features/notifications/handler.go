// internal/app/features/notifications/handler.go

// Package notifications is the read side of the dispatcher: listing,
// unread counts, mark-as-read, and bulk clearing. Notifications are
// only ever created by the bus, never through this surface.
package notifications

import (
	"errors"
	"net/http"

	notificationstore "github.com/civicworks/civicbridge/internal/app/store/notifications"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"go.uber.org/zap"
)

// Handler holds the dependencies for notification endpoints.
type Handler struct {
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(notifications *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Notifications: notifications, Log: logger}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notificationstore.ErrNotFound):
		httpapi.Error(w, http.StatusNotFound, err.Error())
	default:
		h.Log.Error("notification request failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "internal error")
	}
}
