// internal/app/features/events/handler.go

// Package events is the JSON surface for volunteering events:
// creation with fixed-capacity positions, lookups, registration and
// withdrawal, status changes, and deletion.
package events

import (
	"errors"
	"net/http"

	eventstore "github.com/civicworks/civicbridge/internal/app/store/events"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/workflow/registration"
	"go.uber.org/zap"
)

// Handler holds the dependencies for event endpoints.
type Handler struct {
	Events *eventstore.Store
	Reg    *registration.Engine
	Log    *zap.Logger
}

func NewHandler(events *eventstore.Store, reg *registration.Engine, logger *zap.Logger) *Handler {
	return &Handler{Events: events, Reg: reg, Log: logger}
}

// writeError maps store errors onto HTTP statuses. Capacity and
// duplicate-registration failures are conflicts, not server errors.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eventstore.ErrNotFound),
		errors.Is(err, eventstore.ErrPositionNotFound):
		httpapi.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, eventstore.ErrAlreadyRegistered),
		errors.Is(err, eventstore.ErrCapacityExceeded),
		errors.Is(err, eventstore.ErrEventClosed):
		httpapi.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, eventstore.ErrForbidden):
		httpapi.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, eventstore.ErrBadCapacity),
		errors.Is(err, eventstore.ErrDuplicatePosition),
		errors.Is(err, eventstore.ErrNoPositions):
		httpapi.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.Log.Error("event request failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "internal error")
	}
}
