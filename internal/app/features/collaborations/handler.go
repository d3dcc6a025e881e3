// internal/app/features/collaborations/handler.go

// Package collaborations is the JSON surface for the
// collaboration-request state machine: proposing, responding, and
// listing requests per organization.
package collaborations

import (
	"errors"
	"net/http"

	collabstore "github.com/civicworks/civicbridge/internal/app/store/collabs"
	issuestore "github.com/civicworks/civicbridge/internal/app/store/issues"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/workflow/collaboration"
	"go.uber.org/zap"
)

// Handler holds the dependencies for collaboration endpoints.
type Handler struct {
	Collabs *collabstore.Store
	Engine  *collaboration.Engine
	Log     *zap.Logger
}

func NewHandler(collabs *collabstore.Store, engine *collaboration.Engine, logger *zap.Logger) *Handler {
	return &Handler{Collabs: collabs, Engine: engine, Log: logger}
}

// writeError maps store and workflow errors onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, collabstore.ErrNotFound),
		errors.Is(err, issuestore.ErrNotFound):
		httpapi.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, collabstore.ErrDuplicatePending),
		errors.Is(err, collabstore.ErrAlreadyResolved):
		httpapi.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, collabstore.ErrNotResponder):
		httpapi.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, collaboration.ErrSameOrganization),
		errors.Is(err, collaboration.ErrBadDecision):
		httpapi.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.Log.Error("collaboration request failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "internal error")
	}
}
