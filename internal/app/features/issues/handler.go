// internal/app/features/issues/handler.go

// Package issues is the JSON surface for citizen-reported issues:
// reporting, lookup, creator listings, the collaborated-issues query,
// and the claim/resolve lifecycle.
package issues

import (
	"errors"
	"net/http"

	issuestore "github.com/civicworks/civicbridge/internal/app/store/issues"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/workflow/collaboration"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the dependencies for issue endpoints.
type Handler struct {
	Issues *issuestore.Store
	Collab *collaboration.Engine
	DB     *mongo.Database
	Log    *zap.Logger
}

func NewHandler(issues *issuestore.Store, collab *collaboration.Engine, db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Issues: issues, Collab: collab, DB: db, Log: logger}
}

// writeError maps store and workflow errors onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, issuestore.ErrNotFound):
		httpapi.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, issuestore.ErrAlreadyAssigned):
		httpapi.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, issuestore.ErrNotAssignee),
		errors.Is(err, issuestore.ErrNotAssigned):
		httpapi.Error(w, http.StatusConflict, err.Error())
	default:
		h.Log.Error("issue request failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "internal error")
	}
}
