// internal/app/features/organizations/handler.go

// Package organizations is the JSON surface for the NGO directory:
// registration, lookup, and the paged, searchable listing.
package organizations

import (
	"errors"
	"net/http"

	organizationstore "github.com/civicworks/civicbridge/internal/app/store/organizations"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"go.uber.org/zap"
)

// Handler holds the dependencies for organization endpoints.
type Handler struct {
	Orgs *organizationstore.Store
	Log  *zap.Logger
}

func NewHandler(orgs *organizationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Orgs: orgs, Log: logger}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, organizationstore.ErrNotFound):
		httpapi.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, organizationstore.ErrDuplicateName):
		httpapi.Error(w, http.StatusConflict, err.Error())
	default:
		h.Log.Error("organization request failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "internal error")
	}
}
