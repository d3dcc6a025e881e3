// internal/app/features/donations/handler.go

// Package donations records donations to NGOs and serves the
// per-organization donation stats projection.
package donations

import (
	"errors"
	"net/http"

	donationstore "github.com/civicworks/civicbridge/internal/app/store/donations"
	organizationstore "github.com/civicworks/civicbridge/internal/app/store/organizations"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the dependencies for donation endpoints.
type Handler struct {
	Donations *donationstore.Store
	Orgs      *organizationstore.Store
	DB        *mongo.Database
	Log       *zap.Logger
}

func NewHandler(donations *donationstore.Store, orgs *organizationstore.Store, db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Donations: donations, Orgs: orgs, DB: db, Log: logger}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, donationstore.ErrBadAmount):
		httpapi.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, organizationstore.ErrNotFound):
		httpapi.Error(w, http.StatusNotFound, err.Error())
	default:
		h.Log.Error("donation request failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "internal error")
	}
}
