// internal/app/features/events/lifecycle.go
package events

import (
	"net/http"

	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/limits"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type statusRequest struct {
	OrganizationID string `json:"organization_id"`
	Status         string `json:"status"`
}

// SetStatus handles POST /events/{id}/status. Only the owning NGO may
// change an event's status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	eventID, err := httpapi.IDParam(r, "id")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req statusRequest
	if err := httpapi.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid organization_id")
		return
	}
	switch req.Status {
	case models.EventStatusUpcoming, models.EventStatusOngoing,
		models.EventStatusCompleted, models.EventStatusCancelled:
	default:
		httpapi.Error(w, http.StatusBadRequest, "invalid status")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "set event status")
	defer cancel()

	if err := h.Events.SetStatus(ctx, eventID, orgID, req.Status); err != nil {
		h.writeError(w, err)
		return
	}
	h.Log.Info("event status changed",
		zap.String("event_id", eventID.Hex()),
		zap.String("status", req.Status))
	w.WriteHeader(http.StatusNoContent)
}

type deleteRequest struct {
	OrganizationID string `json:"organization_id"`
}

// Delete handles DELETE /events/{id}. The event and all its positions
// go together or not at all.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, err := httpapi.IDParam(r, "id")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req deleteRequest
	if err := httpapi.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid organization_id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete event")
	defer cancel()

	if err := h.Reg.DeleteEvent(ctx, eventID, orgID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
