// internal/app/features/events/list.go
package events

import (
	"net/http"

	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/domain/models"
)

// View handles GET /events/{id}.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.IDParam(r, "id")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view event")
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, ev)
}

type positionsResponse struct {
	Positions []models.VolunteerPosition `json:"positions"`
}

// Positions handles GET /events/{id}/positions, in creation order.
func (h *Handler) Positions(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.IDParam(r, "id")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list positions")
	defer cancel()

	if _, err := h.Events.GetByID(ctx, id); err != nil {
		h.writeError(w, err)
		return
	}
	rows, err := h.Events.Positions(ctx, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.VolunteerPosition{}
	}
	httpapi.WriteJSON(w, http.StatusOK, positionsResponse{Positions: rows})
}

type eventListResponse struct {
	Events []models.Event `json:"events"`
}

// ListByOrganization handles GET /events?organization=<id>, newest
// start time first.
func (h *Handler) ListByOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, err := httpapi.QueryID(r, "organization")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list events by organization")
	defer cancel()

	rows, err := h.Events.ListByOrganization(ctx, orgID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.Event{}
	}
	httpapi.WriteJSON(w, http.StatusOK, eventListResponse{Events: rows})
}
