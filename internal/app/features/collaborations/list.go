// internal/app/features/collaborations/list.go
package collaborations

import (
	"net/http"

	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

type listResponse struct {
	Requests []models.CollaborationRequest `json:"requests"`
}

// List handles GET /collaborations?organization=<id>&status=pending.
// Requests on either side of the organization are returned, newest
// first; status is an optional filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orgID, err := httpapi.QueryID(r, "organization")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	status := query.Get(r, "status")
	switch status {
	case "", models.CollabStatusPending, models.CollabStatusAccepted, models.CollabStatusRejected:
	default:
		httpapi.Error(w, http.StatusBadRequest, "invalid status")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list collaboration requests")
	defer cancel()

	rows, err := h.Collabs.ListForOrganization(ctx, orgID, status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.CollaborationRequest{}
	}
	httpapi.WriteJSON(w, http.StatusOK, listResponse{Requests: rows})
}
