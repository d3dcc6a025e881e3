// internal/app/features/collaborations/respond.go
package collaborations

import (
	"errors"
	"net/http"

	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/limits"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/app/workflow/collaboration"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type respondRequest struct {
	OrganizationID string `json:"organization_id"`
	Decision       string `json:"decision"`
}

type respondResponse struct {
	Request models.CollaborationRequest `json:"request"`
	Warning string                      `json:"warning,omitempty"`
}

// Respond handles POST /collaborations/{id}/respond. Acceptance that
// loses the assignment race still resolves the request; the response
// carries a warning instead of an error status.
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	requestID, err := httpapi.IDParam(r, "id")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req respondRequest
	if err := httpapi.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid organization_id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "respond to collaboration request")
	defer cancel()

	resolved, err := h.Engine.Respond(ctx, requestID, orgID, collaboration.Decision(req.Decision))
	if errors.Is(err, collaboration.ErrIssueAlreadyAssigned) {
		httpapi.WriteJSON(w, http.StatusOK, respondResponse{
			Request: resolved,
			Warning: err.Error(),
		})
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, respondResponse{Request: resolved})
}
