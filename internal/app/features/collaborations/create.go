// internal/app/features/collaborations/create.go
package collaborations

import (
	"net/http"

	"github.com/civicworks/civicbridge/internal/app/system/htmlsanitize"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/limits"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createRequest struct {
	IssueID     string `json:"issue_id"`
	RequestedBy string `json:"requested_by"`
	RequestedTo string `json:"requested_to"`
	Message     string `json:"message"`
}

// Create handles POST /collaborations. A second pending request for
// the same (issue, organization) pair is 409.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpapi.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	issueID, err := primitive.ObjectIDFromHex(req.IssueID)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid issue_id")
		return
	}
	fromOrg, err := primitive.ObjectIDFromHex(req.RequestedBy)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid requested_by")
		return
	}
	toOrg, err := primitive.ObjectIDFromHex(req.RequestedTo)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid requested_to")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create collaboration request")
	defer cancel()

	created, err := h.Engine.Create(ctx, issueID, fromOrg, toOrg, htmlsanitize.Sanitize(req.Message))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, created)
}
