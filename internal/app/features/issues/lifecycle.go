// internal/app/features/issues/lifecycle.go
package issues

import (
	"net/http"

	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/limits"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type lifecycleRequest struct {
	OrganizationID string `json:"organization_id"`
}

func (h *Handler) lifecycleIDs(w http.ResponseWriter, r *http.Request) (issueID, orgID primitive.ObjectID, ok bool) {
	issueID, err := httpapi.IDParam(r, "id")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return issueID, orgID, false
	}
	var req lifecycleRequest
	if err := httpapi.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return issueID, orgID, false
	}
	orgID, err = primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid organization_id")
		return issueID, orgID, false
	}
	return issueID, orgID, true
}

// Claim handles POST /issues/{id}/claim: a direct assignment of an
// open issue to an NGO. A lost race comes back as 409.
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	issueID, orgID, ok := h.lifecycleIDs(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "claim issue")
	defer cancel()

	iss, err := h.Collab.ClaimIssue(ctx, issueID, orgID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, iss)
}

// Resolve handles POST /issues/{id}/resolve. Only the assigned NGO
// may resolve.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	issueID, orgID, ok := h.lifecycleIDs(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "resolve issue")
	defer cancel()

	iss, err := h.Collab.ResolveIssue(ctx, issueID, orgID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, iss)
}
