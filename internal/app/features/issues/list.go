// internal/app/features/issues/list.go
package issues

import (
	"net/http"

	"github.com/civicworks/civicbridge/internal/app/store/queries/issuequeries"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/domain/models"
)

// View handles GET /issues/{id}.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.IDParam(r, "id")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view issue")
	defer cancel()

	iss, err := h.Issues.GetByID(ctx, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, iss)
}

type issueListResponse struct {
	Issues []models.Issue `json:"issues"`
}

// ListByCreator handles GET /issues?creator=<id>. Results are newest
// first; a creator with no issues gets an empty list, not an error.
func (h *Handler) ListByCreator(w http.ResponseWriter, r *http.Request) {
	creatorID, err := httpapi.QueryID(r, "creator")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list issues by creator")
	defer cancel()

	rows, err := h.Issues.ListByCreator(ctx, creatorID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.Issue{}
	}
	httpapi.WriteJSON(w, http.StatusOK, issueListResponse{Issues: rows})
}

// ListCollaborated handles GET /issues/collaborated?organization=<id>:
// issues the organization gained through an accepted collaboration
// request, on either side of it.
func (h *Handler) ListCollaborated(w http.ResponseWriter, r *http.Request) {
	orgID, err := httpapi.QueryID(r, "organization")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list collaborated issues")
	defer cancel()

	rows, err := issuequeries.ListCollaborated(ctx, h.DB, orgID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.Issue{}
	}
	httpapi.WriteJSON(w, http.StatusOK, issueListResponse{Issues: rows})
}
