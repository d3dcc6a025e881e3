// internal/app/features/organizations/list.go
package organizations

import (
	"net/http"

	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// View handles GET /organizations/{id}.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.IDParam(r, "id")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view organization")
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, org)
}

type listResponse struct {
	Organizations []models.Organization `json:"organizations"`
	HasPrev       bool                  `json:"has_prev"`
	HasNext       bool                  `json:"has_next"`
	PrevCursor    string                `json:"prev_cursor,omitempty"`
	NextCursor    string                `json:"next_cursor,omitempty"`
}

// List handles GET /organizations?q=&before=&after=: the active NGO
// directory, alphabetical by folded name, keyset-paginated.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := query.Get(r, "q")
	before := query.Get(r, "before")
	after := query.Get(r, "after")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list organizations")
	defer cancel()

	page, err := h.Orgs.ListPage(ctx, q, before, after)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if page.Organizations == nil {
		page.Organizations = []models.Organization{}
	}
	httpapi.WriteJSON(w, http.StatusOK, listResponse{
		Organizations: page.Organizations,
		HasPrev:       page.HasPrev,
		HasNext:       page.HasNext,
		PrevCursor:    page.PrevCursor,
		NextCursor:    page.NextCursor,
	})
}
