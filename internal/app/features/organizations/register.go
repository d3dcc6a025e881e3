// internal/app/features/organizations/register.go
package organizations

import (
	"net/http"
	"strings"

	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/limits"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	ContactInfo string `json:"contact_info"`
}

// Register handles POST /organizations. Names are unique ignoring
// case and diacritics; a clash is 409.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpapi.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httpapi.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "register organization")
	defer cancel()

	org, err := h.Orgs.Create(ctx, models.Organization{
		Name:        name,
		City:        strings.TrimSpace(req.City),
		ContactInfo: strings.TrimSpace(req.ContactInfo),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.Info("organization registered", zap.String("organization_id", org.ID.Hex()))
	httpapi.WriteJSON(w, http.StatusCreated, org)
}
