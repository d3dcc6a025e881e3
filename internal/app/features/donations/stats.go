// internal/app/features/donations/stats.go
package donations

import (
	"net/http"

	"github.com/civicworks/civicbridge/internal/app/store/queries/donationqueries"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/domain/models"
)

// Stats handles GET /donations/stats?organization=<id>: donation
// count, total in minor units, and the most recent donations. An NGO
// with no donations gets zeros, not an error.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	orgID, err := httpapi.QueryID(r, "organization")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "donation stats")
	defer cancel()

	stats, err := donationqueries.ForOrganization(ctx, h.DB, orgID, 5)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if stats.Recent == nil {
		stats.Recent = []models.Donation{}
	}
	httpapi.WriteJSON(w, http.StatusOK, stats)
}
