// internal/app/features/donations/donate.go
package donations

import (
	"net/http"
	"strings"

	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/limits"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type donateRequest struct {
	OrganizationID string `json:"organization_id"`
	DonorID        string `json:"donor_id"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
	Note           string `json:"note"`
}

// Donate handles POST /donations. The organization must exist; the
// response carries the receipt reference.
func (h *Handler) Donate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if err := httpapi.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid organization_id")
		return
	}
	donorID, err := primitive.ObjectIDFromHex(req.DonorID)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid donor_id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "record donation")
	defer cancel()

	if _, err := h.Orgs.GetByID(ctx, orgID); err != nil {
		h.writeError(w, err)
		return
	}

	don, err := h.Donations.Create(ctx, orgID, donorID, req.AmountCents, req.Currency, strings.TrimSpace(req.Note))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.Info("donation recorded",
		zap.String("donation_id", don.ID.Hex()),
		zap.String("organization_id", orgID.Hex()),
		zap.Int64("amount_cents", don.AmountCents))
	httpapi.WriteJSON(w, http.StatusCreated, don)
}
