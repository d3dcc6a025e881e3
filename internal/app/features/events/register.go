// internal/app/features/events/register.go
package events

import (
	"net/http"
	"strings"

	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/limits"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type registerRequest struct {
	Position    string `json:"position"`
	VolunteerID string `json:"volunteer_id"`
}

func (h *Handler) registerArgs(w http.ResponseWriter, r *http.Request) (eventID primitive.ObjectID, position string, volunteerID primitive.ObjectID, ok bool) {
	eventID, err := httpapi.IDParam(r, "id")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return eventID, "", volunteerID, false
	}
	var req registerRequest
	if err := httpapi.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return eventID, "", volunteerID, false
	}
	position = strings.TrimSpace(req.Position)
	if position == "" {
		httpapi.Error(w, http.StatusBadRequest, "position is required")
		return eventID, "", volunteerID, false
	}
	volunteerID, err = primitive.ObjectIDFromHex(req.VolunteerID)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid volunteer_id")
		return eventID, "", volunteerID, false
	}
	return eventID, position, volunteerID, true
}

// Register handles POST /events/{id}/register. A full position or a
// repeat registration is 409; the position can never hold more
// volunteers than its capacity, no matter how many requests race.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	eventID, position, volunteerID, ok := h.registerArgs(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "register volunteer")
	defer cancel()

	pos, err := h.Reg.Register(ctx, eventID, position, volunteerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, pos)
}

// Withdraw handles POST /events/{id}/withdraw. Withdrawing a
// volunteer who is not registered succeeds without change.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	eventID, position, volunteerID, ok := h.registerArgs(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "withdraw volunteer")
	defer cancel()

	pos, err := h.Reg.Withdraw(ctx, eventID, position, volunteerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, pos)
}
