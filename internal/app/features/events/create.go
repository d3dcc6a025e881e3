// internal/app/features/events/create.go
package events

import (
	"net/http"
	"strings"
	"time"

	eventstore "github.com/civicworks/civicbridge/internal/app/store/events"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/limits"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type positionSpec struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type createRequest struct {
	OrganizationID string         `json:"organization_id"`
	Title          string         `json:"title"`
	Location       string         `json:"location"`
	StartsAt       time.Time      `json:"starts_at"`
	EndsAt         time.Time      `json:"ends_at"`
	Positions      []positionSpec `json:"positions"`
}

// Create handles POST /events. Position capacities are fixed here and
// never change afterwards.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpapi.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid organization_id")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		httpapi.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	specs := make([]eventstore.PositionSpec, 0, len(req.Positions))
	for _, p := range req.Positions {
		specs = append(specs, eventstore.PositionSpec{
			Name:     strings.TrimSpace(p.Name),
			Capacity: p.Capacity,
		})
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create event")
	defer cancel()

	ev, err := h.Events.Create(ctx, models.Event{
		OrganizationID: orgID,
		Title:          title,
		Location:       strings.TrimSpace(req.Location),
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
	}, specs)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.Info("event created",
		zap.String("event_id", ev.ID.Hex()),
		zap.String("organization_id", orgID.Hex()),
		zap.Int("positions", len(specs)))
	httpapi.WriteJSON(w, http.StatusCreated, ev)
}
