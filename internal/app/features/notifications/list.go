// internal/app/features/notifications/list.go
package notifications

import (
	"net/http"

	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/paging"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/domain/models"
)

type listResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

// List handles GET /notifications?recipient=<id>&limit=<n>, newest
// first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	recipientID, err := httpapi.QueryID(r, "recipient")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := paging.ParseLimit(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list notifications")
	defer cancel()

	rows, err := h.Notifications.ListRecent(ctx, recipientID, int64(limit))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.Notification{}
	}
	httpapi.WriteJSON(w, http.StatusOK, listResponse{Notifications: rows})
}

type unreadResponse struct {
	Unread int64 `json:"unread"`
}

// UnreadCount handles GET /notifications/unread?recipient=<id>.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	recipientID, err := httpapi.QueryID(r, "recipient")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "count unread notifications")
	defer cancel()

	n, err := h.Notifications.CountUnread(ctx, recipientID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, unreadResponse{Unread: n})
}

// MarkRead handles POST /notifications/{id}/read. Re-reading an
// already-read notification succeeds without change.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.IDParam(r, "id")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "mark notification read")
	defer cancel()

	n, err := h.Notifications.MarkRead(ctx, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, n)
}

type clearResponse struct {
	Deleted int64 `json:"deleted"`
}

// Clear handles DELETE /notifications?recipient=<id>: removes every
// notification for the recipient and reports how many went.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	recipientID, err := httpapi.QueryID(r, "recipient")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "clear notifications")
	defer cancel()

	deleted, err := h.Notifications.ClearAll(ctx, recipientID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, clearResponse{Deleted: deleted})
}
