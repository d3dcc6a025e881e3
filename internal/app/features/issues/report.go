// internal/app/features/issues/report.go
package issues

import (
	"net/http"
	"strings"

	"github.com/civicworks/civicbridge/internal/app/system/htmlsanitize"
	"github.com/civicworks/civicbridge/internal/app/system/httpapi"
	"github.com/civicworks/civicbridge/internal/app/system/limits"
	"github.com/civicworks/civicbridge/internal/app/system/timeouts"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type reportRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Location  string   `json:"location"`
	Tags      []string `json:"tags"`
	CreatedBy string   `json:"created_by"`
}

// Report handles POST /issues. The body is sanitized before it is
// stored; the issue always starts open and unassigned.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := httpapi.DecodeJSON(w, r, limits.MaxIssueBodySize, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		httpapi.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	createdBy, err := primitive.ObjectIDFromHex(req.CreatedBy)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid created_by")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "report issue")
	defer cancel()

	iss, err := h.Issues.Create(ctx, models.Issue{
		Title:     title,
		Body:      htmlsanitize.Sanitize(req.Body),
		Location:  strings.TrimSpace(req.Location),
		Tags:      req.Tags,
		CreatedBy: createdBy,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.Info("issue reported",
		zap.String("issue_id", iss.ID.Hex()),
		zap.String("created_by", createdBy.Hex()))
	httpapi.WriteJSON(w, http.StatusCreated, iss)
}
