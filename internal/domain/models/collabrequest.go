// internal/domain/models/collabrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collaboration request statuses. Pending is the only non-terminal
// state; accepted and rejected are final.
const (
	CollabStatusPending  = "pending"
	CollabStatusAccepted = "accepted"
	CollabStatusRejected = "rejected"
)

// CollaborationRequest is a proposal from one NGO (RequestedBy) to
// another (RequestedTo) to jointly own an issue. At most one pending
// request may exist per (issue_id, requested_to) pair; this is
// enforced by a partial unique index.
//
// Applied records whether acceptance actually assigned the issue.
// When the issue was claimed by a third party between creation and
// acceptance, the request stays accepted but Applied is false.
type CollaborationRequest struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	IssueID     primitive.ObjectID `bson:"issue_id" json:"issue_id"`
	RequestedBy primitive.ObjectID `bson:"requested_by" json:"requested_by"`
	RequestedTo primitive.ObjectID `bson:"requested_to" json:"requested_to"`
	Message     string             `bson:"message" json:"message"`

	Status  string `bson:"status" json:"status"`
	Applied bool   `bson:"applied" json:"applied"`

	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	ResolvedAt *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}
