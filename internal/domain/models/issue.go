// internal/domain/models/issue.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Issue statuses. An issue starts open, becomes assigned when an NGO
// claims it (directly or through an accepted collaboration), and ends
// resolved. assigned_ngo is set if and only if the status is assigned
// or resolved; only the collaboration workflow and the claim path may
// write it.
const (
	IssueStatusOpen     = "open"
	IssueStatusAssigned = "assigned"
	IssueStatusResolved = "resolved"
)

// Issue is a citizen-reported civic problem.
type Issue struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Title    string             `bson:"title" json:"title"`
	TitleCI  string             `bson:"title_ci" json:"-"`
	Body     string             `bson:"body" json:"body"`
	Location string             `bson:"location" json:"location"`
	Tags     []string           `bson:"tags,omitempty" json:"tags,omitempty"`

	Status      string              `bson:"status" json:"status"`
	CreatedBy   primitive.ObjectID  `bson:"created_by" json:"created_by"`
	AssignedNGO *primitive.ObjectID `bson:"assigned_ngo,omitempty" json:"assigned_ngo,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
