// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization statuses.
const (
	OrgStatusActive   = "active"
	OrgStatusInactive = "inactive"
)

// Organization is an NGO on the platform: it runs events, claims
// issues, exchanges collaboration requests, and receives donations.
type Organization struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	City        string             `bson:"city" json:"city"`
	ContactInfo string             `bson:"contact_info" json:"contact_info"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
