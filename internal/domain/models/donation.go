// internal/domain/models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation records a completed donation to an NGO. Amounts are stored
// in minor units (cents) to keep aggregation exact. Reference is an
// opaque receipt code handed back to the donor; payment-gateway
// mechanics live outside this service.
type Donation struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	DonorID        primitive.ObjectID `bson:"donor_id" json:"donor_id"`
	AmountCents    int64              `bson:"amount_cents" json:"amount_cents"`
	Currency       string             `bson:"currency" json:"currency"`
	Reference      string             `bson:"reference" json:"reference"`
	Note           string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
