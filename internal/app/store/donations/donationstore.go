// internal/app/store/donations/donationstore.go
package donationstore

import (
	"context"
	"errors"
	"time"

	"github.com/civicworks/civicbridge/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("donations")}
}

var ErrBadAmount = errors.New("donation amount must be positive")

// Create records a completed donation and hands back the stored record
// including its receipt reference.
func (s *Store) Create(ctx context.Context, orgID, donorID primitive.ObjectID, amountCents int64, currency, note string) (models.Donation, error) {
	if amountCents <= 0 {
		return models.Donation{}, ErrBadAmount
	}
	if currency == "" {
		currency = "USD"
	}
	d := models.Donation{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		DonorID:        donorID,
		AmountCents:    amountCents,
		Currency:       currency,
		Reference:      uuid.NewString(),
		Note:           note,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

// ListByOrganization returns an NGO's donations, newest first, up to limit.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID, limit int64) ([]models.Donation, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
			SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Donation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
