// internal/app/store/collabs/collabstore.go
package collabstore

import (
	"context"
	"errors"
	"time"

	"github.com/civicworks/civicbridge/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages collaboration requests. Each request is a small state
// machine: pending -> accepted | rejected, both terminal. The
// "one pending request per (issue, requested_to)" rule is enforced by
// a partial unique index, so concurrent creates cannot both slip
// through a read-then-write gap.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("collab_requests")}
}

var (
	ErrNotFound         = errors.New("collaboration request not found")
	ErrDuplicatePending = errors.New("a pending request for this issue and organization already exists")
	ErrNotResponder     = errors.New("only the requested organization may respond")
	ErrAlreadyResolved  = errors.New("collaboration request is already resolved")
)

// Create inserts a new pending request. A unique-index violation means
// another pending request already targets the same (issue, NGO) pair.
func (s *Store) Create(ctx context.Context, issueID, fromOrg, toOrg primitive.ObjectID, message string) (models.CollaborationRequest, error) {
	req := models.CollaborationRequest{
		ID:          primitive.NewObjectID(),
		IssueID:     issueID,
		RequestedBy: fromOrg,
		RequestedTo: toOrg,
		Message:     message,
		Status:      models.CollabStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		if wafflemongo.IsDup(err) {
			return models.CollaborationRequest{}, ErrDuplicatePending
		}
		return models.CollaborationRequest{}, err
	}
	return req, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.CollaborationRequest, error) {
	var req models.CollaborationRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.CollaborationRequest{}, ErrNotFound
		}
		return models.CollaborationRequest{}, err
	}
	return req, nil
}

// Resolve flips a pending request to a terminal status. The update is
// conditioned on the request still being pending and addressed to the
// responder, so a second response attempt loses and is reported as
// ErrAlreadyResolved rather than silently succeeding.
func (s *Store) Resolve(ctx context.Context, id, responderOrg primitive.ObjectID, status string) (models.CollaborationRequest, error) {
	if status != models.CollabStatusAccepted && status != models.CollabStatusRejected {
		return models.CollaborationRequest{}, errors.New("resolution status must be accepted or rejected")
	}

	now := time.Now().UTC()
	var req models.CollaborationRequest
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "requested_to": responderOrg, "status": models.CollabStatusPending},
		bson.M{"$set": bson.M{"status": status, "resolved_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&req)
	if err == mongo.ErrNoDocuments {
		cur, err := s.GetByID(ctx, id)
		if err != nil {
			return models.CollaborationRequest{}, err
		}
		if cur.RequestedTo != responderOrg {
			return models.CollaborationRequest{}, ErrNotResponder
		}
		return models.CollaborationRequest{}, ErrAlreadyResolved
	}
	if err != nil {
		return models.CollaborationRequest{}, err
	}
	return req, nil
}

// SetApplied records that an accepted request actually assigned its
// issue. Requests that lost the assignment race keep applied=false.
func (s *Store) SetApplied(ctx context.Context, id primitive.ObjectID, applied bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"applied": applied}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForOrganization returns requests sent by or addressed to an NGO,
// optionally filtered by status, newest first.
func (s *Store) ListForOrganization(ctx context.Context, orgID primitive.ObjectID, status string) ([]models.CollaborationRequest, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"requested_by": orgID},
		bson.M{"requested_to": orgID},
	}}
	if status != "" {
		filter["status"] = status
	}
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CollaborationRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
