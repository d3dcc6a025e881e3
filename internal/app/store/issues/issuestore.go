// internal/app/store/issues/issuestore.go
package issuestore

import (
	"context"
	"errors"
	"time"

	"github.com/civicworks/civicbridge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("issues")}
}

var (
	ErrNotFound        = errors.New("issue not found")
	ErrAlreadyAssigned = errors.New("issue is already assigned")
	ErrNotAssignee     = errors.New("issue is assigned to a different organization")
	ErrNotAssigned     = errors.New("issue is not in assigned state")
)

func (s *Store) Create(ctx context.Context, in models.Issue) (models.Issue, error) {
	now := time.Now().UTC()
	in.ID = primitive.NewObjectID()
	in.TitleCI = text.Fold(in.Title)
	in.Status = models.IssueStatusOpen
	in.AssignedNGO = nil
	in.CreatedAt = now
	in.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, in); err != nil {
		return models.Issue{}, err
	}
	return in, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Issue, error) {
	var iss models.Issue
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&iss); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Issue{}, ErrNotFound
		}
		return models.Issue{}, err
	}
	return iss, nil
}

// ListByCreator returns a citizen's reported issues, newest first.
func (s *Store) ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Issue, error) {
	cur, err := s.c.Find(ctx, bson.M{"created_by": creatorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Issue
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Assign moves an open issue to assigned with the given NGO. The
// update only matches while the issue is still open, so a concurrent
// claim or acceptance cannot assign it twice; the loser sees
// ErrAlreadyAssigned.
func (s *Store) Assign(ctx context.Context, issueID, orgID primitive.ObjectID) (models.Issue, error) {
	var iss models.Issue
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": issueID, "status": models.IssueStatusOpen},
		bson.M{"$set": bson.M{
			"status":       models.IssueStatusAssigned,
			"assigned_ngo": orgID,
			"updated_at":   time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&iss)
	if err == mongo.ErrNoDocuments {
		if _, err := s.GetByID(ctx, issueID); err != nil {
			return models.Issue{}, err
		}
		return models.Issue{}, ErrAlreadyAssigned
	}
	if err != nil {
		return models.Issue{}, err
	}
	return iss, nil
}

// Resolve moves an assigned issue to resolved. Only the assigned NGO
// may resolve it; the assignment reference is kept on the record.
func (s *Store) Resolve(ctx context.Context, issueID, orgID primitive.ObjectID) (models.Issue, error) {
	var iss models.Issue
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": issueID, "status": models.IssueStatusAssigned, "assigned_ngo": orgID},
		bson.M{"$set": bson.M{
			"status":     models.IssueStatusResolved,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&iss)
	if err == mongo.ErrNoDocuments {
		cur, err := s.GetByID(ctx, issueID)
		if err != nil {
			return models.Issue{}, err
		}
		if cur.AssignedNGO != nil && *cur.AssignedNGO != orgID {
			return models.Issue{}, ErrNotAssignee
		}
		return models.Issue{}, ErrNotAssigned
	}
	if err != nil {
		return models.Issue{}, err
	}
	return iss, nil
}
