// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

var ErrNotFound = errors.New("notification not found")

// Append inserts a notification record. Notifications are only created
// as side effects of workflow transitions, via the notify dispatcher.
func (s *Store) Append(ctx context.Context, n models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, n)
	return err
}

// MarkRead sets is_read. Re-marking an already-read notification is a
// no-op success.
func (s *Store) MarkRead(ctx context.Context, id primitive.ObjectID) (models.Notification, error) {
	var n models.Notification
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return models.Notification{}, ErrNotFound
	}
	if err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// ListFor returns a recipient's notifications as a lazy sequence,
// newest first. Each range over the sequence opens a fresh cursor, so
// the sequence is restartable. A decode or cursor error is yielded as
// the final element with a zero notification.
func (s *Store) ListFor(recipientID primitive.ObjectID) iter.Seq2[models.Notification, error] {
	return func(yield func(models.Notification, error) bool) {
		ctx := context.Background()
		cur, err := s.c.Find(ctx, bson.M{"recipient_id": recipientID},
			options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
		if err != nil {
			yield(models.Notification{}, err)
			return
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var n models.Notification
			if err := cur.Decode(&n); err != nil {
				yield(models.Notification{}, err)
				return
			}
			if !yield(n, nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(models.Notification{}, err)
		}
	}
}

// ListRecent returns up to limit notifications for a recipient, newest
// first. Used by the HTTP surface; ListFor is the general sequence.
func (s *Store) ListRecent(ctx context.Context, recipientID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	cur, err := s.c.Find(ctx, bson.M{"recipient_id": recipientID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
			SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountUnread returns the number of unread notifications for a recipient.
func (s *Store) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "is_read": false})
}

// ClearAll deletes every notification for a recipient and returns the
// number removed. This is a bulk delete, not a state transition, and
// is not reversible.
func (s *Store) ClearAll(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"recipient_id": recipientID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
