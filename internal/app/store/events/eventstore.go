// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/civicworks/civicbridge/internal/app/system/txn"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages events and their volunteer positions. Positions live
// in their own collection, one document per (event_id, name), so that
// admission is a single conditional update on one document.
type Store struct {
	events    *mongo.Collection
	positions *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		events:    db.Collection("events"),
		positions: db.Collection("event_positions"),
	}
}

var (
	ErrNotFound          = errors.New("event not found")
	ErrPositionNotFound  = errors.New("position not found")
	ErrAlreadyRegistered = errors.New("volunteer is already registered for this position")
	ErrCapacityExceeded  = errors.New("position is full")
	ErrEventClosed       = errors.New("event is not accepting registrations")
	ErrForbidden         = errors.New("requester does not own this event")

	ErrBadCapacity       = errors.New("position capacity must be non-negative")
	ErrDuplicatePosition = errors.New("position names must be unique within an event")
	ErrNoPositions       = errors.New("event needs at least one position")
)

// PositionSpec describes a position at event creation time.
type PositionSpec struct {
	Name     string
	Capacity int
}

// Create inserts an event and its positions. Position order is
// preserved; capacity is fixed here and never changes afterwards.
func (s *Store) Create(ctx context.Context, ev models.Event, specs []PositionSpec) (models.Event, error) {
	if len(specs) == 0 {
		return models.Event{}, ErrNoPositions
	}
	seen := make(map[string]bool, len(specs))
	for _, p := range specs {
		if p.Capacity < 0 {
			return models.Event{}, ErrBadCapacity
		}
		name := strings.TrimSpace(p.Name)
		if name == "" || seen[name] {
			return models.Event{}, ErrDuplicatePosition
		}
		seen[name] = true
	}

	now := time.Now().UTC()
	ev.ID = primitive.NewObjectID()
	ev.TitleCI = text.Fold(ev.Title)
	if ev.Status == "" {
		ev.Status = models.EventStatusUpcoming
	}
	ev.CreatedAt = now
	ev.UpdatedAt = now

	docs := make([]interface{}, 0, len(specs))
	for i, p := range specs {
		docs = append(docs, models.VolunteerPosition{
			ID:         primitive.NewObjectID(),
			EventID:    ev.ID,
			Name:       strings.TrimSpace(p.Name),
			Ord:        i,
			Capacity:   p.Capacity,
			Registered: []primitive.ObjectID{},
			CreatedAt:  now,
		})
	}

	err := txn.WithTransaction(ctx, s.events.Database().Client(), func(ctx context.Context) error {
		if _, err := s.events.InsertOne(ctx, ev); err != nil {
			return err
		}
		_, err := s.positions.InsertMany(ctx, docs)
		return err
	})
	if err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var ev models.Event
	if err := s.events.FindOne(ctx, bson.M{"_id": id}).Decode(&ev); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Event{}, ErrNotFound
		}
		return models.Event{}, err
	}
	return ev, nil
}

// Positions returns an event's positions in creation order.
func (s *Store) Positions(ctx context.Context, eventID primitive.ObjectID) ([]models.VolunteerPosition, error) {
	cur, err := s.positions.Find(ctx, bson.M{"event_id": eventID},
		options.Find().SetSort(bson.D{{Key: "ord", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.VolunteerPosition
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByOrganization returns an NGO's events, newest start time first.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.Event, error) {
	cur, err := s.events.Find(ctx, bson.M{"organization_id": orgID},
		options.Find().SetSort(bson.D{{Key: "starts_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus moves an event to a new status. Only the owning NGO may
// change it.
func (s *Store) SetStatus(ctx context.Context, eventID, requesterOrg primitive.ObjectID, status string) error {
	switch status {
	case models.EventStatusUpcoming, models.EventStatusOngoing,
		models.EventStatusCompleted, models.EventStatusCancelled:
	default:
		return errors.New("unknown event status: " + status)
	}

	res, err := s.events.UpdateOne(ctx,
		bson.M{"_id": eventID, "organization_id": requesterOrg},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, eventID); err != nil {
			return err
		}
		return ErrForbidden
	}
	return nil
}

// Delete removes an event and all its positions. Registered volunteers
// lose their standing silently. The removal is all-or-nothing.
func (s *Store) Delete(ctx context.Context, eventID, requesterOrg primitive.ObjectID) error {
	ev, err := s.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if ev.OrganizationID != requesterOrg {
		return ErrForbidden
	}

	return txn.WithTransaction(ctx, s.events.Database().Client(), func(ctx context.Context) error {
		if _, err := s.positions.DeleteMany(ctx, bson.M{"event_id": eventID}); err != nil {
			return err
		}
		// Guarded by owner so a concurrent transfer cannot race the check above.
		res, err := s.events.DeleteOne(ctx, bson.M{"_id": eventID, "organization_id": requesterOrg})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// registerAttempts bounds the classify-and-retry loop in Register.
// Two retries are plenty: a slot freed between attempts is the only
// way classification comes back inconclusive.
const registerAttempts = 3

// Register admits a volunteer into a position. The admission
// check-and-insert is one conditional update: the filter only matches
// while the volunteer is absent from the registered set AND the set is
// smaller than the capacity, so two concurrent calls can never both
// take the last slot. On no-match the position is re-read to decide
// which precondition failed.
func (s *Store) Register(ctx context.Context, eventID primitive.ObjectID, positionName string, volunteerID primitive.ObjectID) (models.VolunteerPosition, error) {
	ev, err := s.GetByID(ctx, eventID)
	if err != nil {
		return models.VolunteerPosition{}, err
	}
	if ev.Status != models.EventStatusUpcoming && ev.Status != models.EventStatusOngoing {
		return models.VolunteerPosition{}, ErrEventClosed
	}

	filter := bson.M{
		"event_id":   eventID,
		"name":       positionName,
		"registered": bson.M{"$ne": volunteerID},
		"$expr":      bson.M{"$lt": bson.A{bson.M{"$size": "$registered"}, "$capacity"}},
	}
	update := bson.M{"$addToSet": bson.M{"registered": volunteerID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	for attempt := 0; attempt < registerAttempts; attempt++ {
		var pos models.VolunteerPosition
		err := s.positions.FindOneAndUpdate(ctx, filter, update, opts).Decode(&pos)
		if err == nil {
			return pos, nil
		}
		if err != mongo.ErrNoDocuments {
			return models.VolunteerPosition{}, err
		}

		// The filter did not match; figure out why.
		var cur models.VolunteerPosition
		err = s.positions.FindOne(ctx, bson.M{"event_id": eventID, "name": positionName}).Decode(&cur)
		if err == mongo.ErrNoDocuments {
			return models.VolunteerPosition{}, ErrPositionNotFound
		}
		if err != nil {
			return models.VolunteerPosition{}, err
		}
		for _, id := range cur.Registered {
			if id == volunteerID {
				return models.VolunteerPosition{}, ErrAlreadyRegistered
			}
		}
		if len(cur.Registered) >= cur.Capacity {
			return models.VolunteerPosition{}, ErrCapacityExceeded
		}
		// A slot opened up between the update and the re-read; try again.
	}
	return models.VolunteerPosition{}, ErrCapacityExceeded
}

// Withdraw removes a volunteer from a position. Removing a volunteer
// who was never registered is a no-op, not an error.
func (s *Store) Withdraw(ctx context.Context, eventID primitive.ObjectID, positionName string, volunteerID primitive.ObjectID) (models.VolunteerPosition, error) {
	var pos models.VolunteerPosition
	err := s.positions.FindOneAndUpdate(ctx,
		bson.M{"event_id": eventID, "name": positionName},
		bson.M{"$pull": bson.M{"registered": volunteerID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&pos)
	if err == mongo.ErrNoDocuments {
		if _, err := s.GetByID(ctx, eventID); err != nil {
			return models.VolunteerPosition{}, err
		}
		return models.VolunteerPosition{}, ErrPositionNotFound
	}
	if err != nil {
		return models.VolunteerPosition{}, err
	}
	return pos, nil
}
