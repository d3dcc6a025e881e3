// internal/app/workflow/registration/registration.go

// Package registration is the volunteer admission engine. It owns
// every mutation of a position's registered set; nothing else on the
// platform writes that field.
package registration

import (
	"context"
	"fmt"

	eventstore "github.com/civicworks/civicbridge/internal/app/store/events"
	"github.com/civicworks/civicbridge/internal/app/system/notify"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Engine coordinates the event store and the notification bus.
// Storage-level preconditions (capacity, membership, ownership) are
// enforced by the store; the engine adds notification fan-out.
type Engine struct {
	events *eventstore.Store
	pub    notify.Publisher
	log    *zap.Logger
}

func New(events *eventstore.Store, pub notify.Publisher, logger *zap.Logger) *Engine {
	return &Engine{events: events, pub: pub, log: logger}
}

// Register admits a volunteer into an event position and notifies the
// owning NGO. Fails with eventstore.ErrNotFound, ErrPositionNotFound,
// ErrAlreadyRegistered, ErrCapacityExceeded, or ErrEventClosed. The
// notification is published only after the admission has committed.
func (e *Engine) Register(ctx context.Context, eventID primitive.ObjectID, positionName string, volunteerID primitive.ObjectID) (models.VolunteerPosition, error) {
	ev, err := e.events.GetByID(ctx, eventID)
	if err != nil {
		return models.VolunteerPosition{}, err
	}

	pos, err := e.events.Register(ctx, eventID, positionName, volunteerID)
	if err != nil {
		return models.VolunteerPosition{}, err
	}

	e.log.Info("volunteer registered",
		zap.String("event_id", eventID.Hex()),
		zap.String("position", positionName),
		zap.String("volunteer_id", volunteerID.Hex()),
		zap.Int("filled", len(pos.Registered)),
		zap.Int("capacity", pos.Capacity))

	e.pub.Publish(notify.Event{
		RecipientID: ev.OrganizationID,
		Kind:        notify.KindVolunteerRegistered,
		Message:     fmt.Sprintf("A volunteer signed up for %q at %q.", pos.Name, ev.Title),
	})
	return pos, nil
}

// Withdraw removes a volunteer from a position. Withdrawing a
// volunteer who is not registered is a no-op success; an unknown event
// or position is eventstore.ErrNotFound / ErrPositionNotFound.
func (e *Engine) Withdraw(ctx context.Context, eventID primitive.ObjectID, positionName string, volunteerID primitive.ObjectID) (models.VolunteerPosition, error) {
	pos, err := e.events.Withdraw(ctx, eventID, positionName, volunteerID)
	if err != nil {
		return models.VolunteerPosition{}, err
	}
	e.log.Info("volunteer withdrawn",
		zap.String("event_id", eventID.Hex()),
		zap.String("position", positionName),
		zap.String("volunteer_id", volunteerID.Hex()))
	return pos, nil
}

// DeleteEvent removes an event and its positions. Only the owning NGO
// may delete; the removal is all-or-nothing and produces no
// notifications.
func (e *Engine) DeleteEvent(ctx context.Context, eventID, requesterOrg primitive.ObjectID) error {
	if err := e.events.Delete(ctx, eventID, requesterOrg); err != nil {
		return err
	}
	e.log.Info("event deleted",
		zap.String("event_id", eventID.Hex()),
		zap.String("organization_id", requesterOrg.Hex()))
	return nil
}
