// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event statuses. Volunteers can only register while an event is
// upcoming or ongoing.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Event is a volunteering event run by an NGO.
//
// NOTE:
//   - Volunteer positions are no longer embedded on Event.
//     Each position lives in the event_positions collection so that
//     admission can be a single conditional update on one document.
//   - Order of positions is preserved via VolunteerPosition.Ord.
type Event struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	Title          string             `bson:"title" json:"title"`
	TitleCI        string             `bson:"title_ci" json:"-"`
	Location       string             `bson:"location" json:"location"`
	StartsAt       time.Time          `bson:"starts_at" json:"starts_at"`
	EndsAt         time.Time          `bson:"ends_at" json:"ends_at"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// VolunteerPosition is a named, capacity-bounded slot on an event.
// Exactly one document per (event_id, name). Capacity is fixed at
// creation; Registered holds at most Capacity volunteer IDs and is
// mutated only through the registration engine.
type VolunteerPosition struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	EventID    primitive.ObjectID   `bson:"event_id" json:"event_id"`
	Name       string               `bson:"name" json:"name"`
	Ord        int                  `bson:"ord" json:"ord"`
	Capacity   int                  `bson:"capacity" json:"capacity"`
	Registered []primitive.ObjectID `bson:"registered" json:"registered"`
	CreatedAt  time.Time            `bson:"created_at" json:"created_at"`
}
