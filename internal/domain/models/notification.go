// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a per-recipient message produced as a side effect of
// registration and collaboration transitions. It is never created
// directly by a presentation caller. Recipients clear notifications by
// bulk delete, not by a state transition.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	Kind        string             `bson:"kind" json:"kind"`
	Message     string             `bson:"message" json:"message"`
	IsRead      bool               `bson:"is_read" json:"is_read"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
