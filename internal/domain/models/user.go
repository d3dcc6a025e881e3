// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleCitizen   = "citizen"
	RoleVolunteer = "volunteer"
	RoleNGOStaff  = "ngo_staff"
)

// User is a platform account: a citizen reporting issues, a volunteer
// registering for positions, or NGO staff acting for an organization.
// Authentication lives outside this service; the record exists so the
// core can reference actors and notification recipients.
type User struct {
	ID             primitive.ObjectID  `bson:"_id" json:"id"`
	FullName       string              `bson:"full_name" json:"full_name"`
	FullNameCI     string              `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email          string              `bson:"email" json:"email"`
	Role           string              `bson:"role" json:"role"` // citizen | volunteer | ngo_staff
	Status         string              `bson:"status,omitempty" json:"status,omitempty"`
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
