package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/civicworks/civicbridge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test NGO with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		City:        "Test City",
		ContactInfo: "contact@test.org",
		Status:      models.OrgStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("organizations").InsertOne(ctx, org)
	if err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateUser creates a test user with the given role. orgID may be nil
// for citizens and volunteers.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, role string, orgID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:             primitive.NewObjectID(),
		FullName:       fullName,
		FullNameCI:     text.Fold(fullName),
		Email:          fmt.Sprintf("%s@test.org", uuid.NewString()),
		Role:           role,
		Status:         "active",
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateVolunteer creates a test user with the volunteer role.
func (f *Fixtures) CreateVolunteer(ctx context.Context, fullName string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, models.RoleVolunteer, nil)
}

// CreateIssue creates an open, unassigned issue.
func (f *Fixtures) CreateIssue(ctx context.Context, title string, createdBy primitive.ObjectID) models.Issue {
	f.t.Helper()

	now := time.Now().UTC()
	iss := models.Issue{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Body:      "<p>test issue body</p>",
		Location:  "Test Square",
		Status:    models.IssueStatusOpen,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("issues").InsertOne(ctx, iss)
	if err != nil {
		f.t.Fatalf("failed to create test issue: %v", err)
	}
	return iss
}

// AssignIssue sets an issue's assignee and status directly, bypassing
// the workflow, for tests that need a pre-assigned issue.
func (f *Fixtures) AssignIssue(ctx context.Context, issueID, orgID primitive.ObjectID) {
	f.t.Helper()

	_, err := f.db.Collection("issues").UpdateByID(ctx, issueID, map[string]any{
		"$set": map[string]any{
			"status":       models.IssueStatusAssigned,
			"assigned_ngo": orgID,
			"updated_at":   time.Now().UTC(),
		},
	})
	if err != nil {
		f.t.Fatalf("failed to assign test issue: %v", err)
	}
}

// PositionDef describes one position for CreateEvent.
type PositionDef struct {
	Name     string
	Capacity int
}

// CreateEvent creates an upcoming event owned by orgID together with
// its position documents.
func (f *Fixtures) CreateEvent(ctx context.Context, orgID primitive.ObjectID, title string, positions ...PositionDef) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	ev := models.Event{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Title:          title,
		TitleCI:        text.Fold(title),
		Location:       "Test Park",
		StartsAt:       now.Add(24 * time.Hour),
		EndsAt:         now.Add(28 * time.Hour),
		Status:         models.EventStatusUpcoming,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, ev); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}

	for i, p := range positions {
		pos := models.VolunteerPosition{
			EventID:    ev.ID,
			Name:       p.Name,
			Ord:        i,
			Capacity:   p.Capacity,
			Registered: []primitive.ObjectID{},
			CreatedAt:  now,
		}
		if _, err := f.db.Collection("event_positions").InsertOne(ctx, pos); err != nil {
			f.t.Fatalf("failed to create test position: %v", err)
		}
	}
	return ev
}

// CreateCollabRequest creates a pending collaboration request.
func (f *Fixtures) CreateCollabRequest(ctx context.Context, issueID, fromOrg, toOrg primitive.ObjectID) models.CollaborationRequest {
	f.t.Helper()

	req := models.CollaborationRequest{
		ID:          primitive.NewObjectID(),
		IssueID:     issueID,
		RequestedBy: fromOrg,
		RequestedTo: toOrg,
		Message:     "test collaboration request",
		Status:      models.CollabStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := f.db.Collection("collab_requests").InsertOne(ctx, req)
	if err != nil {
		f.t.Fatalf("failed to create test collab request: %v", err)
	}
	return req
}

// CreateNotification creates an unread notification for recipientID.
func (f *Fixtures) CreateNotification(ctx context.Context, recipientID primitive.ObjectID, kind, message string) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:          primitive.NewObjectID(),
		RecipientID: recipientID,
		Kind:        kind,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := f.db.Collection("notifications").InsertOne(ctx, n)
	if err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}

// CreateDonation creates a donation record for orgID.
func (f *Fixtures) CreateDonation(ctx context.Context, orgID, donorID primitive.ObjectID, amountCents int64) models.Donation {
	f.t.Helper()

	d := models.Donation{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		DonorID:        donorID,
		AmountCents:    amountCents,
		Currency:       "USD",
		Reference:      uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
	}

	_, err := f.db.Collection("donations").InsertOne(ctx, d)
	if err != nil {
		f.t.Fatalf("failed to create test donation: %v", err)
	}
	return d
}
