// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

Two of these indexes carry invariants rather than just performance:
  - event_positions (event_id, name) unique: one document per position,
    the anchor for the conditional admission update.
  - collab_requests (issue_id, requested_to) unique, partial on
    status=pending: at most one pending request per pair.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureOrganizations(ctx, db); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensureIssues(ctx, db); err != nil {
		problems = append(problems, "issues: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureEventPositions(ctx, db); err != nil {
		problems = append(problems, "event_positions: "+err.Error())
	}
	if err := ensureCollabRequests(ctx, db); err != nil {
		problems = append(problems, "collab_requests: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}
	if err := ensureDonations(ctx, db); err != nil {
		problems = append(problems, "donations: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_users_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: options.Index().SetName("idx_users_org"),
		},
	})
	return err
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("organizations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_orgs_name_ci").SetUnique(true),
		},
	})
	return err
}

func ensureIssues(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("issues").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_issues_creator"),
		},
		{
			Keys:    bson.D{{Key: "assigned_ngo", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_issues_assignee"),
		},
	})
	return err
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("events").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "starts_at", Value: -1}},
			Options: options.Index().SetName("idx_events_org"),
		},
	})
	return err
}

func ensureEventPositions(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("event_positions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("uniq_positions_event_name").SetUnique(true),
		},
	})
	return err
}

func ensureCollabRequests(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("collab_requests").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "issue_id", Value: 1}, {Key: "requested_to", Value: 1}},
			Options: options.Index().
				SetName("uniq_collabs_pending").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.CollabStatusPending}),
		},
		{
			Keys:    bson.D{{Key: "requested_by", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_collabs_requester"),
		},
		{
			Keys:    bson.D{{Key: "requested_to", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_collabs_responder"),
		},
	})
	return err
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("notifications").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notifications_recipient"),
		},
	})
	return err
}

func ensureDonations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("donations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_donations_org"),
		},
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetName("uniq_donations_reference").SetUnique(true),
		},
	})
	return err
}
