package indexes_test

import (
	"testing"

	"github.com/civicworks/civicbridge/internal/app/system/indexes"
	"github.com/civicworks/civicbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// First call
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	err = indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func listIndexNames(t *testing.T, db *mongo.Database, collection string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes on %s failed: %v", collection, err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_CreatesExpectedIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	want := map[string][]string{
		"users":           {"uniq_users_email", "idx_users_org"},
		"organizations":   {"uniq_orgs_name_ci"},
		"issues":          {"idx_issues_creator", "idx_issues_assignee"},
		"events":          {"idx_events_org"},
		"event_positions": {"uniq_positions_event_name"},
		"collab_requests": {"uniq_collabs_pending", "idx_collabs_requester", "idx_collabs_responder"},
		"notifications":   {"idx_notifications_recipient"},
		"donations":       {"idx_donations_org", "uniq_donations_reference"},
	}

	for collection, names := range want {
		got := listIndexNames(t, db, collection)
		for _, name := range names {
			if !got[name] {
				t.Errorf("expected index %q to exist on %s collection", name, collection)
			}
		}
	}
}

func TestEnsureAll_PositionUniquenessEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	eventID := primitive.NewObjectID()
	_, err := db.Collection("event_positions").InsertOne(ctx, bson.M{
		"event_id": eventID, "name": "greeter", "capacity": 5,
	})
	if err != nil {
		t.Fatalf("Insert position failed: %v", err)
	}

	// Same (event, name) pair must be rejected
	_, err = db.Collection("event_positions").InsertOne(ctx, bson.M{
		"event_id": eventID, "name": "greeter", "capacity": 3,
	})
	if err == nil {
		t.Error("expected duplicate key error for unique index on event_positions (event_id, name)")
	}
}

func TestEnsureAll_PendingUniquenessIsPartial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	issueID := primitive.NewObjectID()
	toOrg := primitive.NewObjectID()

	_, err := db.Collection("collab_requests").InsertOne(ctx, bson.M{
		"issue_id": issueID, "requested_to": toOrg, "status": "pending",
	})
	if err != nil {
		t.Fatalf("Insert pending request failed: %v", err)
	}

	// A second pending request for the same pair violates the index
	_, err = db.Collection("collab_requests").InsertOne(ctx, bson.M{
		"issue_id": issueID, "requested_to": toOrg, "status": "pending",
	})
	if err == nil {
		t.Error("expected duplicate key error for second pending request on same (issue, org)")
	}

	// Resolved requests do not count against the partial index
	_, err = db.Collection("collab_requests").InsertOne(ctx, bson.M{
		"issue_id": issueID, "requested_to": toOrg, "status": "rejected",
	})
	if err != nil {
		t.Errorf("resolved request should not violate partial unique index: %v", err)
	}
}
