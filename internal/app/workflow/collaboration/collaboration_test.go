package collaboration_test

import (
	"errors"
	"sync"
	"testing"

	collabstore "github.com/civicworks/civicbridge/internal/app/store/collabs"
	issuestore "github.com/civicworks/civicbridge/internal/app/store/issues"
	"github.com/civicworks/civicbridge/internal/app/system/notify"
	"github.com/civicworks/civicbridge/internal/app/workflow/collaboration"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"github.com/civicworks/civicbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// capturingPublisher records published events synchronously so tests
// can assert on fan-out without a running bus.
type capturingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (p *capturingPublisher) Publish(ev notify.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *capturingPublisher) list() []notify.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notify.Event, len(p.events))
	copy(out, p.events)
	return out
}

type testEnv struct {
	f       *testutil.Fixtures
	collabs *collabstore.Store
	issues  *issuestore.Store
	pub     *capturingPublisher
	engine  *collaboration.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	collabs := collabstore.New(db)
	issues := issuestore.New(db)
	pub := &capturingPublisher{}
	return &testEnv{
		f:       f,
		collabs: collabs,
		issues:  issues,
		pub:     pub,
		engine:  collaboration.New(collabs, issues, pub, zap.NewNop()),
	}
}

func TestCreate_NotifiesRequestedNGO(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	citizen := env.f.CreateUser(ctx, "Ada Citizen", models.RoleCitizen, nil)
	iss := env.f.CreateIssue(ctx, "Pothole", citizen.ID)
	fromOrg := primitive.NewObjectID()
	toOrg := primitive.NewObjectID()

	req, err := env.engine.Create(ctx, iss.ID, fromOrg, toOrg, "join us")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if req.Status != models.CollabStatusPending {
		t.Errorf("status: got %q, want pending", req.Status)
	}

	events := env.pub.list()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].RecipientID != toOrg || events[0].Kind != notify.KindCollabRequested {
		t.Errorf("unexpected event %+v", events[0])
	}
}

func TestCreate_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	citizen := env.f.CreateUser(ctx, "Ada Citizen", models.RoleCitizen, nil)
	iss := env.f.CreateIssue(ctx, "Pothole", citizen.ID)
	org := primitive.NewObjectID()

	if _, err := env.engine.Create(ctx, iss.ID, org, org, "hi"); !errors.Is(err, collaboration.ErrSameOrganization) {
		t.Errorf("self-request: got %v, want ErrSameOrganization", err)
	}
	if _, err := env.engine.Create(ctx, primitive.NewObjectID(), org, primitive.NewObjectID(), "hi"); !errors.Is(err, issuestore.ErrNotFound) {
		t.Errorf("unknown issue: got %v, want issuestore.ErrNotFound", err)
	}
	if len(env.pub.list()) != 0 {
		t.Errorf("failed creates must not publish events")
	}
}

func TestRespond_AcceptAssignsIssue(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	citizen := env.f.CreateUser(ctx, "Ada Citizen", models.RoleCitizen, nil)
	iss := env.f.CreateIssue(ctx, "Pothole", citizen.ID)
	fromOrg := primitive.NewObjectID()
	toOrg := primitive.NewObjectID()
	req := env.f.CreateCollabRequest(ctx, iss.ID, fromOrg, toOrg)

	got, err := env.engine.Respond(ctx, req.ID, toOrg, collaboration.Accept)
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if got.Status != models.CollabStatusAccepted {
		t.Errorf("status: got %q, want accepted", got.Status)
	}
	if !got.Applied {
		t.Errorf("acceptance should be applied")
	}

	assigned, err := env.issues.GetByID(ctx, iss.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if assigned.Status != models.IssueStatusAssigned {
		t.Errorf("issue status: got %q, want assigned", assigned.Status)
	}
	if assigned.AssignedNGO == nil || *assigned.AssignedNGO != fromOrg {
		t.Errorf("issue should be assigned to the requester")
	}

	events := env.pub.list()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].RecipientID != fromOrg || events[0].Kind != notify.KindCollabAccepted {
		t.Errorf("unexpected event %+v", events[0])
	}
}

func TestRespond_AcceptLosesAssignmentRace(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	citizen := env.f.CreateUser(ctx, "Ada Citizen", models.RoleCitizen, nil)
	iss := env.f.CreateIssue(ctx, "Pothole", citizen.ID)
	fromOrg := primitive.NewObjectID()
	toOrg := primitive.NewObjectID()
	thirdOrg := primitive.NewObjectID()
	req := env.f.CreateCollabRequest(ctx, iss.ID, fromOrg, toOrg)

	// A third NGO claims the issue before the acceptance lands
	if _, err := env.engine.ClaimIssue(ctx, iss.ID, thirdOrg); err != nil {
		t.Fatalf("ClaimIssue failed: %v", err)
	}

	got, err := env.engine.Respond(ctx, req.ID, toOrg, collaboration.Accept)
	if !errors.Is(err, collaboration.ErrIssueAlreadyAssigned) {
		t.Fatalf("got %v, want ErrIssueAlreadyAssigned", err)
	}
	if got.Status != models.CollabStatusAccepted {
		t.Errorf("request should still resolve to accepted, got %q", got.Status)
	}
	if got.Applied {
		t.Errorf("lost race must not be flagged applied")
	}

	// The earlier assignee keeps the issue
	assigned, err := env.issues.GetByID(ctx, iss.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if assigned.AssignedNGO == nil || *assigned.AssignedNGO != thirdOrg {
		t.Errorf("issue should stay with the first assignee")
	}

	// The requester is still told about the acceptance
	events := env.pub.list()
	if len(events) != 1 || events[0].Kind != notify.KindCollabAccepted {
		t.Fatalf("expected one acceptance event, got %+v", events)
	}
}

func TestRespond_Reject(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	citizen := env.f.CreateUser(ctx, "Ada Citizen", models.RoleCitizen, nil)
	iss := env.f.CreateIssue(ctx, "Pothole", citizen.ID)
	fromOrg := primitive.NewObjectID()
	toOrg := primitive.NewObjectID()
	req := env.f.CreateCollabRequest(ctx, iss.ID, fromOrg, toOrg)

	got, err := env.engine.Respond(ctx, req.ID, toOrg, collaboration.Reject)
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if got.Status != models.CollabStatusRejected {
		t.Errorf("status: got %q, want rejected", got.Status)
	}

	// Rejection never touches the issue
	open, err := env.issues.GetByID(ctx, iss.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if open.Status != models.IssueStatusOpen || open.AssignedNGO != nil {
		t.Errorf("rejected request must leave the issue open")
	}

	events := env.pub.list()
	if len(events) != 1 || events[0].Kind != notify.KindCollabRejected || events[0].RecipientID != fromOrg {
		t.Fatalf("expected one rejection event to the requester, got %+v", events)
	}

	// Terminal states refuse further responses
	if _, err := env.engine.Respond(ctx, req.ID, toOrg, collaboration.Accept); !errors.Is(err, collabstore.ErrAlreadyResolved) {
		t.Errorf("second response: got %v, want ErrAlreadyResolved", err)
	}
}

func TestRespond_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	citizen := env.f.CreateUser(ctx, "Ada Citizen", models.RoleCitizen, nil)
	iss := env.f.CreateIssue(ctx, "Pothole", citizen.ID)
	fromOrg := primitive.NewObjectID()
	toOrg := primitive.NewObjectID()
	req := env.f.CreateCollabRequest(ctx, iss.ID, fromOrg, toOrg)

	if _, err := env.engine.Respond(ctx, req.ID, toOrg, "withdraw"); !errors.Is(err, collaboration.ErrBadDecision) {
		t.Errorf("bad decision: got %v, want ErrBadDecision", err)
	}
	if _, err := env.engine.Respond(ctx, req.ID, fromOrg, collaboration.Accept); !errors.Is(err, collabstore.ErrNotResponder) {
		t.Errorf("wrong responder: got %v, want ErrNotResponder", err)
	}
	if len(env.pub.list()) != 0 {
		t.Errorf("failed responses must not publish events")
	}
}

func TestClaimAndResolveIssue(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	citizen := env.f.CreateUser(ctx, "Ada Citizen", models.RoleCitizen, nil)
	iss := env.f.CreateIssue(ctx, "Pothole", citizen.ID)
	org := primitive.NewObjectID()

	claimed, err := env.engine.ClaimIssue(ctx, iss.ID, org)
	if err != nil {
		t.Fatalf("ClaimIssue failed: %v", err)
	}
	if claimed.Status != models.IssueStatusAssigned {
		t.Errorf("status: got %q, want assigned", claimed.Status)
	}

	if _, err := env.engine.ClaimIssue(ctx, iss.ID, primitive.NewObjectID()); !errors.Is(err, issuestore.ErrAlreadyAssigned) {
		t.Errorf("second claim: got %v, want ErrAlreadyAssigned", err)
	}

	resolved, err := env.engine.ResolveIssue(ctx, iss.ID, org)
	if err != nil {
		t.Fatalf("ResolveIssue failed: %v", err)
	}
	if resolved.Status != models.IssueStatusResolved {
		t.Errorf("status: got %q, want resolved", resolved.Status)
	}
}
