package registration_test

import (
	"errors"
	"sync"
	"testing"

	eventstore "github.com/civicworks/civicbridge/internal/app/store/events"
	"github.com/civicworks/civicbridge/internal/app/system/notify"
	"github.com/civicworks/civicbridge/internal/app/workflow/registration"
	"github.com/civicworks/civicbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

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

func TestRegister_NotifiesOwningNGO(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	pub := &capturingPublisher{}
	engine := registration.New(eventstore.New(db), pub, zap.NewNop())

	org := f.CreateOrganization(ctx, "Helping Hands")
	ev := f.CreateEvent(ctx, org.ID, "Food Drive", testutil.PositionDef{Name: "packer", Capacity: 3})
	vol := f.CreateVolunteer(ctx, "Vera Volunteer")

	pos, err := engine.Register(ctx, ev.ID, "packer", vol.ID)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if len(pos.Registered) != 1 || pos.Registered[0] != vol.ID {
		t.Errorf("position should hold the volunteer")
	}

	events := pub.list()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].RecipientID != org.ID || events[0].Kind != notify.KindVolunteerRegistered {
		t.Errorf("unexpected event %+v", events[0])
	}
}

func TestRegister_FailuresDoNotPublish(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	pub := &capturingPublisher{}
	engine := registration.New(eventstore.New(db), pub, zap.NewNop())

	org := f.CreateOrganization(ctx, "Helping Hands")
	ev := f.CreateEvent(ctx, org.ID, "Food Drive", testutil.PositionDef{Name: "packer", Capacity: 1})
	vol := f.CreateVolunteer(ctx, "Vera Volunteer")

	if _, err := engine.Register(ctx, ev.ID, "packer", vol.ID); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := engine.Register(ctx, ev.ID, "packer", vol.ID); !errors.Is(err, eventstore.ErrAlreadyRegistered) {
		t.Errorf("duplicate: got %v, want ErrAlreadyRegistered", err)
	}
	if _, err := engine.Register(ctx, ev.ID, "packer", primitive.NewObjectID()); !errors.Is(err, eventstore.ErrCapacityExceeded) {
		t.Errorf("full position: got %v, want ErrCapacityExceeded", err)
	}
	if _, err := engine.Register(ctx, primitive.NewObjectID(), "packer", vol.ID); !errors.Is(err, eventstore.ErrNotFound) {
		t.Errorf("unknown event: got %v, want ErrNotFound", err)
	}

	if got := len(pub.list()); got != 1 {
		t.Errorf("got %d events, want only the successful registration", got)
	}
}

func TestWithdraw_NoNotification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	pub := &capturingPublisher{}
	engine := registration.New(eventstore.New(db), pub, zap.NewNop())

	org := f.CreateOrganization(ctx, "Helping Hands")
	ev := f.CreateEvent(ctx, org.ID, "Food Drive", testutil.PositionDef{Name: "packer", Capacity: 1})
	vol := f.CreateVolunteer(ctx, "Vera Volunteer")

	if _, err := engine.Register(ctx, ev.ID, "packer", vol.ID); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	pos, err := engine.Withdraw(ctx, ev.ID, "packer", vol.ID)
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if len(pos.Registered) != 0 {
		t.Errorf("position should be empty after withdrawal")
	}

	if got := len(pub.list()); got != 1 {
		t.Errorf("withdrawal must not publish, got %d events", got)
	}
}

func TestDeleteEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	pub := &capturingPublisher{}
	store := eventstore.New(db)
	engine := registration.New(store, pub, zap.NewNop())

	org := f.CreateOrganization(ctx, "Helping Hands")
	other := f.CreateOrganization(ctx, "Other NGO")
	ev := f.CreateEvent(ctx, org.ID, "Food Drive", testutil.PositionDef{Name: "packer", Capacity: 1})

	if err := engine.DeleteEvent(ctx, ev.ID, other.ID); !errors.Is(err, eventstore.ErrForbidden) {
		t.Errorf("foreign delete: got %v, want ErrForbidden", err)
	}
	if err := engine.DeleteEvent(ctx, ev.ID, org.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, err := store.GetByID(ctx, ev.ID); !errors.Is(err, eventstore.ErrNotFound) {
		t.Errorf("event should be gone, got %v", err)
	}
}
