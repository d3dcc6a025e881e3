package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/civicworks/civicbridge/internal/app/system/notify"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeAppender records appended notifications and can simulate failures
// or slow writes.
type fakeAppender struct {
	mu       sync.Mutex
	appended []models.Notification
	fail     bool
	delay    time.Duration
}

func (f *fakeAppender) Append(ctx context.Context, n models.Notification) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("append failed")
	}
	f.appended = append(f.appended, n)
	return nil
}

func (f *fakeAppender) list() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, len(f.appended))
	copy(out, f.appended)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestPublish_DeliversToStore(t *testing.T) {
	store := &fakeAppender{}
	bus := notify.NewBus(store, zap.NewNop(), 8)
	bus.Start()
	defer bus.Close()

	recipient := primitive.NewObjectID()
	bus.Publish(notify.Event{
		RecipientID: recipient,
		Kind:        notify.KindVolunteerRegistered,
		Message:     "a volunteer registered",
	})

	waitFor(t, func() bool { return len(store.list()) == 1 })

	got := store.list()[0]
	if got.RecipientID != recipient {
		t.Errorf("recipient: got %v, want %v", got.RecipientID, recipient)
	}
	if got.Kind != notify.KindVolunteerRegistered {
		t.Errorf("kind: got %q", got.Kind)
	}
}

func TestPublish_AppendFailureDoesNotStopDispatch(t *testing.T) {
	store := &fakeAppender{fail: true}
	bus := notify.NewBus(store, zap.NewNop(), 8)
	bus.Start()
	defer bus.Close()

	bus.Publish(notify.Event{RecipientID: primitive.NewObjectID(), Kind: notify.KindCollabRequested})

	// Subsequent events still flow once the store recovers
	time.Sleep(20 * time.Millisecond)
	store.mu.Lock()
	store.fail = false
	store.mu.Unlock()

	bus.Publish(notify.Event{RecipientID: primitive.NewObjectID(), Kind: notify.KindCollabAccepted})
	waitFor(t, func() bool {
		for _, n := range store.list() {
			if n.Kind == notify.KindCollabAccepted {
				return true
			}
		}
		return false
	})
}

func TestPublish_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	// The dispatcher is held up by a slow store, so the buffer fills.
	store := &fakeAppender{delay: 50 * time.Millisecond}
	bus := notify.NewBus(store, zap.NewNop(), 1)
	bus.Start()
	defer bus.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			bus.Publish(notify.Event{RecipientID: primitive.NewObjectID(), Kind: notify.KindCollabRequested})
		}
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("Publish blocked on a full buffer")
	}
}

func TestClose_DrainsQueuedEvents(t *testing.T) {
	store := &fakeAppender{delay: 10 * time.Millisecond}
	bus := notify.NewBus(store, zap.NewNop(), 8)
	bus.Start()

	for i := 0; i < 5; i++ {
		bus.Publish(notify.Event{RecipientID: primitive.NewObjectID(), Kind: notify.KindCollabRejected})
	}
	bus.Close()

	if got := len(store.list()); got != 5 {
		t.Errorf("delivered after close: got %d, want 5", got)
	}
}

func TestPublish_AfterCloseIsDropped(t *testing.T) {
	store := &fakeAppender{}
	bus := notify.NewBus(store, zap.NewNop(), 8)
	bus.Start()
	bus.Close()

	// Must not panic or deliver
	bus.Publish(notify.Event{RecipientID: primitive.NewObjectID(), Kind: notify.KindCollabAccepted})
	bus.Close() // double close is safe

	if got := len(store.list()); got != 0 {
		t.Errorf("delivered after close: got %d, want 0", got)
	}
}
