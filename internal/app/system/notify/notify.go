// internal/app/system/notify/notify.go

// Package notify decouples the registration and collaboration engines
// from notification delivery. Engines publish events onto an
// in-process bus; a dispatcher goroutine appends Notification records.
// Emission failure never rolls back the transition that produced the
// event; it is logged and dropped.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Event kinds.
const (
	KindVolunteerRegistered = "volunteer_registered"
	KindCollabRequested     = "collab_requested"
	KindCollabAccepted      = "collab_accepted"
	KindCollabRejected      = "collab_rejected"
)

// Event is an outbound notification produced by a workflow transition.
type Event struct {
	RecipientID primitive.ObjectID
	Kind        string
	Message     string
}

// Publisher is what the workflow engines see.
type Publisher interface {
	Publish(Event)
}

// Appender persists one notification record. Implemented by the
// notifications store.
type Appender interface {
	Append(ctx context.Context, n models.Notification) error
}

// Bus is a buffered in-process event bus with a single dispatcher
// goroutine. Publish never blocks: when the buffer is full the event
// is dropped and logged, keeping the publishing request path bounded.
type Bus struct {
	ch    chan Event
	store Appender
	log   *zap.Logger

	appendTimeout time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewBus creates a bus with the given buffer size.
func NewBus(store Appender, logger *zap.Logger, buffer int) *Bus {
	if buffer <= 0 {
		buffer = 256
	}
	return &Bus{
		ch:            make(chan Event, buffer),
		store:         store,
		log:           logger,
		appendTimeout: 5 * time.Second,
		done:          make(chan struct{}),
	}
}

// Start launches the dispatcher goroutine. It runs until Close.
func (b *Bus) Start() {
	go func() {
		defer close(b.done)
		for ev := range b.ch {
			b.deliver(ev)
		}
	}()
}

func (b *Bus) deliver(ev Event) {
	// Fresh context per event: shutdown cancellation must not lose
	// events that are already queued.
	ctx, cancel := context.WithTimeout(context.Background(), b.appendTimeout)
	defer cancel()

	err := b.store.Append(ctx, models.Notification{
		RecipientID: ev.RecipientID,
		Kind:        ev.Kind,
		Message:     ev.Message,
	})
	if err != nil {
		b.log.Error("notification emit failed",
			zap.String("recipient_id", ev.RecipientID.Hex()),
			zap.String("kind", ev.Kind),
			zap.Error(err))
	}
}

// Publish enqueues an event. It never blocks and never fails the
// caller; a full buffer drops the event with a log entry.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		b.log.Warn("notification dropped: bus closed", zap.String("kind", ev.Kind))
		return
	}
	defer b.mu.Unlock()

	select {
	case b.ch <- ev:
	default:
		b.log.Warn("notification dropped: bus full",
			zap.String("recipient_id", ev.RecipientID.Hex()),
			zap.String("kind", ev.Kind))
	}
}

// Close stops accepting events and waits for the dispatcher to drain
// what was already queued.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.ch)
	b.mu.Unlock()

	<-b.done
}
