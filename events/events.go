package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"tracker/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeRoundRecorded EventType = "round_recorded"
	EventTypeGameEnded     EventType = "game_ended"
	EventTypeSessionReset  EventType = "session_reset"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// RoundRecordedEvent is emitted for every settled or observed round
type RoundRecordedEvent struct {
	SessionID string
	Entry     models.LogEntry
}

func (e RoundRecordedEvent) Type() EventType {
	return EventTypeRoundRecorded
}

// GameEndedEvent is emitted when a game hits take-profit or stop-loss
type GameEndedEvent struct {
	SessionID string
	End       models.GameEnd
}

func (e GameEndedEvent) Type() EventType {
	return EventTypeGameEnded
}

// ResetKind tells a new evening apart from a full reset
type ResetKind string

const (
	ResetKindNewEvening ResetKind = "new_evening"
	ResetKindFull       ResetKind = "reset"
)

// SessionResetEvent is emitted when the live session is replaced
type SessionResetEvent struct {
	PreviousSessionID string
	SessionID         string
	Kind              ResetKind
}

func (e SessionResetEvent) Type() EventType {
	return EventTypeSessionReset
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make([]Handler, 0)
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type on main event bus")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers on main event bus")

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": handlerIndex,
			}).Debug("Calling event handler")
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// A transactional event bus for holding pending events coupled to the Unit of Work.
// Flushes to the underlying event bus.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// called after successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events from transactional bus to main event bus")

	// handlers outlive the request that committed the transaction
	eventCtx := context.Background()

	for _, ev := range b.pending {
		log.WithFields(log.Fields{
			"eventType": ev.Type(),
		}).Debug("Emitting event to main event bus")
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	log.Debug("All pending events flushed, transactional bus cleared")
	return nil
}

// called after db rollback or to clear state.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
