package coach

import (
	"sync"
	"time"
)

// EventType represents the type of coaching turn event.
type EventType string

const (
	EventTurnStart       EventType = "turn_start"
	EventRetrievalDone   EventType = "retrieval_done"
	EventReplyReady      EventType = "reply_ready"
	EventScoresUpdated   EventType = "scores_updated"
	EventStateUpdated    EventType = "state_updated"
	EventBudgetViolation EventType = "budget_violation"
	EventTurnComplete    EventType = "turn_complete"
	EventTurnError       EventType = "turn_error"
)

// Event represents a turn lifecycle event with associated data.
type Event struct {
	Type      EventType
	Timestamp time.Time
	UserID    string
	Data      map[string]interface{}
}

// EventHandler is a function that handles events.
type EventHandler func(Event)

// EventBus manages event publication and subscription. It gives the
// TUI and the verbose CLI a decoupled view into a running turn.
type EventBus struct {
	mu          sync.RWMutex
	handlers    map[EventType][]EventHandler
	allHandlers []EventHandler
}

// NewEventBus creates a new event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

// Subscribe registers a handler for a specific event type.
func (eb *EventBus) Subscribe(eventType EventType, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
}

// SubscribeAll registers a handler for all event types.
func (eb *EventBus) SubscribeAll(handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.allHandlers = append(eb.allHandlers, handler)
}

// Publish sends an event to all registered handlers.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if handlers, ok := eb.handlers[event.Type]; ok {
		for _, handler := range handlers {
			handler(event)
		}
	}
	for _, handler := range eb.allHandlers {
		handler(event)
	}
}

// PublishWithData publishes an event with associated data.
func (eb *EventBus) PublishWithData(eventType EventType, userID string, data map[string]interface{}) {
	eb.Publish(Event{
		Type:   eventType,
		UserID: userID,
		Data:   data,
	})
}
