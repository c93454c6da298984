package event

import (
	"sync"

	"github.com/bethropolis/qat-editor/internal/logger"
)

// Handler is an event subscriber. It returns true when it consumed the
// event, which stops delivery to later handlers.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching. Dispatch is
// synchronous: every handler has returned when Dispatch returns.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler for eventType. Handlers run in subscription order.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "handler subscribed to %s", eventType)
}

// HandlerCount returns the number of handlers subscribed to eventType.
func (m *Manager) HandlerCount(eventType Type) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[eventType])
}

// Dispatch sends an event to the handlers registered for its type, in
// subscription order, and reports whether one of them consumed it.
func (m *Manager) Dispatch(eventType Type, data interface{}) bool {
	event := Event{
		Type: eventType,
		Data: data,
	}

	// copy so a handler may subscribe during dispatch without deadlocking
	m.mu.RLock()
	handlers := make([]Handler, len(m.handlers[eventType]))
	copy(handlers, m.handlers[eventType])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return false
	}

	logger.DebugTagf("event", "dispatching %s to %d handler(s)", eventType, len(handlers))
	for _, handler := range handlers {
		if handler(event) {
			return true
		}
	}
	return false
}
