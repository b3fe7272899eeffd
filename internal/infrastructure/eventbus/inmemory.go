package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/secretnick/secretnick/internal/domain/event"
)

// InMemoryEventBus implements event.Bus with synchronous in-process dispatch.
// It is used in development and tests where Redis is not available.
type InMemoryEventBus struct {
	handlers   map[string][]EventHandler
	handlersMu sync.RWMutex
	logger     *slog.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus.
func NewInMemoryEventBus(logger *slog.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventBus{
		handlers: make(map[string][]EventHandler),
		logger:   logger,
	}
}

// Publish dispatches the event to all registered handlers synchronously.
// Handler failures are logged; publishing itself never fails on them.
func (b *InMemoryEventBus) Publish(ctx context.Context, evt event.DomainEvent) error {
	if evt == nil {
		return errors.New("event cannot be nil")
	}

	b.handlersMu.RLock()
	handlers := b.handlers[evt.EventType()]
	b.handlersMu.RUnlock()

	for i, handler := range handlers {
		if err := handler(ctx, evt); err != nil {
			b.logger.WarnContext(ctx, "event handler failed",
				slog.String("event_type", evt.EventType()),
				slog.String("aggregate_id", evt.AggregateID()),
				slog.Int("handler_index", i),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// Subscribe registers an event handler for a specific event type.
func (b *InMemoryEventBus) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" {
		return errors.New("event type cannot be empty")
	}
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	return nil
}

// HandlerCount returns the number of handlers registered for an event type.
func (b *InMemoryEventBus) HandlerCount(eventType string) int {
	b.handlersMu.RLock()
	defer b.handlersMu.RUnlock()
	return len(b.handlers[eventType])
}

var _ event.Bus = (*InMemoryEventBus)(nil)
