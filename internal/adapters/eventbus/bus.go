// Package eventbus provides the event publisher implementations: an
// in-process bus driving local reactions, a list-backed recorder for tests
// and a NATS-backed publisher/listener pair for the external transport.
package eventbus

import (
	"context"
	"sync"

	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
	"github.com/bettercode/todo-tasks/internal/ports"
)

// Handler consumes one domain event.
type Handler func(ctx context.Context, event events.DomainEvent) error

// Bus dispatches published events synchronously to subscribed handlers and
// forwards them to an optional outbound publisher. Dispatch happens after
// the triggering write has been persisted, so handlers can read their own
// trigger; handler errors are logged, never propagated to the publisher.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	outbound ports.EventPublisher
	logger   *logger.Logger
}

// NewBus creates a bus. The outbound publisher may be nil, in which case
// events stay in-process.
func NewBus(outbound ports.EventPublisher, logger *logger.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		outbound: outbound,
		logger:   logger,
	}
}

// Subscribe registers a handler for the given event kind.
func (b *Bus) Subscribe(kind string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], handler)
}

// Publish implements ports.EventPublisher.
func (b *Bus) Publish(ctx context.Context, event events.DomainEvent) {
	b.mu.RLock()
	handlers := b.handlers[event.Kind()]
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("Event handler failed", "kind", event.Kind(), "error", err)
		}
	}

	if b.outbound != nil {
		b.outbound.Publish(ctx, event)
	}
}
