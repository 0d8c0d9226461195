package eventbus

import (
	"context"
	"sync"

	"github.com/bettercode/todo-tasks/internal/domain/events"
)

// MemoryPublisher records published events in order. It is the test double
// for the publisher port.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

// NewMemoryPublisher creates an empty recorder.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

// Publish implements ports.EventPublisher.
func (p *MemoryPublisher) Publish(_ context.Context, event events.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Recorded returns a copy of all recorded events in publication order.
func (p *MemoryPublisher) Recorded() []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.DomainEvent, len(p.events))
	copy(out, p.events)
	return out
}

// RecordedOf returns the recorded events of the given kind.
func (p *MemoryPublisher) RecordedOf(kind string) []events.DomainEvent {
	var out []events.DomainEvent
	for _, event := range p.Recorded() {
		if event.Kind() == kind {
			out = append(out, event)
		}
	}
	return out
}
