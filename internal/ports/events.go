package ports

import (
	"context"

	"github.com/bettercode/todo-tasks/internal/domain/events"
)

// EventPublisher publishes a single domain event. Publication is
// fire-and-forget; the core assumes no ordering or delivery guarantee from
// the transport behind it.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent)
}
