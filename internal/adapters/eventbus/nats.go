package eventbus

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"

	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
)

// subjects maps event kinds to their NATS subjects. Only the kinds listed
// here cross the process boundary; anything else is dropped silently.
var subjects = map[string]string{
	events.KindProjectCreated: "todo-tasks.projectCreated",
	events.KindProjectDeleted: "todo-tasks.projectDeleted",
	events.KindTaskCreated:    "todo-tasks.taskCreated",
}

// projectDeletedMessage is the wire shape of a project deletion. It is a
// contract with external consumers of the same subject and must not change
// without coordinating with them.
type projectDeletedMessage struct {
	ProjectID string `json:"projectId"`
	Forced    bool   `json:"forced"`
}

// NATSPublisher forwards domain events to their NATS subjects.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *logger.Logger
}

// NewNATSPublisher creates a publisher on an established connection.
func NewNATSPublisher(conn *nats.Conn, logger *logger.Logger) *NATSPublisher {
	return &NATSPublisher{
		conn:   conn,
		logger: logger,
	}
}

// Publish implements ports.EventPublisher. Publication is fire-and-forget;
// transport errors are logged, not surfaced to the caller.
func (p *NATSPublisher) Publish(_ context.Context, event events.DomainEvent) {
	subject, ok := subjects[event.Kind()]
	if !ok {
		return
	}

	payload, err := json.Marshal(wireShape(event))
	if err != nil {
		p.logger.Error("Failed to encode event", "kind", event.Kind(), "error", err)
		return
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.Error("Failed to publish event", "kind", event.Kind(), "subject", subject, "error", err)
	}
}

func wireShape(event events.DomainEvent) interface{} {
	if deleted, ok := event.(events.ProjectDeleted); ok {
		return projectDeletedMessage{
			ProjectID: deleted.ProjectID.String(),
			Forced:    deleted.Forced,
		}
	}
	return event
}
