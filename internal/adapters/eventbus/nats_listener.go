package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/bettercode/todo-tasks/internal/application/services"
	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
)

// NATSListener drives the project deletion reaction from deletion events
// published by other processes on the shared subject.
type NATSListener struct {
	conn    *nats.Conn
	handler *services.ProjectDeletedHandler
	logger  *logger.Logger
	sub     *nats.Subscription
}

// NewNATSListener creates a listener on an established connection.
func NewNATSListener(conn *nats.Conn, handler *services.ProjectDeletedHandler, logger *logger.Logger) *NATSListener {
	return &NATSListener{
		conn:    conn,
		handler: handler,
		logger:  logger,
	}
}

// Start subscribes to the project deletion subject.
func (l *NATSListener) Start(ctx context.Context) error {
	sub, err := l.conn.Subscribe(subjects[events.KindProjectDeleted], func(msg *nats.Msg) {
		l.handleMessage(ctx, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to project deletions: %w", err)
	}

	l.sub = sub
	return nil
}

// Stop drains the subscription.
func (l *NATSListener) Stop() error {
	if l.sub == nil {
		return nil
	}
	return l.sub.Drain()
}

func (l *NATSListener) handleMessage(ctx context.Context, data []byte) {
	var msg projectDeletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		l.logger.Error("Failed to decode project deletion message", "error", err)
		return
	}

	projectID, err := entities.ParseProjectID(msg.ProjectID)
	if err != nil {
		l.logger.Error("Invalid project id in deletion message", "project_id", msg.ProjectID, "error", err)
		return
	}

	event := events.ProjectDeleted{ProjectID: projectID, Forced: msg.Forced}
	if err := l.handler.Handle(ctx, event); err != nil {
		l.logger.Error("Project deletion reaction failed", "project_id", projectID, "error", err)
	}
}
