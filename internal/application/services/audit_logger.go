package services

import (
	"context"

	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
)

// AuditLogger writes audit messages emitted by the services to the
// application log. Subscribed to AuditLogCommand events on the bus.
type AuditLogger struct {
	logger *logger.Logger
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(logger *logger.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

// Handle logs the audit message carried by the event.
func (a *AuditLogger) Handle(_ context.Context, event events.DomainEvent) error {
	command, ok := event.(events.AuditLogCommand)
	if !ok {
		return nil
	}
	a.logger.Info("Audit", "message", command.Message)
	return nil
}
