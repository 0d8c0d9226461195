package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
	"github.com/bettercode/todo-tasks/internal/ports"
)

// TaskCompletionService handles the complete/reopen transitions of tasks.
type TaskCompletionService struct {
	tasks     ports.TaskRepository
	publisher ports.EventPublisher
	logger    *logger.Logger
}

// NewTaskCompletionService creates a new task completion service.
func NewTaskCompletionService(tasks ports.TaskRepository, publisher ports.EventPublisher, logger *logger.Logger) *TaskCompletionService {
	return &TaskCompletionService{
		tasks:     tasks,
		publisher: publisher,
		logger:    logger,
	}
}

// Complete marks the task as done at the clock's current time. On success
// the task is persisted before TaskCompleted is published.
func (s *TaskCompletionService) Complete(ctx context.Context, id entities.TaskID, clock entities.Clock) (entities.DomainResult, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return entities.Failure(entities.ReasonNoTaskWithGivenID), nil
		}
		return entities.DomainResult{}, fmt.Errorf("failed to get task: %w", err)
	}

	if result := task.Complete(clock); result.Failed() {
		return result, nil
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return entities.DomainResult{}, fmt.Errorf("failed to save task: %w", err)
	}

	s.publisher.Publish(ctx, events.TaskCompleted{TaskID: task.ID})
	s.publisher.Publish(ctx, events.AuditLogCommand{
		Message: fmt.Sprintf("Task with id=%s has been completed", task.ID),
	})

	s.logger.Info("Task completed", "task_id", task.ID)

	return entities.Success(), nil
}

// Reopen clears the task's completion. Tasks can only be reopened on the
// calendar day they were completed; on a later day the failed result leaves
// the task untouched and publishes nothing.
func (s *TaskCompletionService) Reopen(ctx context.Context, id entities.TaskID, clock entities.Clock) (entities.DomainResult, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return entities.Failure(entities.ReasonNoTaskWithGivenID), nil
		}
		return entities.DomainResult{}, fmt.Errorf("failed to get task: %w", err)
	}

	if result := task.Reopen(clock); result.Failed() {
		return result, nil
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return entities.DomainResult{}, fmt.Errorf("failed to save task: %w", err)
	}

	s.publisher.Publish(ctx, events.TaskReopened{TaskID: task.ID})
	s.publisher.Publish(ctx, events.AuditLogCommand{
		Message: fmt.Sprintf("Task with id=%s has been reopened", task.ID),
	})

	s.logger.Info("Task reopened", "task_id", task.ID)

	return entities.Success(), nil
}
