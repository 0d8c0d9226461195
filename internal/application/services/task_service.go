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

// TaskService handles creation and deletion of tasks. New tasks without an
// explicit project default into the inbox.
type TaskService struct {
	tasks          ports.TaskRepository
	projects       ports.ProjectRepository
	projectService *ProjectService
	publisher      ports.EventPublisher
	logger         *logger.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, projectService *ProjectService, publisher ports.EventPublisher, logger *logger.Logger) *TaskService {
	return &TaskService{
		tasks:          tasks,
		projects:       projects,
		projectService: projectService,
		publisher:      publisher,
		logger:         logger,
	}
}

// Add assigns the task to the inbox project and persists it. The inbox is
// created lazily if it does not exist yet. On assignment failure nothing is
// persisted and the failed result is returned as-is.
func (s *TaskService) Add(ctx context.Context, task *entities.Task) (entities.DomainResult, error) {
	inbox, err := s.projectService.GetInboxProject(ctx)
	if err != nil {
		return entities.DomainResult{}, fmt.Errorf("failed to resolve inbox: %w", err)
	}

	if result := task.AssignTo(inbox); result.Failed() {
		return result, nil
	}

	if err := s.tasks.Add(ctx, task); err != nil {
		return entities.DomainResult{}, fmt.Errorf("failed to add task: %w", err)
	}

	s.publisher.Publish(ctx, events.TaskCreated{TaskID: task.ID})
	s.publisher.Publish(ctx, events.AuditLogCommand{
		Message: fmt.Sprintf("Task with id=%s has been created", task.ID),
	})

	s.logger.Info("Task created", "task_id", task.ID, "name", task.Name)

	return entities.Success(), nil
}

// AddTaskForAProject assigns the task to the given project and persists it.
// A missing project or a rejected assignment comes back as a failed result
// carrying the rule that was violated.
func (s *TaskService) AddTaskForAProject(ctx context.Context, task *entities.Task, projectID entities.ProjectID) (*entities.Task, entities.DomainResult, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return nil, entities.Failure(entities.ReasonNoProjectWithGivenID), nil
		}
		return nil, entities.DomainResult{}, fmt.Errorf("failed to get project: %w", err)
	}

	if result := task.AssignTo(project); result.Failed() {
		return nil, result, nil
	}

	if err := s.tasks.Add(ctx, task); err != nil {
		return nil, entities.DomainResult{}, fmt.Errorf("failed to add task: %w", err)
	}

	s.logger.Info("Task created in project", "task_id", task.ID, "project_id", projectID)

	return task, entities.Success(), nil
}

// Delete removes the task unconditionally. No event is published; project
// level deletions publish their own events instead.
func (s *TaskService) Delete(ctx context.Context, id entities.TaskID) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task deleted", "task_id", id)

	return nil
}
