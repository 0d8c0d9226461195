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

// ProjectAssignmentService moves a task into a target project, validating
// the state of both aggregates before the reassignment.
type ProjectAssignmentService struct {
	tasks     ports.TaskRepository
	projects  ports.ProjectRepository
	publisher ports.EventPublisher
	logger    *logger.Logger
}

// NewProjectAssignmentService creates a new project assignment service.
func NewProjectAssignmentService(tasks ports.TaskRepository, projects ports.ProjectRepository, publisher ports.EventPublisher, logger *logger.Logger) *ProjectAssignmentService {
	return &ProjectAssignmentService{
		tasks:     tasks,
		projects:  projects,
		publisher: publisher,
		logger:    logger,
	}
}

// Assign reassigns the task's project reference. On success the task is
// persisted and TaskAssignedToProject is published together with an audit
// message; on any rule violation the failed result is returned unmodified.
func (s *ProjectAssignmentService) Assign(ctx context.Context, taskID entities.TaskID, projectID entities.ProjectID) (entities.DomainResult, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return entities.Failure(entities.ReasonNoTaskWithGivenID), nil
		}
		return entities.DomainResult{}, fmt.Errorf("failed to get task: %w", err)
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return entities.Failure(entities.ReasonNoProjectWithGivenID), nil
		}
		return entities.DomainResult{}, fmt.Errorf("failed to get project: %w", err)
	}

	if result := task.AssignTo(project); result.Failed() {
		return result, nil
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return entities.DomainResult{}, fmt.Errorf("failed to save task: %w", err)
	}

	s.publisher.Publish(ctx, events.TaskAssignedToProject{TaskID: task.ID, ProjectID: project.ID})
	s.publisher.Publish(ctx, events.AuditLogCommand{
		Message: fmt.Sprintf("Task with id=%s has been assigned to project with id=%s", task.ID, project.ID),
	})

	s.logger.Info("Task assigned to project", "task_id", task.ID, "project_id", project.ID)

	return entities.Success(), nil
}
