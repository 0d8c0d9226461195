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

// ProjectCompletionService handles the complete/reopen transitions of
// projects. Unlike tasks, project reopening has no day restriction.
type ProjectCompletionService struct {
	projects  ports.ProjectRepository
	publisher ports.EventPublisher
	clock     entities.Clock
	logger    *logger.Logger
}

// NewProjectCompletionService creates a new project completion service.
func NewProjectCompletionService(projects ports.ProjectRepository, publisher ports.EventPublisher, clock entities.Clock, logger *logger.Logger) *ProjectCompletionService {
	return &ProjectCompletionService{
		projects:  projects,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Complete marks the project as done. Completing an already completed
// project is rejected with a failed result.
func (s *ProjectCompletionService) Complete(ctx context.Context, id entities.ProjectID) (entities.DomainResult, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return entities.Failure(entities.ReasonNoProjectWithGivenID), nil
		}
		return entities.DomainResult{}, fmt.Errorf("failed to get project: %w", err)
	}

	if result := project.Complete(s.clock); result.Failed() {
		return result, nil
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return entities.DomainResult{}, fmt.Errorf("failed to save project: %w", err)
	}

	s.publisher.Publish(ctx, events.ProjectCompleted{ProjectID: project.ID})
	s.publisher.Publish(ctx, events.AuditLogCommand{
		Message: fmt.Sprintf("Project with id=%s has been completed", project.ID),
	})

	s.logger.Info("Project completed", "project_id", project.ID)

	return entities.Success(), nil
}

// Reopen clears the project's completion.
func (s *ProjectCompletionService) Reopen(ctx context.Context, id entities.ProjectID) (entities.DomainResult, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return entities.Failure(entities.ReasonNoProjectWithGivenID), nil
		}
		return entities.DomainResult{}, fmt.Errorf("failed to get project: %w", err)
	}

	if result := project.Reopen(); result.Failed() {
		return result, nil
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return entities.DomainResult{}, fmt.Errorf("failed to save project: %w", err)
	}

	s.publisher.Publish(ctx, events.ProjectReopened{ProjectID: project.ID})
	s.publisher.Publish(ctx, events.AuditLogCommand{
		Message: fmt.Sprintf("Project with id=%s has been reopened", project.ID),
	})

	s.logger.Info("Project reopened", "project_id", project.ID)

	return entities.Success(), nil
}
