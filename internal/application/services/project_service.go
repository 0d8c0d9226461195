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

// ProjectService handles creation and deletion of projects, and the lazy
// get-or-create of the inbox project.
type ProjectService struct {
	projects  ports.ProjectRepository
	publisher ports.EventPublisher
	logger    *logger.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(projects ports.ProjectRepository, publisher ports.EventPublisher, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		projects:  projects,
		publisher: publisher,
		logger:    logger,
	}
}

// Add persists the project and publishes ProjectCreated.
func (s *ProjectService) Add(ctx context.Context, project *entities.Project) (*entities.Project, error) {
	if err := s.projects.Add(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to add project: %w", err)
	}

	s.publisher.Publish(ctx, events.ProjectCreated{ProjectID: project.ID})

	s.logger.Info("Project created", "project_id", project.ID, "name", project.Name)

	return project, nil
}

// Delete removes the project and publishes ProjectDeleted carrying the
// forced flag. Cascading to the project's tasks is the deletion reaction's
// responsibility, triggered by the published event.
func (s *ProjectService) Delete(ctx context.Context, id entities.ProjectID, forced bool) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.publisher.Publish(ctx, events.ProjectDeleted{ProjectID: id, Forced: forced})

	s.logger.Info("Project deleted", "project_id", id, "forced", forced)

	return nil
}

// GetInboxProject returns the inbox project, creating it on first access.
// A concurrent first access can race on the create; the repository's
// uniqueness constraint turns the loser into ErrConflict, which is resolved
// by retrying the lookup.
func (s *ProjectService) GetInboxProject(ctx context.Context) (*entities.Project, error) {
	inbox, err := s.projects.GetInboxProject(ctx)
	if err == nil {
		return inbox, nil
	}
	if !errors.Is(err, entities.ErrProjectNotFound) {
		return nil, fmt.Errorf("failed to get inbox: %w", err)
	}

	inbox, err = s.projects.CreateInbox(ctx)
	if err != nil {
		if errors.Is(err, entities.ErrConflict) {
			inbox, err = s.projects.GetInboxProject(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get inbox after create conflict: %w", err)
			}
			return inbox, nil
		}
		return nil, fmt.Errorf("failed to create inbox: %w", err)
	}

	s.publisher.Publish(ctx, events.ProjectCreated{ProjectID: inbox.ID})

	s.logger.Info("Inbox created", "project_id", inbox.ID)

	return inbox, nil
}
