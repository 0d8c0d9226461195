package services

import (
	"context"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
)

// ProjectsFacade is the project-side entry point consumed by the boundary
// layer.
type ProjectsFacade struct {
	projectService    *ProjectService
	projectsQuery     *ProjectsQueryService
	completionService *ProjectCompletionService
}

// NewProjectsFacade creates a new projects facade.
func NewProjectsFacade(projectService *ProjectService, projectsQuery *ProjectsQueryService, completionService *ProjectCompletionService) *ProjectsFacade {
	return &ProjectsFacade{
		projectService:    projectService,
		projectsQuery:     projectsQuery,
		completionService: completionService,
	}
}

// AddProject creates a project with the given name.
func (f *ProjectsFacade) AddProject(ctx context.Context, name string) (*ProjectDTO, error) {
	project, err := f.projectService.Add(ctx, entities.NewProject(name))
	if err != nil {
		return nil, err
	}
	return ProjectDTOFrom(project), nil
}

// DeleteProject removes the project; forced deletion cascades to its tasks,
// otherwise they are moved to the inbox by the deletion reaction.
func (f *ProjectsFacade) DeleteProject(ctx context.Context, id entities.ProjectID, forced bool) error {
	return f.projectService.Delete(ctx, id, forced)
}

// CompleteProject marks the project as done.
func (f *ProjectsFacade) CompleteProject(ctx context.Context, id entities.ProjectID) (entities.DomainResult, error) {
	return f.completionService.Complete(ctx, id)
}

// ReopenProject clears the project's completion.
func (f *ProjectsFacade) ReopenProject(ctx context.Context, id entities.ProjectID) (entities.DomainResult, error) {
	return f.completionService.Reopen(ctx, id)
}

// GetProject returns the project, or nil when it does not exist.
func (f *ProjectsFacade) GetProject(ctx context.Context, id entities.ProjectID) (*ProjectDTO, error) {
	return f.projectsQuery.FindByID(ctx, id)
}

// GetProjects returns one page of all projects.
func (f *ProjectsFacade) GetProjects(ctx context.Context, req pagination.Request) (pagination.Page[ProjectDTO], error) {
	return f.projectsQuery.GetAll(ctx, req)
}

// GetInbox returns the inbox project, creating it on first access.
func (f *ProjectsFacade) GetInbox(ctx context.Context) (*ProjectDTO, error) {
	inbox, err := f.projectService.GetInboxProject(ctx)
	if err != nil {
		return nil, err
	}
	return ProjectDTOFrom(inbox), nil
}
