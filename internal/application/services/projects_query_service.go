package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
	"github.com/bettercode/todo-tasks/internal/ports"
)

// projectCacheTTL bounds staleness of cached project lookups; project
// mutations invalidate the key through the event bus anyway.
const projectCacheTTL = 5 * time.Minute

// ProjectCacheKey returns the cache key of a cached project read model.
func ProjectCacheKey(id entities.ProjectID) string {
	return "project:" + id.String()
}

// ProjectsQueryService exposes read-only project projections. When a cache
// is supplied, by-id lookups go through it.
type ProjectsQueryService struct {
	queries ports.ProjectQueryRepository
	cache   ports.CacheRepository
}

// NewProjectsQueryService creates a new projects query service. The cache
// may be nil, in which case every lookup hits the repository.
func NewProjectsQueryService(queries ports.ProjectQueryRepository, cache ports.CacheRepository) *ProjectsQueryService {
	return &ProjectsQueryService{
		queries: queries,
		cache:   cache,
	}
}

// GetAll returns one page of all projects.
func (s *ProjectsQueryService) GetAll(ctx context.Context, req pagination.Request) (pagination.Page[ProjectDTO], error) {
	page, err := s.queries.FindAll(ctx, req)
	if err != nil {
		return pagination.Page[ProjectDTO]{}, fmt.Errorf("failed to list projects: %w", err)
	}
	return mapProjectPage(page), nil
}

// GetAllOpen returns one page of projects that are not completed.
func (s *ProjectsQueryService) GetAllOpen(ctx context.Context, req pagination.Request) (pagination.Page[ProjectDTO], error) {
	page, err := s.queries.FindAllOpen(ctx, req)
	if err != nil {
		return pagination.Page[ProjectDTO]{}, fmt.Errorf("failed to list open projects: %w", err)
	}
	return mapProjectPage(page), nil
}

// FindByID returns the project DTO, or nil when the project does not exist.
func (s *ProjectsQueryService) FindByID(ctx context.Context, id entities.ProjectID) (*ProjectDTO, error) {
	if s.cache != nil {
		var cached ProjectDTO
		err := s.cache.Get(ctx, ProjectCacheKey(id), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			// cache trouble must not break reads
			return s.findByID(ctx, id)
		}
	}

	dto, err := s.findByID(ctx, id)
	if err != nil || dto == nil {
		return dto, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, ProjectCacheKey(id), dto, projectCacheTTL)
	}

	return dto, nil
}

func (s *ProjectsQueryService) findByID(ctx context.Context, id entities.ProjectID) (*ProjectDTO, error) {
	project, err := s.queries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return ProjectDTOFrom(project), nil
}

func mapProjectPage(page pagination.Page[entities.Project]) pagination.Page[ProjectDTO] {
	return pagination.Map(page, func(project entities.Project) ProjectDTO {
		return *ProjectDTOFrom(&project)
	})
}
