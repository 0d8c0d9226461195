package services

import (
	"context"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
	"github.com/bettercode/todo-tasks/internal/ports"
)

// ProjectCacheInvalidator drops cached project read models when a project
// mutation event is published.
type ProjectCacheInvalidator struct {
	cache  ports.CacheRepository
	logger *logger.Logger
}

// NewProjectCacheInvalidator creates a new cache invalidator.
func NewProjectCacheInvalidator(cache ports.CacheRepository, logger *logger.Logger) *ProjectCacheInvalidator {
	return &ProjectCacheInvalidator{
		cache:  cache,
		logger: logger,
	}
}

// Handle invalidates the cache entry of the project the event refers to.
// Events without a project reference are ignored.
func (i *ProjectCacheInvalidator) Handle(ctx context.Context, event events.DomainEvent) error {
	var id entities.ProjectID
	switch e := event.(type) {
	case events.ProjectCompleted:
		id = e.ProjectID
	case events.ProjectReopened:
		id = e.ProjectID
	case events.ProjectDeleted:
		id = e.ProjectID
	default:
		return nil
	}

	if err := i.cache.Delete(ctx, ProjectCacheKey(id)); err != nil {
		// stale entries age out via TTL, so a failed invalidation is
		// logged rather than escalated
		i.logger.Warn("Failed to invalidate project cache entry", "project_id", id, "error", err)
	}
	return nil
}
