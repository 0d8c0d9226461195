package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bettercode/todo-tasks/internal/adapters/repository"
	"github.com/bettercode/todo-tasks/internal/application/services"
	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
	"github.com/bettercode/todo-tasks/internal/ports"
)

// mapCache is an in-process stand-in for the Redis cache.
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
	return nil
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	payload, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return ports.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *mapCache) contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func TestProjectLookupIsCached(t *testing.T) {
	ctx := context.Background()

	projects := repository.NewInMemoryProjectRepository()
	cache := newMapCache()
	query := services.NewProjectsQueryService(projects, cache)

	project := entities.NewProject("work")
	require.NoError(t, projects.Add(ctx, project))

	dto, err := query.FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, dto)
	assert.True(t, cache.contains(services.ProjectCacheKey(project.ID)))

	// Served from the cache even after the row is gone.
	require.NoError(t, projects.Delete(ctx, project.ID))

	cached, err := query.FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, project.ID, cached.ID)
}

func TestMissingProjectIsNotCached(t *testing.T) {
	ctx := context.Background()

	projects := repository.NewInMemoryProjectRepository()
	cache := newMapCache()
	query := services.NewProjectsQueryService(projects, cache)

	id := entities.NewProjectID()
	dto, err := query.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, dto)
	assert.False(t, cache.contains(services.ProjectCacheKey(id)))
}

func TestCacheInvalidatorDropsEntry(t *testing.T) {
	ctx := context.Background()

	projects := repository.NewInMemoryProjectRepository()
	cache := newMapCache()
	query := services.NewProjectsQueryService(projects, cache)
	invalidator := services.NewProjectCacheInvalidator(cache, logger.NewNop())

	project := entities.NewProject("work")
	require.NoError(t, projects.Add(ctx, project))

	_, err := query.FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.True(t, cache.contains(services.ProjectCacheKey(project.ID)))

	require.NoError(t, invalidator.Handle(ctx, events.ProjectCompleted{ProjectID: project.ID}))
	assert.False(t, cache.contains(services.ProjectCacheKey(project.ID)))

	// Unrelated events leave the cache alone.
	_, err = query.FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.NoError(t, invalidator.Handle(ctx, events.TaskCreated{TaskID: entities.NewTaskID()}))
	assert.True(t, cache.contains(services.ProjectCacheKey(project.ID)))
}
