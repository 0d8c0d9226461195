package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bettercode/todo-tasks/internal/adapters/eventbus"
	"github.com/bettercode/todo-tasks/internal/adapters/repository"
	"github.com/bettercode/todo-tasks/internal/application/services"
	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
)

func TestAddProject(t *testing.T) {
	f := newFixture()

	project := f.addProject(t, "work")
	assert.Equal(t, "work", project.Name)

	published := f.recorder.RecordedOf(events.KindProjectCreated)
	require.Len(t, published, 1)
	assert.Equal(t, project.ID, published[0].(events.ProjectCreated).ProjectID)
}

func TestGetInboxCreatesOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.projectsFacade.GetInbox(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, entities.InboxName, first.Name)

	second, err := f.projectsFacade.GetInbox(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Exactly one creation event for the lazily created inbox.
	assert.Len(t, f.recorder.RecordedOf(events.KindProjectCreated), 1)
}

// racingProjectRepository simulates losing the inbox creation race: the
// first lookup misses and the create collides with the concurrent winner.
type racingProjectRepository struct {
	*repository.InMemoryProjectRepository
	missed bool
}

func (r *racingProjectRepository) GetInboxProject(ctx context.Context) (*entities.Project, error) {
	if !r.missed {
		r.missed = true
		return nil, entities.ErrProjectNotFound
	}
	return r.InMemoryProjectRepository.GetInboxProject(ctx)
}

func (r *racingProjectRepository) CreateInbox(context.Context) (*entities.Project, error) {
	return nil, entities.ErrConflict
}

func TestGetInboxRetriesOnCreateConflict(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	inner := repository.NewInMemoryProjectRepository()
	existing, err := inner.CreateInbox(ctx)
	require.NoError(t, err)

	repo := &racingProjectRepository{InMemoryProjectRepository: inner}
	service := services.NewProjectService(repo, eventbus.NewMemoryPublisher(), log)

	inbox, err := service.GetInboxProject(ctx)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, inbox.ID)
}

func TestCompleteAndReopenProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	project := f.addProject(t, "work")

	result, err := f.projectsFacade.CompleteProject(ctx, project.ID)
	require.NoError(t, err)
	require.True(t, result.Successful)
	assert.Len(t, f.recorder.RecordedOf(events.KindProjectCompleted), 1)

	result, err = f.projectsFacade.CompleteProject(ctx, project.ID)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonProjectAlreadyCompleted, result.Reason)

	result, err = f.projectsFacade.ReopenProject(ctx, project.ID)
	require.NoError(t, err)
	require.True(t, result.Successful)
	assert.Len(t, f.recorder.RecordedOf(events.KindProjectReopened), 1)

	result, err = f.projectsFacade.ReopenProject(ctx, project.ID)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonProjectNotCompleted, result.Reason)
}

func TestCompleteMissingProject(t *testing.T) {
	f := newFixture()

	result, err := f.projectsFacade.CompleteProject(context.Background(), entities.NewProjectID())
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonNoProjectWithGivenID, result.Reason)
}
