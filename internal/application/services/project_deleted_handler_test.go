package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bettercode/todo-tasks/internal/application/services"
	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
)

func TestDeleteProjectMovesTasksToInbox(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	project := f.addProject(t, "errands")
	dto := services.TaskDTO{ID: entities.NewTaskID(), Name: "buy milk"}
	created, result, err := f.tasksFacade.AddToProject(ctx, dto, project.ID)
	require.NoError(t, err)
	require.True(t, result.Successful)
	require.NotNil(t, created)

	require.NoError(t, f.projectsFacade.DeleteProject(ctx, project.ID, false))

	gone, err := f.projectsFacade.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	inbox, err := f.projectsFacade.GetInbox(ctx)
	require.NoError(t, err)

	moved, err := f.tasksFacade.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, moved)
	require.NotNil(t, moved.ProjectID)
	assert.Equal(t, inbox.ID, *moved.ProjectID)
}

func TestDeleteProjectForcedDeletesTasks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	project := f.addProject(t, "errands")
	dto := services.TaskDTO{ID: entities.NewTaskID(), Name: "buy milk"}
	created, result, err := f.tasksFacade.AddToProject(ctx, dto, project.ID)
	require.NoError(t, err)
	require.True(t, result.Successful)
	require.NotNil(t, created)

	require.NoError(t, f.projectsFacade.DeleteProject(ctx, project.ID, true))

	gone, err := f.tasksFacade.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	published := f.recorder.RecordedOf(events.KindProjectDeleted)
	require.Len(t, published, 1)
	deleted := published[0].(events.ProjectDeleted)
	assert.Equal(t, project.ID, deleted.ProjectID)
	assert.True(t, deleted.Forced)
}

func TestDeleteProjectPagesThroughAllTasks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	project := f.addProject(t, "bulk")
	for i := 0; i < 120; i++ {
		dto := services.TaskDTO{ID: entities.NewTaskID(), Name: fmt.Sprintf("task %03d", i)}
		created, result, err := f.tasksFacade.AddToProject(ctx, dto, project.ID)
		require.NoError(t, err)
		require.True(t, result.Successful)
		require.NotNil(t, created)
	}

	require.NoError(t, f.projectsFacade.DeleteProject(ctx, project.ID, false))

	inbox, err := f.projectsFacade.GetInbox(ctx)
	require.NoError(t, err)

	page, err := f.tasksFacade.GetTasksForProject(ctx, pagination.Request{Size: 200}, inbox.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, page.Total)
}

func TestDeleteProjectStopsWhenNothingProcessable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	project := f.addProject(t, "errands")
	dto := services.TaskDTO{ID: entities.NewTaskID(), Name: "done already"}
	created, result, err := f.tasksFacade.AddToProject(ctx, dto, project.ID)
	require.NoError(t, err)
	require.True(t, result.Successful)
	require.NotNil(t, created)

	// A completed task cannot be reassigned to the inbox.
	result, err = f.tasksFacade.Complete(ctx, created.ID, f.clock)
	require.NoError(t, err)
	require.True(t, result.Successful)

	// Must terminate despite the unprocessable leftover.
	require.NoError(t, f.projectsFacade.DeleteProject(ctx, project.ID, false))

	still, err := f.tasksFacade.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, project.ID, *still.ProjectID)
}

func TestHandlerIsNoOpWithoutTasks(t *testing.T) {
	f := newFixture()

	err := f.deletedHandler.Handle(context.Background(), events.ProjectDeleted{
		ProjectID: entities.NewProjectID(),
		Forced:    false,
	})
	require.NoError(t, err)
}
