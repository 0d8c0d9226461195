package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
)

func TestAssignTaskToProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	task := f.addTask(t, "buy milk")
	project := f.addProject(t, "errands")

	result, err := f.tasksFacade.AssignToProject(ctx, task.ID, project.ID)
	require.NoError(t, err)
	require.True(t, result.Successful)

	moved, err := f.tasksFacade.Get(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, moved)
	require.NotNil(t, moved.ProjectID)
	assert.Equal(t, project.ID, *moved.ProjectID)

	published := f.recorder.RecordedOf(events.KindTaskAssignedToProject)
	require.Len(t, published, 1)
	assigned := published[0].(events.TaskAssignedToProject)
	assert.Equal(t, task.ID, assigned.TaskID)
	assert.Equal(t, project.ID, assigned.ProjectID)
}

func TestAssignMissingTask(t *testing.T) {
	f := newFixture()

	project := f.addProject(t, "errands")

	result, err := f.tasksFacade.AssignToProject(context.Background(), entities.NewTaskID(), project.ID)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonNoTaskWithGivenID, result.Reason)
}

func TestAssignToMissingProject(t *testing.T) {
	f := newFixture()

	task := f.addTask(t, "buy milk")

	result, err := f.tasksFacade.AssignToProject(context.Background(), task.ID, entities.NewProjectID())
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonNoProjectWithGivenID, result.Reason)
}

func TestAssignCompletedTask(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	task := f.addTask(t, "buy milk")
	project := f.addProject(t, "errands")

	result, err := f.tasksFacade.Complete(ctx, task.ID, f.clock)
	require.NoError(t, err)
	require.True(t, result.Successful)

	result, err = f.tasksFacade.AssignToProject(ctx, task.ID, project.ID)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonCannotAssignCompleted, result.Reason)
}

func TestAssignToCompletedProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	task := f.addTask(t, "buy milk")
	project := f.addProject(t, "errands")

	result, err := f.projectsFacade.CompleteProject(ctx, project.ID)
	require.NoError(t, err)
	require.True(t, result.Successful)

	result, err = f.tasksFacade.AssignToProject(ctx, task.ID, project.ID)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonCannotAssignToCompleted, result.Reason)
}
