package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
)

func TestCompleteTask(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	task := f.addTask(t, "buy milk")

	result, err := f.tasksFacade.Complete(ctx, task.ID, f.clock)
	require.NoError(t, err)
	require.True(t, result.Successful)

	completed, err := f.tasksFacade.GetAllCompleted(ctx, pagination.Default())
	require.NoError(t, err)
	require.Len(t, completed.Items, 1)

	open, err := f.tasksFacade.GetAllOpen(ctx, pagination.Default())
	require.NoError(t, err)
	assert.Empty(t, open.Items)

	published := f.recorder.RecordedOf(events.KindTaskCompleted)
	require.Len(t, published, 1)
	assert.Equal(t, task.ID, published[0].(events.TaskCompleted).TaskID)
}

func TestCompleteTaskTwice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	task := f.addTask(t, "buy milk")

	result, err := f.tasksFacade.Complete(ctx, task.ID, f.clock)
	require.NoError(t, err)
	require.True(t, result.Successful)

	result, err = f.tasksFacade.Complete(ctx, task.ID, f.clock)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonTaskAlreadyCompleted, result.Reason)
}

func TestCompleteMissingTask(t *testing.T) {
	f := newFixture()

	result, err := f.tasksFacade.Complete(context.Background(), entities.NewTaskID(), f.clock)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonNoTaskWithGivenID, result.Reason)
}

func TestReopenTaskSameDay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	task := f.addTask(t, "buy milk")

	result, err := f.tasksFacade.Complete(ctx, task.ID, f.clock)
	require.NoError(t, err)
	require.True(t, result.Successful)

	// Still the same calendar day.
	f.clock.advance(6 * time.Hour)

	result, err = f.tasksFacade.Reopen(ctx, task.ID, f.clock)
	require.NoError(t, err)
	require.True(t, result.Successful)

	reopened, err := f.tasksFacade.Get(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, reopened)
	assert.Nil(t, reopened.CompletionDate)

	published := f.recorder.RecordedOf(events.KindTaskReopened)
	require.Len(t, published, 1)
}

func TestReopenTaskNextDayFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	task := f.addTask(t, "buy milk")

	result, err := f.tasksFacade.Complete(ctx, task.ID, f.clock)
	require.NoError(t, err)
	require.True(t, result.Successful)

	f.clock.advance(24 * time.Hour)

	result, err = f.tasksFacade.Reopen(ctx, task.ID, f.clock)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonTaskReopenWindowPassed, result.Reason)

	// The task is untouched and no reopen event went out.
	still, err := f.tasksFacade.Get(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.NotNil(t, still.CompletionDate)
	assert.Empty(t, f.recorder.RecordedOf(events.KindTaskReopened))
}

func TestReopenOpenTaskFails(t *testing.T) {
	f := newFixture()

	task := f.addTask(t, "buy milk")

	result, err := f.tasksFacade.Reopen(context.Background(), task.ID, f.clock)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, entities.ReasonTaskNotCompleted, result.Reason)
}
