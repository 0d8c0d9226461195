package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bettercode/todo-tasks/internal/application/services"
	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
)

func TestTasksDueDateFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	dated := services.TaskDTO{ID: entities.NewTaskID(), Name: "dated", DueDate: &due}
	result, err := f.tasksFacade.Add(ctx, dated)
	require.NoError(t, err)
	require.True(t, result.Successful)

	f.addTask(t, "undated")

	onDate, err := f.tasksFacade.GetTasksDueDate(ctx, pagination.Default(), due)
	require.NoError(t, err)
	require.Len(t, onDate.Items, 1)
	assert.Equal(t, "dated", onDate.Items[0].Name)

	otherDate, err := f.tasksFacade.GetTasksDueDate(ctx, pagination.Default(), due.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, otherDate.Items)

	undated, err := f.tasksFacade.GetAllWithoutDueDate(ctx, pagination.Default())
	require.NoError(t, err)
	require.Len(t, undated.Items, 1)
	assert.Equal(t, "undated", undated.Items[0].Name)
}

func TestTasksForMissingProjectIsEmptyPage(t *testing.T) {
	f := newFixture()

	page, err := f.tasksFacade.GetTasksForProject(context.Background(), pagination.Default(), entities.NewProjectID())
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
}

func TestTaskPaginationOrderAndPages(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.addTask(t, "banana")
	f.addTask(t, "apple")
	f.addTask(t, "cherry")

	first, err := f.tasksFacade.GetAllOpen(ctx, pagination.Request{Page: 0, Size: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "apple", first.Items[0].Name)
	assert.Equal(t, "banana", first.Items[1].Name)
	assert.Equal(t, 3, first.Total)
	assert.True(t, first.HasNext())

	second, err := f.tasksFacade.GetAllOpen(ctx, pagination.Request{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "cherry", second.Items[0].Name)
	assert.False(t, second.HasNext())
}
