package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskComplete(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	clock := FixedClock(now)

	task := NewTask("write report")

	result := task.Complete(clock)
	require.True(t, result.Successful)
	require.NotNil(t, task.CompletionDate)
	assert.Equal(t, now, *task.CompletionDate)

	result = task.Complete(clock)
	require.True(t, result.Failed())
	assert.Equal(t, ReasonTaskAlreadyCompleted, result.Reason)
}

func TestTaskReopenSameDay(t *testing.T) {
	morning := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)

	task := NewTask("write report")
	require.True(t, task.Complete(FixedClock(morning)).Successful)

	result := task.Reopen(FixedClock(evening))
	require.True(t, result.Successful)
	assert.Nil(t, task.CompletionDate)
}

func TestTaskReopenNextDayFails(t *testing.T) {
	completed := time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 16, 0, 30, 0, 0, time.UTC)

	task := NewTask("write report")
	require.True(t, task.Complete(FixedClock(completed)).Successful)

	result := task.Reopen(FixedClock(nextDay))
	require.True(t, result.Failed())
	assert.Equal(t, ReasonTaskReopenWindowPassed, result.Reason)
	assert.NotNil(t, task.CompletionDate)
}

func TestTaskReopenNotCompleted(t *testing.T) {
	task := NewTask("write report")

	result := task.Reopen(SystemClock())
	require.True(t, result.Failed())
	assert.Equal(t, ReasonTaskNotCompleted, result.Reason)
}

func TestTaskAssignTo(t *testing.T) {
	task := NewTask("write report")
	project := NewProject("work")

	result := task.AssignTo(project)
	require.True(t, result.Successful)
	require.NotNil(t, task.ProjectID)
	assert.Equal(t, project.ID, *task.ProjectID)
}

func TestTaskAssignCompletedTaskFails(t *testing.T) {
	task := NewTask("write report")
	require.True(t, task.Complete(SystemClock()).Successful)

	result := task.AssignTo(NewProject("work"))
	require.True(t, result.Failed())
	assert.Equal(t, ReasonCannotAssignCompleted, result.Reason)
	assert.Nil(t, task.ProjectID)
}

func TestTaskAssignToCompletedProjectFails(t *testing.T) {
	task := NewTask("write report")
	project := NewProject("work")
	require.True(t, project.Complete(SystemClock()).Successful)

	result := task.AssignTo(project)
	require.True(t, result.Failed())
	assert.Equal(t, ReasonCannotAssignToCompleted, result.Reason)
	assert.Nil(t, task.ProjectID)
}

func TestTaskDueTo(t *testing.T) {
	task := NewTask("write report")
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	result := task.DueTo(due)
	require.True(t, result.Successful)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, due, *task.DueDate)
}

func TestSameDayAcrossLocations(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC on the 15th is already the 16th in Berlin.
	completed := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)
	now := time.Date(2024, 3, 16, 0, 30, 0, 0, berlin)

	assert.True(t, sameDay(completed, now))
}
