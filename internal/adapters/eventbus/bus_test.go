package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
)

func TestBusDispatchesByKind(t *testing.T) {
	bus := NewBus(nil, logger.NewNop())

	var taskEvents, projectEvents []events.DomainEvent
	bus.Subscribe(events.KindTaskCreated, func(_ context.Context, event events.DomainEvent) error {
		taskEvents = append(taskEvents, event)
		return nil
	})
	bus.Subscribe(events.KindProjectCreated, func(_ context.Context, event events.DomainEvent) error {
		projectEvents = append(projectEvents, event)
		return nil
	})

	bus.Publish(context.Background(), events.TaskCreated{TaskID: entities.NewTaskID()})

	assert.Len(t, taskEvents, 1)
	assert.Empty(t, projectEvents)
}

func TestBusForwardsOutbound(t *testing.T) {
	recorder := NewMemoryPublisher()
	bus := NewBus(recorder, logger.NewNop())

	event := events.ProjectCreated{ProjectID: entities.NewProjectID()}
	bus.Publish(context.Background(), event)

	recorded := recorder.Recorded()
	require.Len(t, recorded, 1)
	assert.Equal(t, event, recorded[0])
}

func TestBusHandlerErrorDoesNotStopOthers(t *testing.T) {
	recorder := NewMemoryPublisher()
	bus := NewBus(recorder, logger.NewNop())

	called := false
	bus.Subscribe(events.KindTaskCreated, func(context.Context, events.DomainEvent) error {
		return errors.New("boom")
	})
	bus.Subscribe(events.KindTaskCreated, func(context.Context, events.DomainEvent) error {
		called = true
		return nil
	})

	bus.Publish(context.Background(), events.TaskCreated{TaskID: entities.NewTaskID()})

	assert.True(t, called)
	assert.Len(t, recorder.Recorded(), 1)
}

func TestSubjectsCoverOnlyExternalKinds(t *testing.T) {
	assert.Equal(t, "todo-tasks.projectCreated", subjects[events.KindProjectCreated])
	assert.Equal(t, "todo-tasks.projectDeleted", subjects[events.KindProjectDeleted])
	assert.Equal(t, "todo-tasks.taskCreated", subjects[events.KindTaskCreated])

	_, ok := subjects[events.KindAuditLogCommand]
	assert.False(t, ok)
	_, ok = subjects[events.KindTaskCompleted]
	assert.False(t, ok)
}

func TestProjectDeletedWireShape(t *testing.T) {
	id := entities.NewProjectID()
	event := events.ProjectDeleted{ProjectID: id, Forced: true}

	payload, err := json.Marshal(wireShape(event))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, id.String(), decoded["projectId"])
	assert.Equal(t, true, decoded["forced"])
	assert.Len(t, decoded, 2)
}
