package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bettercode/todo-tasks/internal/adapters/eventbus"
	"github.com/bettercode/todo-tasks/internal/adapters/repository"
	"github.com/bettercode/todo-tasks/internal/application/services"
	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
)

// testClock is an adjustable clock shared by a fixture's services.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// fixture wires the whole application on in-memory adapters: repositories,
// the event bus with its subscribers and a recorder capturing every
// published event.
type fixture struct {
	clock    *testClock
	tasks    *repository.InMemoryTaskRepository
	projects *repository.InMemoryProjectRepository
	recorder *eventbus.MemoryPublisher
	bus      *eventbus.Bus

	projectService *services.ProjectService
	deletedHandler *services.ProjectDeletedHandler
	projectsFacade *services.ProjectsFacade
	tasksFacade    *services.TasksFacade
}

func newFixture() *fixture {
	log := logger.NewNop()

	f := &fixture{
		clock:    &testClock{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)},
		tasks:    repository.NewInMemoryTaskRepository(),
		projects: repository.NewInMemoryProjectRepository(),
		recorder: eventbus.NewMemoryPublisher(),
	}
	f.bus = eventbus.NewBus(f.recorder, log)

	f.projectService = services.NewProjectService(f.projects, f.bus, log)
	projectsQuery := services.NewProjectsQueryService(f.projects, nil)
	projectCompletion := services.NewProjectCompletionService(f.projects, f.bus, f.clock, log)
	f.projectsFacade = services.NewProjectsFacade(f.projectService, projectsQuery, projectCompletion)

	taskService := services.NewTaskService(f.tasks, f.projects, f.projectService, f.bus, log)
	taskCompletion := services.NewTaskCompletionService(f.tasks, f.bus, log)
	assignment := services.NewProjectAssignmentService(f.tasks, f.projects, f.bus, log)
	tasksQuery := services.NewTasksQueryService(f.tasks, f.tasks)
	f.tasksFacade = services.NewTasksFacade(taskService, f.projectsFacade, taskCompletion, assignment, tasksQuery)

	f.deletedHandler = services.NewProjectDeletedHandler(f.tasks, tasksQuery, f.projectService, assignment, log)
	f.bus.Subscribe(events.KindProjectDeleted, func(ctx context.Context, event events.DomainEvent) error {
		deleted, ok := event.(events.ProjectDeleted)
		if !ok {
			return nil
		}
		return f.deletedHandler.Handle(ctx, deleted)
	})

	return f
}

// addTask creates a task in the inbox and returns its DTO.
func (f *fixture) addTask(t *testing.T, name string) services.TaskDTO {
	t.Helper()

	dto := services.TaskDTO{ID: entities.NewTaskID(), Name: name}
	result, err := f.tasksFacade.Add(context.Background(), dto)
	require.NoError(t, err)
	require.True(t, result.Successful)

	created, err := f.tasksFacade.Get(context.Background(), dto.ID)
	require.NoError(t, err)
	require.NotNil(t, created)
	return *created
}

// addProject creates a project and returns its DTO.
func (f *fixture) addProject(t *testing.T, name string) services.ProjectDTO {
	t.Helper()

	project, err := f.projectsFacade.AddProject(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, project)
	return *project
}
