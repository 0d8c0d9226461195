package services

import (
	"context"
	"time"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
)

// TasksFacade is the task-side entry point consumed by the boundary layer.
// It composes the task services with the query side.
type TasksFacade struct {
	taskService       *TaskService
	projectsFacade    *ProjectsFacade
	completionService *TaskCompletionService
	assignmentService *ProjectAssignmentService
	tasksQuery        *TasksQueryService
}

// NewTasksFacade creates a new tasks facade.
func NewTasksFacade(taskService *TaskService, projectsFacade *ProjectsFacade, completionService *TaskCompletionService, assignmentService *ProjectAssignmentService, tasksQuery *TasksQueryService) *TasksFacade {
	return &TasksFacade{
		taskService:       taskService,
		projectsFacade:    projectsFacade,
		completionService: completionService,
		assignmentService: assignmentService,
		tasksQuery:        tasksQuery,
	}
}

// Add creates a task in the inbox from the given DTO.
func (f *TasksFacade) Add(ctx context.Context, dto TaskDTO) (entities.DomainResult, error) {
	task := &entities.Task{ID: dto.ID, Name: dto.Name}
	if task.ID == (entities.TaskID{}) {
		task.ID = entities.NewTaskID()
	}
	if dto.DueDate != nil {
		if result := task.DueTo(*dto.DueDate); result.Failed() {
			return result, nil
		}
	}
	return f.taskService.Add(ctx, task)
}

// AddToProject creates a task directly in the given project. A missing
// project or a rejected assignment surfaces as a failed result.
func (f *TasksFacade) AddToProject(ctx context.Context, dto TaskDTO, projectID entities.ProjectID) (*TaskDTO, entities.DomainResult, error) {
	task := &entities.Task{ID: dto.ID, Name: dto.Name}
	if task.ID == (entities.TaskID{}) {
		task.ID = entities.NewTaskID()
	}
	if dto.DueDate != nil {
		if result := task.DueTo(*dto.DueDate); result.Failed() {
			return nil, result, nil
		}
	}
	added, result, err := f.taskService.AddTaskForAProject(ctx, task, projectID)
	if err != nil || result.Failed() {
		return nil, result, err
	}
	return TaskDTOFrom(added), result, nil
}

// Delete removes the task.
func (f *TasksFacade) Delete(ctx context.Context, id entities.TaskID) error {
	return f.taskService.Delete(ctx, id)
}

// Complete marks the task as done.
func (f *TasksFacade) Complete(ctx context.Context, id entities.TaskID, clock entities.Clock) (entities.DomainResult, error) {
	return f.completionService.Complete(ctx, id, clock)
}

// Reopen clears the task's completion, subject to the same-day rule.
func (f *TasksFacade) Reopen(ctx context.Context, id entities.TaskID, clock entities.Clock) (entities.DomainResult, error) {
	return f.completionService.Reopen(ctx, id, clock)
}

// Get returns the task, or nil when it does not exist.
func (f *TasksFacade) Get(ctx context.Context, id entities.TaskID) (*TaskDTO, error) {
	return f.tasksQuery.FindByID(ctx, id)
}

// AssignToProject moves the task into the given project.
func (f *TasksFacade) AssignToProject(ctx context.Context, taskID entities.TaskID, projectID entities.ProjectID) (entities.DomainResult, error) {
	return f.assignmentService.Assign(ctx, taskID, projectID)
}

// GetOpenInboxTasks returns one page of the inbox's open tasks.
func (f *TasksFacade) GetOpenInboxTasks(ctx context.Context, req pagination.Request) (pagination.Page[TaskDTO], error) {
	inbox, err := f.projectsFacade.GetInbox(ctx)
	if err != nil {
		return pagination.Page[TaskDTO]{}, err
	}
	return f.tasksQuery.FindAllOpenForProject(ctx, req, inbox.ID)
}

// GetTasksForProject returns one page of the project's tasks, or an empty
// page when the project does not exist.
func (f *TasksFacade) GetTasksForProject(ctx context.Context, req pagination.Request, projectID entities.ProjectID) (pagination.Page[TaskDTO], error) {
	project, err := f.projectsFacade.GetProject(ctx, projectID)
	if err != nil {
		return pagination.Page[TaskDTO]{}, err
	}
	if project == nil {
		return pagination.Empty[TaskDTO](req), nil
	}
	return f.tasksQuery.FindAllForProject(ctx, req, projectID)
}

// GetAllOpen returns one page of all open tasks.
func (f *TasksFacade) GetAllOpen(ctx context.Context, req pagination.Request) (pagination.Page[TaskDTO], error) {
	return f.tasksQuery.FindAllOpen(ctx, req)
}

// GetAllCompleted returns one page of all completed tasks.
func (f *TasksFacade) GetAllCompleted(ctx context.Context, req pagination.Request) (pagination.Page[TaskDTO], error) {
	return f.tasksQuery.FindAllCompleted(ctx, req)
}

// GetAllWithoutDueDate returns one page of tasks with no due date.
func (f *TasksFacade) GetAllWithoutDueDate(ctx context.Context, req pagination.Request) (pagination.Page[TaskDTO], error) {
	return f.tasksQuery.FindAllWithoutDueDate(ctx, req)
}

// GetTasksDueDate returns one page of tasks due on the given date.
func (f *TasksFacade) GetTasksDueDate(ctx context.Context, req pagination.Request, dueDate time.Time) (pagination.Page[TaskDTO], error) {
	return f.tasksQuery.FindAllWithDueDate(ctx, req, dueDate)
}
