package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
	"github.com/bettercode/todo-tasks/internal/ports"
)

// TasksQueryService exposes read-only task projections to the facades and
// to the project deletion reaction.
type TasksQueryService struct {
	queries ports.TaskQueryRepository
	tasks   ports.TaskRepository
}

// NewTasksQueryService creates a new tasks query service.
func NewTasksQueryService(queries ports.TaskQueryRepository, tasks ports.TaskRepository) *TasksQueryService {
	return &TasksQueryService{
		queries: queries,
		tasks:   tasks,
	}
}

// FindByID returns the task DTO, or nil when the task does not exist.
func (s *TasksQueryService) FindByID(ctx context.Context, id entities.TaskID) (*TaskDTO, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return TaskDTOFrom(task), nil
}

// FindAllOpen returns one page of open tasks.
func (s *TasksQueryService) FindAllOpen(ctx context.Context, req pagination.Request) (pagination.Page[TaskDTO], error) {
	page, err := s.queries.FindAllOpen(ctx, req)
	if err != nil {
		return pagination.Page[TaskDTO]{}, fmt.Errorf("failed to list open tasks: %w", err)
	}
	return mapTaskPage(page), nil
}

// FindAllOpenForProject returns one page of the project's open tasks.
func (s *TasksQueryService) FindAllOpenForProject(ctx context.Context, req pagination.Request, projectID entities.ProjectID) (pagination.Page[TaskDTO], error) {
	page, err := s.queries.FindAllOpenForProject(ctx, req, projectID)
	if err != nil {
		return pagination.Page[TaskDTO]{}, fmt.Errorf("failed to list open tasks for project: %w", err)
	}
	return mapTaskPage(page), nil
}

// FindAllCompleted returns one page of completed tasks.
func (s *TasksQueryService) FindAllCompleted(ctx context.Context, req pagination.Request) (pagination.Page[TaskDTO], error) {
	page, err := s.queries.FindAllCompleted(ctx, req)
	if err != nil {
		return pagination.Page[TaskDTO]{}, fmt.Errorf("failed to list completed tasks: %w", err)
	}
	return mapTaskPage(page), nil
}

// FindAllForProject returns one page of the project's tasks, open or not.
func (s *TasksQueryService) FindAllForProject(ctx context.Context, req pagination.Request, projectID entities.ProjectID) (pagination.Page[TaskDTO], error) {
	page, err := s.queries.FindAllForProject(ctx, req, projectID)
	if err != nil {
		return pagination.Page[TaskDTO]{}, fmt.Errorf("failed to list tasks for project: %w", err)
	}
	return mapTaskPage(page), nil
}

// FindAllWithoutDueDate returns one page of tasks with no due date.
func (s *TasksQueryService) FindAllWithoutDueDate(ctx context.Context, req pagination.Request) (pagination.Page[TaskDTO], error) {
	page, err := s.queries.FindAllWithoutDueDate(ctx, req)
	if err != nil {
		return pagination.Page[TaskDTO]{}, fmt.Errorf("failed to list tasks without due date: %w", err)
	}
	return mapTaskPage(page), nil
}

// FindAllWithDueDate returns one page of tasks due on the given date.
func (s *TasksQueryService) FindAllWithDueDate(ctx context.Context, req pagination.Request, dueDate time.Time) (pagination.Page[TaskDTO], error) {
	page, err := s.queries.FindAllWithDueDate(ctx, req, dueDate)
	if err != nil {
		return pagination.Page[TaskDTO]{}, fmt.Errorf("failed to list tasks with due date: %w", err)
	}
	return mapTaskPage(page), nil
}

func mapTaskPage(page pagination.Page[entities.Task]) pagination.Page[TaskDTO] {
	return pagination.Map(page, func(task entities.Task) TaskDTO {
		return *TaskDTOFrom(&task)
	})
}
