package ports

import (
	"context"
	"time"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
)

// TaskRepository defines the interface for task persistence.
// Get returns entities.ErrTaskNotFound when the task does not exist, and
// Save returns entities.ErrConflict on a conflicting concurrent write.
type TaskRepository interface {
	Add(ctx context.Context, task *entities.Task) error
	Get(ctx context.Context, id entities.TaskID) (*entities.Task, error)
	Save(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id entities.TaskID) error
}

// ProjectRepository defines the interface for project persistence.
// GetInboxProject returns entities.ErrProjectNotFound until the inbox has
// been created; CreateInbox returns entities.ErrConflict when a concurrent
// caller created the inbox first.
type ProjectRepository interface {
	Add(ctx context.Context, project *entities.Project) error
	Get(ctx context.Context, id entities.ProjectID) (*entities.Project, error)
	GetInboxProject(ctx context.Context) (*entities.Project, error)
	Save(ctx context.Context, project *entities.Project) error
	Delete(ctx context.Context, id entities.ProjectID) error
	CreateInbox(ctx context.Context) (*entities.Project, error)
}

// TaskQueryRepository defines the read-only task projections.
type TaskQueryRepository interface {
	FindAllOpen(ctx context.Context, req pagination.Request) (pagination.Page[entities.Task], error)
	FindAllOpenForProject(ctx context.Context, req pagination.Request, projectID entities.ProjectID) (pagination.Page[entities.Task], error)
	FindAllCompleted(ctx context.Context, req pagination.Request) (pagination.Page[entities.Task], error)
	FindAllForProject(ctx context.Context, req pagination.Request, projectID entities.ProjectID) (pagination.Page[entities.Task], error)
	FindAllWithoutDueDate(ctx context.Context, req pagination.Request) (pagination.Page[entities.Task], error)
	FindAllWithDueDate(ctx context.Context, req pagination.Request, dueDate time.Time) (pagination.Page[entities.Task], error)
}

// ProjectQueryRepository defines the read-only project projections.
type ProjectQueryRepository interface {
	FindAll(ctx context.Context, req pagination.Request) (pagination.Page[entities.Project], error)
	FindByID(ctx context.Context, id entities.ProjectID) (*entities.Project, error)
	FindAllOpen(ctx context.Context, req pagination.Request) (pagination.Page[entities.Project], error)
}
