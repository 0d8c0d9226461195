package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
)

// TaskQueryRepository implements the read-only task projections on
// Postgres.
type TaskQueryRepository struct {
	db *sqlx.DB
}

// NewTaskQueryRepository creates a new task query repository.
func NewTaskQueryRepository(db *sqlx.DB) *TaskQueryRepository {
	return &TaskQueryRepository{db: db}
}

// FindAllOpen returns one page of open tasks.
func (r *TaskQueryRepository) FindAllOpen(ctx context.Context, req pagination.Request) (pagination.Page[entities.Task], error) {
	return r.pageTasks(ctx, req, "completion_date IS NULL")
}

// FindAllOpenForProject returns one page of the project's open tasks.
func (r *TaskQueryRepository) FindAllOpenForProject(ctx context.Context, req pagination.Request, projectID entities.ProjectID) (pagination.Page[entities.Task], error) {
	return r.pageTasks(ctx, req, "completion_date IS NULL AND project_id = $1", projectID.UUID)
}

// FindAllCompleted returns one page of completed tasks.
func (r *TaskQueryRepository) FindAllCompleted(ctx context.Context, req pagination.Request) (pagination.Page[entities.Task], error) {
	return r.pageTasks(ctx, req, "completion_date IS NOT NULL")
}

// FindAllForProject returns one page of the project's tasks.
func (r *TaskQueryRepository) FindAllForProject(ctx context.Context, req pagination.Request, projectID entities.ProjectID) (pagination.Page[entities.Task], error) {
	return r.pageTasks(ctx, req, "project_id = $1", projectID.UUID)
}

// FindAllWithoutDueDate returns one page of tasks with no due date.
func (r *TaskQueryRepository) FindAllWithoutDueDate(ctx context.Context, req pagination.Request) (pagination.Page[entities.Task], error) {
	return r.pageTasks(ctx, req, "due_date IS NULL")
}

// FindAllWithDueDate returns one page of tasks due on the given date.
func (r *TaskQueryRepository) FindAllWithDueDate(ctx context.Context, req pagination.Request, dueDate time.Time) (pagination.Page[entities.Task], error) {
	return r.pageTasks(ctx, req, "due_date = $1", dueDate)
}

func (r *TaskQueryRepository) pageTasks(ctx context.Context, req pagination.Request, where string, args ...interface{}) (pagination.Page[entities.Task], error) {
	req = req.Normalized()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tasks WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return pagination.Page[entities.Task]{}, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, project_id, due_date, completion_date, version
		FROM tasks WHERE %s
		ORDER BY name, id
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, req.Size, req.Offset())

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return pagination.Page[entities.Task]{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	items := make([]entities.Task, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row.toEntity())
	}

	return pagination.Page[entities.Task]{Items: items, Total: total, Page: req.Page, Size: req.Size}, nil
}

// ProjectQueryRepository implements the read-only project projections on
// Postgres.
type ProjectQueryRepository struct {
	db *sqlx.DB
}

// NewProjectQueryRepository creates a new project query repository.
func NewProjectQueryRepository(db *sqlx.DB) *ProjectQueryRepository {
	return &ProjectQueryRepository{db: db}
}

// FindAll returns one page of all projects.
func (r *ProjectQueryRepository) FindAll(ctx context.Context, req pagination.Request) (pagination.Page[entities.Project], error) {
	return r.pageProjects(ctx, req, "TRUE")
}

// FindAllOpen returns one page of projects that are not completed.
func (r *ProjectQueryRepository) FindAllOpen(ctx context.Context, req pagination.Request) (pagination.Page[entities.Project], error) {
	return r.pageProjects(ctx, req, "completion_date IS NULL")
}

// FindByID retrieves a project by id.
func (r *ProjectQueryRepository) FindByID(ctx context.Context, id entities.ProjectID) (*entities.Project, error) {
	query := `
		SELECT id, name, inbox, completion_date, version
		FROM projects WHERE id = $1
	`

	var row projectRow
	if err := r.db.GetContext(ctx, &row, query, id.UUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return row.toEntity(), nil
}

func (r *ProjectQueryRepository) pageProjects(ctx context.Context, req pagination.Request, where string, args ...interface{}) (pagination.Page[entities.Project], error) {
	req = req.Normalized()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM projects WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return pagination.Page[entities.Project]{}, fmt.Errorf("failed to count projects: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, inbox, completion_date, version
		FROM projects WHERE %s
		ORDER BY name, id
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, req.Size, req.Offset())

	var rows []projectRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return pagination.Page[entities.Project]{}, fmt.Errorf("failed to list projects: %w", err)
	}

	items := make([]entities.Project, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row.toEntity())
	}

	return pagination.Page[entities.Project]{Items: items, Total: total, Page: req.Page, Size: req.Size}, nil
}
