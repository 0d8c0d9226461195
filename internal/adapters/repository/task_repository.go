package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
)

// taskRow is the relational shape of a task. Mapping between row and
// entity is explicit in both directions.
type taskRow struct {
	ID             uuid.UUID     `db:"id"`
	Name           string        `db:"name"`
	ProjectID      uuid.NullUUID `db:"project_id"`
	DueDate        sql.NullTime  `db:"due_date"`
	CompletionDate sql.NullTime  `db:"completion_date"`
	Version        int           `db:"version"`
}

func (r taskRow) toEntity() *entities.Task {
	task := &entities.Task{
		ID:      entities.TaskID{UUID: r.ID},
		Name:    r.Name,
		Version: r.Version,
	}
	if r.ProjectID.Valid {
		projectID := entities.ProjectID{UUID: r.ProjectID.UUID}
		task.ProjectID = &projectID
	}
	if r.DueDate.Valid {
		dueDate := r.DueDate.Time
		task.DueDate = &dueDate
	}
	if r.CompletionDate.Valid {
		completionDate := r.CompletionDate.Time
		task.CompletionDate = &completionDate
	}
	return task
}

func taskRowFrom(task *entities.Task) taskRow {
	row := taskRow{
		ID:      task.ID.UUID,
		Name:    task.Name,
		Version: task.Version,
	}
	if task.ProjectID != nil {
		row.ProjectID = uuid.NullUUID{UUID: task.ProjectID.UUID, Valid: true}
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}
	if task.CompletionDate != nil {
		row.CompletionDate = sql.NullTime{Time: *task.CompletionDate, Valid: true}
	}
	return row
}

// TaskRepository implements the task repository interface on Postgres.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Add inserts a new task.
func (r *TaskRepository) Add(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, name, project_id, due_date, completion_date, version)
		VALUES (:id, :name, :project_id, :due_date, :completion_date, :version)
	`

	if _, err := r.db.NamedExecContext(ctx, query, taskRowFrom(task)); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// Get retrieves a task by id.
func (r *TaskRepository) Get(ctx context.Context, id entities.TaskID) (*entities.Task, error) {
	query := `
		SELECT id, name, project_id, due_date, completion_date, version
		FROM tasks WHERE id = $1
	`

	var row taskRow
	if err := r.db.GetContext(ctx, &row, query, id.UUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return row.toEntity(), nil
}

// Save updates a task using optimistic concurrency. A version mismatch
// means a conflicting concurrent write and surfaces as ErrConflict.
func (r *TaskRepository) Save(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET name = :name, project_id = :project_id, due_date = :due_date,
		    completion_date = :completion_date, version = :version + 1
		WHERE id = :id AND version = :version
	`

	result, err := r.db.NamedExecContext(ctx, query, taskRowFrom(task))
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return entities.ErrConflict
	}

	task.Version++
	return nil
}

// Delete removes a task. Deleting an absent task is not an error.
func (r *TaskRepository) Delete(ctx context.Context, id entities.TaskID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id.UUID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
