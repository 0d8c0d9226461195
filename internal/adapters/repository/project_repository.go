package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
)

// uniqueViolation is the Postgres error code raised by the single-inbox
// partial unique index when two callers create the inbox concurrently.
const uniqueViolation = "23505"

// projectRow is the relational shape of a project.
type projectRow struct {
	ID             uuid.UUID    `db:"id"`
	Name           string       `db:"name"`
	Inbox          bool         `db:"inbox"`
	CompletionDate sql.NullTime `db:"completion_date"`
	Version        int          `db:"version"`
}

func (r projectRow) toEntity() *entities.Project {
	project := &entities.Project{
		ID:      entities.ProjectID{UUID: r.ID},
		Name:    r.Name,
		Inbox:   r.Inbox,
		Version: r.Version,
	}
	if r.CompletionDate.Valid {
		completionDate := r.CompletionDate.Time
		project.CompletionDate = &completionDate
	}
	return project
}

func projectRowFrom(project *entities.Project) projectRow {
	row := projectRow{
		ID:      project.ID.UUID,
		Name:    project.Name,
		Inbox:   project.Inbox,
		Version: project.Version,
	}
	if project.CompletionDate != nil {
		row.CompletionDate = sql.NullTime{Time: *project.CompletionDate, Valid: true}
	}
	return row
}

// ProjectRepository implements the project repository interface on Postgres.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Add inserts a new project.
func (r *ProjectRepository) Add(ctx context.Context, project *entities.Project) error {
	query := `
		INSERT INTO projects (id, name, inbox, completion_date, version)
		VALUES (:id, :name, :inbox, :completion_date, :version)
	`

	if _, err := r.db.NamedExecContext(ctx, query, projectRowFrom(project)); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by id.
func (r *ProjectRepository) Get(ctx context.Context, id entities.ProjectID) (*entities.Project, error) {
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

// GetInboxProject retrieves the inbox project if it has been created.
func (r *ProjectRepository) GetInboxProject(ctx context.Context) (*entities.Project, error) {
	query := `
		SELECT id, name, inbox, completion_date, version
		FROM projects WHERE inbox
	`

	var row projectRow
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get inbox project: %w", err)
	}

	return row.toEntity(), nil
}

// CreateInbox inserts the inbox project. The partial unique index on the
// inbox marker guarantees at most one row; losing a creation race surfaces
// as ErrConflict so the caller can retry the lookup.
func (r *ProjectRepository) CreateInbox(ctx context.Context) (*entities.Project, error) {
	inbox := entities.NewInbox()

	query := `
		INSERT INTO projects (id, name, inbox, completion_date, version)
		VALUES (:id, :name, :inbox, :completion_date, :version)
	`

	if _, err := r.db.NamedExecContext(ctx, query, projectRowFrom(inbox)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, entities.ErrConflict
		}
		return nil, fmt.Errorf("failed to create inbox project: %w", err)
	}

	return inbox, nil
}

// Save updates a project using optimistic concurrency.
func (r *ProjectRepository) Save(ctx context.Context, project *entities.Project) error {
	query := `
		UPDATE projects
		SET name = :name, completion_date = :completion_date, version = :version + 1
		WHERE id = :id AND version = :version
	`

	result, err := r.db.NamedExecContext(ctx, query, projectRowFrom(project))
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return entities.ErrConflict
	}

	project.Version++
	return nil
}

// Delete removes a project. Deleting an absent project is not an error.
func (r *ProjectRepository) Delete(ctx context.Context, id entities.ProjectID) error {
	query := `DELETE FROM projects WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id.UUID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
