package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
)

// InMemoryTaskRepository is a mutex-guarded map implementation of both the
// task repository and the task query repository. Used in tests.
type InMemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[entities.TaskID]entities.Task
}

// NewInMemoryTaskRepository creates an empty in-memory task repository.
func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{tasks: make(map[entities.TaskID]entities.Task)}
}

// Add stores a new task.
func (r *InMemoryTaskRepository) Add(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

// Get retrieves a task by id.
func (r *InMemoryTaskRepository) Get(_ context.Context, id entities.TaskID) (*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return &task, nil
}

// Save updates a task, mirroring the optimistic concurrency of the
// Postgres implementation.
func (r *InMemoryTaskRepository) Save(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[task.ID]
	if !ok || stored.Version != task.Version {
		return entities.ErrConflict
	}
	task.Version++
	r.tasks[task.ID] = *task
	return nil
}

// Delete removes a task.
func (r *InMemoryTaskRepository) Delete(_ context.Context, id entities.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

// FindAllOpen returns one page of open tasks.
func (r *InMemoryTaskRepository) FindAllOpen(_ context.Context, req pagination.Request) (pagination.Page[entities.Task], error) {
	return r.page(req, func(t entities.Task) bool {
		return t.CompletionDate == nil
	}), nil
}

// FindAllOpenForProject returns one page of the project's open tasks.
func (r *InMemoryTaskRepository) FindAllOpenForProject(_ context.Context, req pagination.Request, projectID entities.ProjectID) (pagination.Page[entities.Task], error) {
	return r.page(req, func(t entities.Task) bool {
		return t.CompletionDate == nil && t.ProjectID != nil && *t.ProjectID == projectID
	}), nil
}

// FindAllCompleted returns one page of completed tasks.
func (r *InMemoryTaskRepository) FindAllCompleted(_ context.Context, req pagination.Request) (pagination.Page[entities.Task], error) {
	return r.page(req, func(t entities.Task) bool {
		return t.CompletionDate != nil
	}), nil
}

// FindAllForProject returns one page of the project's tasks.
func (r *InMemoryTaskRepository) FindAllForProject(_ context.Context, req pagination.Request, projectID entities.ProjectID) (pagination.Page[entities.Task], error) {
	return r.page(req, func(t entities.Task) bool {
		return t.ProjectID != nil && *t.ProjectID == projectID
	}), nil
}

// FindAllWithoutDueDate returns one page of tasks with no due date.
func (r *InMemoryTaskRepository) FindAllWithoutDueDate(_ context.Context, req pagination.Request) (pagination.Page[entities.Task], error) {
	return r.page(req, func(t entities.Task) bool {
		return t.DueDate == nil
	}), nil
}

// FindAllWithDueDate returns one page of tasks due on the given date.
func (r *InMemoryTaskRepository) FindAllWithDueDate(_ context.Context, req pagination.Request, dueDate time.Time) (pagination.Page[entities.Task], error) {
	y, m, d := dueDate.Date()
	return r.page(req, func(t entities.Task) bool {
		if t.DueDate == nil {
			return false
		}
		ty, tm, td := t.DueDate.Date()
		return ty == y && tm == m && td == d
	}), nil
}

func (r *InMemoryTaskRepository) page(req pagination.Request, match func(entities.Task) bool) pagination.Page[entities.Task] {
	req = req.Normalized()

	r.mu.RLock()
	var matched []entities.Task
	for _, task := range r.tasks {
		if match(task) {
			matched = append(matched, task)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := len(matched)
	start := req.Offset()
	if start > total {
		start = total
	}
	end := start + req.Size
	if end > total {
		end = total
	}

	items := make([]entities.Task, end-start)
	copy(items, matched[start:end])

	return pagination.Page[entities.Task]{Items: items, Total: total, Page: req.Page, Size: req.Size}
}

// InMemoryProjectRepository is a mutex-guarded map implementation of both
// the project repository and the project query repository. Used in tests.
type InMemoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[entities.ProjectID]entities.Project
}

// NewInMemoryProjectRepository creates an empty in-memory project
// repository.
func NewInMemoryProjectRepository() *InMemoryProjectRepository {
	return &InMemoryProjectRepository{projects: make(map[entities.ProjectID]entities.Project)}
}

// Add stores a new project.
func (r *InMemoryProjectRepository) Add(_ context.Context, project *entities.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = *project
	return nil
}

// Get retrieves a project by id.
func (r *InMemoryProjectRepository) Get(_ context.Context, id entities.ProjectID) (*entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	project, ok := r.projects[id]
	if !ok {
		return nil, entities.ErrProjectNotFound
	}
	return &project, nil
}

// GetInboxProject retrieves the inbox project if present.
func (r *InMemoryProjectRepository) GetInboxProject(_ context.Context) (*entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findInboxLocked()
}

func (r *InMemoryProjectRepository) findInboxLocked() (*entities.Project, error) {
	for _, project := range r.projects {
		if project.Inbox {
			p := project
			return &p, nil
		}
	}
	return nil, entities.ErrProjectNotFound
}

// CreateInbox stores the inbox project, enforcing the at-most-one
// constraint the way the database index does.
func (r *InMemoryProjectRepository) CreateInbox(_ context.Context) (*entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.findInboxLocked(); err == nil {
		return nil, entities.ErrConflict
	}
	inbox := entities.NewInbox()
	r.projects[inbox.ID] = *inbox
	return inbox, nil
}

// Save updates a project, mirroring the optimistic concurrency of the
// Postgres implementation.
func (r *InMemoryProjectRepository) Save(_ context.Context, project *entities.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.projects[project.ID]
	if !ok || stored.Version != project.Version {
		return entities.ErrConflict
	}
	project.Version++
	r.projects[project.ID] = *project
	return nil
}

// Delete removes a project.
func (r *InMemoryProjectRepository) Delete(_ context.Context, id entities.ProjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
	return nil
}

// FindAll returns one page of all projects.
func (r *InMemoryProjectRepository) FindAll(_ context.Context, req pagination.Request) (pagination.Page[entities.Project], error) {
	return r.page(req, func(entities.Project) bool { return true }), nil
}

// FindAllOpen returns one page of projects that are not completed.
func (r *InMemoryProjectRepository) FindAllOpen(_ context.Context, req pagination.Request) (pagination.Page[entities.Project], error) {
	return r.page(req, func(p entities.Project) bool {
		return p.CompletionDate == nil
	}), nil
}

// FindByID retrieves a project by id.
func (r *InMemoryProjectRepository) FindByID(ctx context.Context, id entities.ProjectID) (*entities.Project, error) {
	return r.Get(ctx, id)
}

func (r *InMemoryProjectRepository) page(req pagination.Request, match func(entities.Project) bool) pagination.Page[entities.Project] {
	req = req.Normalized()

	r.mu.RLock()
	var matched []entities.Project
	for _, project := range r.projects {
		if match(project) {
			matched = append(matched, project)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := len(matched)
	start := req.Offset()
	if start > total {
		start = total
	}
	end := start + req.Size
	if end > total {
		end = total
	}

	items := make([]entities.Project, end-start)
	copy(items, matched[start:end])

	return pagination.Page[entities.Project]{Items: items, Total: total, Page: req.Page, Size: req.Size}
}
