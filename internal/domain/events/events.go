package events

import "github.com/bettercode/todo-tasks/internal/domain/entities"

// Event kinds. Publishers and subscribers key on these instead of on
// concrete types, so the set of kinds stays a closed, explicit table.
const (
	KindTaskCreated           = "TaskCreated"
	KindTaskCompleted         = "TaskCompleted"
	KindTaskReopened          = "TaskReopened"
	KindTaskAssignedToProject = "TaskAssignedToProject"
	KindProjectCreated        = "ProjectCreated"
	KindProjectCompleted      = "ProjectCompleted"
	KindProjectReopened       = "ProjectReopened"
	KindProjectDeleted        = "ProjectDeleted"
	KindAuditLogCommand       = "AuditLogCommand"
)

// DomainEvent is an immutable fact about a state change, published after
// the triggering write has been persisted.
type DomainEvent interface {
	Kind() string
}

// TaskCreated is emitted when a new task has been persisted.
type TaskCreated struct {
	TaskID entities.TaskID `json:"taskId"`
}

func (TaskCreated) Kind() string { return KindTaskCreated }

// TaskCompleted is emitted when a task transitions to completed.
type TaskCompleted struct {
	TaskID entities.TaskID `json:"taskId"`
}

func (TaskCompleted) Kind() string { return KindTaskCompleted }

// TaskReopened is emitted when a completed task is reopened.
type TaskReopened struct {
	TaskID entities.TaskID `json:"taskId"`
}

func (TaskReopened) Kind() string { return KindTaskReopened }

// TaskAssignedToProject is emitted when a task moves to a project.
type TaskAssignedToProject struct {
	TaskID    entities.TaskID    `json:"taskId"`
	ProjectID entities.ProjectID `json:"projectId"`
}

func (TaskAssignedToProject) Kind() string { return KindTaskAssignedToProject }

// ProjectCreated is emitted when a new project has been persisted,
// including the lazily created inbox.
type ProjectCreated struct {
	ProjectID entities.ProjectID `json:"projectId"`
}

func (ProjectCreated) Kind() string { return KindProjectCreated }

// ProjectCompleted is emitted when a project transitions to completed.
type ProjectCompleted struct {
	ProjectID entities.ProjectID `json:"projectId"`
}

func (ProjectCompleted) Kind() string { return KindProjectCompleted }

// ProjectReopened is emitted when a completed project is reopened.
type ProjectReopened struct {
	ProjectID entities.ProjectID `json:"projectId"`
}

func (ProjectReopened) Kind() string { return KindProjectReopened }

// ProjectDeleted is emitted when a project is removed. Forced deletions
// cascade to the project's tasks; non-forced deletions move them to the
// inbox.
type ProjectDeleted struct {
	ProjectID entities.ProjectID `json:"projectId"`
	Forced    bool               `json:"forced"`
}

func (ProjectDeleted) Kind() string { return KindProjectDeleted }

// AuditLogCommand carries a human-readable trace message emitted alongside
// domain events.
type AuditLogCommand struct {
	Message string `json:"message"`
}

func (AuditLogCommand) Kind() string { return KindAuditLogCommand }
