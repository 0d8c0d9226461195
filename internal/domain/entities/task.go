package entities

import "time"

// Task is a single todo item. It always belongs to a project once
// persisted; ProjectID is nil only before the first assignment.
type Task struct {
	ID             TaskID      `json:"id" db:"id"`
	Name           string      `json:"name" db:"name"`
	ProjectID      *ProjectID  `json:"project_id" db:"project_id"`
	DueDate        *time.Time  `json:"due_date" db:"due_date"`
	CompletionDate *time.Time  `json:"completion_date" db:"completion_date"`
	Version        int         `json:"-" db:"version"`
}

// NewTask creates an open task with a generated id.
func NewTask(name string) *Task {
	return &Task{
		ID:   NewTaskID(),
		Name: name,
	}
}

// Completed reports whether the task has been completed.
func (t *Task) Completed() bool {
	return t.CompletionDate != nil
}

// AssignTo moves the task into the given project. A completed task cannot
// be reassigned, and a completed project cannot accept tasks.
func (t *Task) AssignTo(project *Project) DomainResult {
	if t.Completed() {
		return Failure(ReasonCannotAssignCompleted)
	}
	if project.Completed() {
		return Failure(ReasonCannotAssignToCompleted)
	}

	id := project.ID
	t.ProjectID = &id
	return Success()
}

// DueTo sets the task's due date. It currently has no failure path; it
// returns a DomainResult so that future validation propagates the same way
// as every other mutator.
func (t *Task) DueTo(dueDate time.Time) DomainResult {
	t.DueDate = &dueDate
	return Success()
}

// Complete marks the task as done at the clock's current time.
func (t *Task) Complete(clock Clock) DomainResult {
	if t.Completed() {
		return Failure(ReasonTaskAlreadyCompleted)
	}

	now := clock.Now()
	t.CompletionDate = &now
	return Success()
}

// Reopen clears the completion. A task can only be reopened on the same
// calendar day it was completed.
func (t *Task) Reopen(clock Clock) DomainResult {
	if !t.Completed() {
		return Failure(ReasonTaskNotCompleted)
	}
	if !sameDay(*t.CompletionDate, clock.Now()) {
		return Failure(ReasonTaskReopenWindowPassed)
	}

	t.CompletionDate = nil
	return Success()
}
