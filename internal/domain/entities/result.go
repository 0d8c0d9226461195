package entities

import "errors"

// Common errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrConflict        = errors.New("concurrent modification conflict")
)

// Failure reasons surfaced to clients through DomainResult.
const (
	ReasonNoTaskWithGivenID       = "No task with given id"
	ReasonNoProjectWithGivenID    = "No project with given id"
	ReasonCannotAssignCompleted   = "Cannot assign completed task"
	ReasonCannotAssignToCompleted = "Cannot assign to completed project"
	ReasonTaskAlreadyCompleted    = "Task is already completed"
	ReasonTaskNotCompleted        = "Task is not completed"
	ReasonTaskReopenWindowPassed  = "Task can only be reopened on the day it was completed"
	ReasonProjectAlreadyCompleted = "Project is already completed"
	ReasonProjectNotCompleted     = "Project is not completed"
)

// DomainResult is the outcome of a domain operation. Expected rule
// violations are reported through it rather than through errors, so the
// boundary layer can map the reason to a client-facing response.
type DomainResult struct {
	Successful bool
	Reason     string
}

// Success returns a successful result.
func Success() DomainResult {
	return DomainResult{Successful: true}
}

// Failure returns a failed result with the given reason.
func Failure(reason string) DomainResult {
	return DomainResult{Reason: reason}
}

// Failed reports whether the operation was rejected.
func (r DomainResult) Failed() bool {
	return !r.Successful
}
