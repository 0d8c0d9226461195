package entities

import "time"

// InboxName is the reserved name of the per-system default project.
const InboxName = "INBOX"

// Project groups tasks. Exactly one project per system is the inbox; it is
// created lazily on first access and never deleted by normal flows.
type Project struct {
	ID             ProjectID  `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Inbox          bool       `json:"inbox" db:"inbox"`
	CompletionDate *time.Time `json:"completion_date" db:"completion_date"`
	Version        int        `json:"-" db:"version"`
}

// NewProject creates an open project with a generated id.
func NewProject(name string) *Project {
	return &Project{
		ID:   NewProjectID(),
		Name: name,
	}
}

// NewInbox creates the reserved inbox project.
func NewInbox() *Project {
	p := NewProject(InboxName)
	p.Inbox = true
	return p
}

// Completed reports whether the project has been completed.
func (p *Project) Completed() bool {
	return p.CompletionDate != nil
}

// Complete marks the project as done at the clock's current time.
func (p *Project) Complete(clock Clock) DomainResult {
	if p.Completed() {
		return Failure(ReasonProjectAlreadyCompleted)
	}

	now := clock.Now()
	p.CompletionDate = &now
	return Success()
}

// Reopen clears the completion. Unlike tasks, projects can be reopened at
// any time after completion.
func (p *Project) Reopen() DomainResult {
	if !p.Completed() {
		return Failure(ReasonProjectNotCompleted)
	}

	p.CompletionDate = nil
	return Success()
}
