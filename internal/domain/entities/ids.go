package entities

import "github.com/google/uuid"

// TaskID identifies a task. The zero value is not a valid id.
type TaskID struct {
	uuid.UUID
}

// NewTaskID generates a fresh task id.
func NewTaskID() TaskID {
	return TaskID{uuid.New()}
}

// ParseTaskID parses a task id from its canonical string form.
func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TaskID{}, err
	}
	return TaskID{id}, nil
}

// ProjectID identifies a project. The zero value is not a valid id.
type ProjectID struct {
	uuid.UUID
}

// NewProjectID generates a fresh project id.
func NewProjectID() ProjectID {
	return ProjectID{uuid.New()}
}

// ParseProjectID parses a project id from its canonical string form.
func ParseProjectID(s string) (ProjectID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProjectID{}, err
	}
	return ProjectID{id}, nil
}
