package services

import (
	"time"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
)

// TaskDTO is the read-model/boundary representation of a task.
type TaskDTO struct {
	ID             entities.TaskID     `json:"id"`
	Name           string              `json:"name"`
	ProjectID      *entities.ProjectID `json:"project_id,omitempty"`
	DueDate        *time.Time          `json:"due_date,omitempty"`
	CompletionDate *time.Time          `json:"completion_date,omitempty"`
}

// TaskDTOFrom maps a task entity to its DTO. Returns nil for nil.
func TaskDTOFrom(task *entities.Task) *TaskDTO {
	if task == nil {
		return nil
	}
	return &TaskDTO{
		ID:             task.ID,
		Name:           task.Name,
		ProjectID:      task.ProjectID,
		DueDate:        task.DueDate,
		CompletionDate: task.CompletionDate,
	}
}

// ProjectDTO is the read-model/boundary representation of a project.
type ProjectDTO struct {
	ID             entities.ProjectID `json:"id"`
	Name           string             `json:"name"`
	CompletionDate *time.Time         `json:"completion_date,omitempty"`
}

// ProjectDTOFrom maps a project entity to its DTO. Returns nil for nil.
func ProjectDTOFrom(project *entities.Project) *ProjectDTO {
	if project == nil {
		return nil
	}
	return &ProjectDTO{
		ID:             project.ID,
		Name:           project.Name,
		CompletionDate: project.CompletionDate,
	}
}
