package services

import (
	"context"
	"fmt"

	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
	"github.com/bettercode/todo-tasks/internal/ports"
)

// deletionPageSize is how many of the deleted project's tasks are processed
// per repository round trip. The handler pages until every task is handled.
const deletionPageSize = 100

// ProjectDeletedHandler reacts to ProjectDeleted. Forced deletions cascade
// to the project's tasks; non-forced deletions move them to the inbox. The
// reaction is stateless and best-effort: one task's failure does not roll
// back the others, and re-running it after the tasks are gone is a no-op.
type ProjectDeletedHandler struct {
	tasks          ports.TaskRepository
	tasksQuery     *TasksQueryService
	projectService *ProjectService
	assignment     *ProjectAssignmentService
	logger         *logger.Logger
}

// NewProjectDeletedHandler creates a new project deletion reaction.
func NewProjectDeletedHandler(tasks ports.TaskRepository, tasksQuery *TasksQueryService, projectService *ProjectService, assignment *ProjectAssignmentService, logger *logger.Logger) *ProjectDeletedHandler {
	return &ProjectDeletedHandler{
		tasks:          tasks,
		tasksQuery:     tasksQuery,
		projectService: projectService,
		assignment:     assignment,
		logger:         logger,
	}
}

// Handle enumerates the deleted project's tasks page by page and either
// deletes or reassigns each one. Processing a task removes it from the
// queried set, so the handler re-reads the first page until it comes back
// empty; a page where nothing could be processed ends the loop so tasks
// stuck in a non-reassignable state cannot spin it forever.
func (h *ProjectDeletedHandler) Handle(ctx context.Context, event events.ProjectDeleted) error {
	for {
		page, err := h.tasksQuery.FindAllForProject(ctx, pagination.Request{Size: deletionPageSize}, event.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to enumerate tasks of deleted project: %w", err)
		}
		if len(page.Items) == 0 {
			return nil
		}

		processed := 0
		for _, task := range page.Items {
			if event.Forced {
				if err := h.tasks.Delete(ctx, task.ID); err != nil {
					h.logger.Warn("Failed to cascade task deletion", "task_id", task.ID, "error", err)
					continue
				}
				processed++
				continue
			}

			inbox, err := h.projectService.GetInboxProject(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve inbox for reassignment: %w", err)
			}

			result, err := h.assignment.Assign(ctx, task.ID, inbox.ID)
			if err != nil {
				return fmt.Errorf("failed to reassign task %s: %w", task.ID, err)
			}
			if result.Failed() {
				h.logger.Warn("Task not moved to inbox", "task_id", task.ID, "reason", result.Reason)
				continue
			}
			processed++
		}

		if processed == 0 {
			h.logger.Warn("Stopping project deletion reaction, no task could be processed",
				"project_id", event.ProjectID, "remaining", page.Total)
			return nil
		}
	}
}
