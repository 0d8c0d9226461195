package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bettercode/todo-tasks/internal/application/services"
	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	tasks  *services.TasksFacade
	clock  entities.Clock
	logger *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks *services.TasksFacade, clock entities.Clock, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// CreateTask handles task creation. Tasks land in the inbox unless the
// request names a project.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dto := services.TaskDTO{ID: entities.NewTaskID(), Name: req.Name}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return err
		}
		dto.DueDate = &dueDate
	}

	if req.ProjectID != nil {
		projectID, err := entities.ParseProjectID(*req.ProjectID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid project ID")
		}

		created, result, err := h.tasks.AddToProject(c.Request().Context(), dto, projectID)
		if err != nil {
			h.logger.Error("Create task failed", "error", err, "project_id", projectID)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
		}
		if result.Failed() {
			return domainFailure(result)
		}
		return c.JSON(http.StatusCreated, created)
	}

	result, err := h.tasks.Add(c.Request().Context(), dto)
	if err != nil {
		h.logger.Error("Create task failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
	}
	if result.Failed() {
		return domainFailure(result)
	}

	created, err := h.tasks.Get(c.Request().Context(), dto.ID)
	if err != nil {
		h.logger.Error("Load created task failed", "error", err, "task_id", dto.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
	}

	return c.JSON(http.StatusCreated, created)
}

// GetTask handles getting a task by ID
func (h *TaskHandler) GetTask(c echo.Context) error {
	taskID, err := taskIDParam(c, "id")
	if err != nil {
		return err
	}

	task, err := h.tasks.Get(c.Request().Context(), taskID)
	if err != nil {
		h.logger.Error("Get task failed", "error", err, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve task")
	}
	if task == nil {
		return echo.NewHTTPError(http.StatusNotFound, entities.ReasonNoTaskWithGivenID)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles task deletion
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	taskID, err := taskIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), taskID); err != nil {
		h.logger.Error("Delete task failed", "error", err, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task")
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteTask marks a task as done
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	taskID, err := taskIDParam(c, "id")
	if err != nil {
		return err
	}

	result, err := h.tasks.Complete(c.Request().Context(), taskID, h.clock)
	if err != nil {
		h.logger.Error("Complete task failed", "error", err, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to complete task")
	}
	if result.Failed() {
		return domainFailure(result)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task completed"})
}

// ReopenTask clears a task's completion
func (h *TaskHandler) ReopenTask(c echo.Context) error {
	taskID, err := taskIDParam(c, "id")
	if err != nil {
		return err
	}

	result, err := h.tasks.Reopen(c.Request().Context(), taskID, h.clock)
	if err != nil {
		h.logger.Error("Reopen task failed", "error", err, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reopen task")
	}
	if result.Failed() {
		return domainFailure(result)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task reopened"})
}

// AssignTask moves a task into a project
func (h *TaskHandler) AssignTask(c echo.Context) error {
	taskID, err := taskIDParam(c, "id")
	if err != nil {
		return err
	}

	projectID, err := projectIDParam(c, "projectId")
	if err != nil {
		return err
	}

	result, err := h.tasks.AssignToProject(c.Request().Context(), taskID, projectID)
	if err != nil {
		h.logger.Error("Assign task failed", "error", err, "task_id", taskID, "project_id", projectID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to assign task")
	}
	if result.Failed() {
		return domainFailure(result)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task assigned"})
}

// ListTasks handles listing tasks. Open tasks by default; the completed,
// no_due_date and due_date query parameters select the other views.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	req, err := pageRequest(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	switch {
	case c.QueryParam("completed") == "true":
		page, err := h.tasks.GetAllCompleted(ctx, req)
		if err != nil {
			h.logger.Error("List completed tasks failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
		}
		return c.JSON(http.StatusOK, paginated(page))

	case c.QueryParam("no_due_date") == "true":
		page, err := h.tasks.GetAllWithoutDueDate(ctx, req)
		if err != nil {
			h.logger.Error("List undated tasks failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
		}
		return c.JSON(http.StatusOK, paginated(page))

	case c.QueryParam("due_date") != "":
		dueDate, err := parseDueDate(c.QueryParam("due_date"))
		if err != nil {
			return err
		}
		page, err := h.tasks.GetTasksDueDate(ctx, req, dueDate)
		if err != nil {
			h.logger.Error("List due tasks failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
		}
		return c.JSON(http.StatusOK, paginated(page))

	default:
		page, err := h.tasks.GetAllOpen(ctx, req)
		if err != nil {
			h.logger.Error("List open tasks failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
		}
		return c.JSON(http.StatusOK, paginated(page))
	}
}

// ListInboxTasks lists the open tasks of the inbox project
func (h *TaskHandler) ListInboxTasks(c echo.Context) error {
	req, err := pageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.tasks.GetOpenInboxTasks(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("List inbox tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
	}

	return c.JSON(http.StatusOK, paginated(page))
}
