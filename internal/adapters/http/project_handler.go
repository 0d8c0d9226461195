package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bettercode/todo-tasks/internal/application/services"
	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
)

// ProjectHandler handles project-related requests
type ProjectHandler struct {
	projects *services.ProjectsFacade
	tasks    *services.TasksFacade
	logger   *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *services.ProjectsFacade, tasks *services.TasksFacade, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		tasks:    tasks,
		logger:   logger,
	}
}

// CreateProject handles project creation
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projects.AddProject(c.Request().Context(), req.Name)
	if err != nil {
		h.logger.Error("Create project failed", "error", err, "name", req.Name)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create project")
	}

	return c.JSON(http.StatusCreated, project)
}

// GetProject handles getting a project by ID
func (h *ProjectHandler) GetProject(c echo.Context) error {
	projectID, err := projectIDParam(c, "id")
	if err != nil {
		return err
	}

	project, err := h.projects.GetProject(c.Request().Context(), projectID)
	if err != nil {
		h.logger.Error("Get project failed", "error", err, "project_id", projectID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve project")
	}
	if project == nil {
		return echo.NewHTTPError(http.StatusNotFound, entities.ReasonNoProjectWithGivenID)
	}

	return c.JSON(http.StatusOK, project)
}

// ListProjects handles listing all projects
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	req, err := pageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.projects.GetProjects(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("List projects failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve projects")
	}

	return c.JSON(http.StatusOK, paginated(page))
}

// GetInbox returns the inbox project, creating it on first access
func (h *ProjectHandler) GetInbox(c echo.Context) error {
	inbox, err := h.projects.GetInbox(c.Request().Context())
	if err != nil {
		h.logger.Error("Get inbox failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve inbox")
	}

	return c.JSON(http.StatusOK, inbox)
}

// DeleteProject removes a project. With forced=true its tasks are deleted
// as well, otherwise they move to the inbox.
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	projectID, err := projectIDParam(c, "id")
	if err != nil {
		return err
	}

	forced := c.QueryParam("forced") == "true"

	if err := h.projects.DeleteProject(c.Request().Context(), projectID, forced); err != nil {
		h.logger.Error("Delete project failed", "error", err, "project_id", projectID, "forced", forced)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete project")
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteProject marks a project as done
func (h *ProjectHandler) CompleteProject(c echo.Context) error {
	projectID, err := projectIDParam(c, "id")
	if err != nil {
		return err
	}

	result, err := h.projects.CompleteProject(c.Request().Context(), projectID)
	if err != nil {
		h.logger.Error("Complete project failed", "error", err, "project_id", projectID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to complete project")
	}
	if result.Failed() {
		return domainFailure(result)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Project completed"})
}

// ReopenProject clears a project's completion
func (h *ProjectHandler) ReopenProject(c echo.Context) error {
	projectID, err := projectIDParam(c, "id")
	if err != nil {
		return err
	}

	result, err := h.projects.ReopenProject(c.Request().Context(), projectID)
	if err != nil {
		h.logger.Error("Reopen project failed", "error", err, "project_id", projectID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reopen project")
	}
	if result.Failed() {
		return domainFailure(result)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Project reopened"})
}

// GetProjectTasks lists the tasks of a project
func (h *ProjectHandler) GetProjectTasks(c echo.Context) error {
	projectID, err := projectIDParam(c, "id")
	if err != nil {
		return err
	}

	req, err := pageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.tasks.GetTasksForProject(c.Request().Context(), req, projectID)
	if err != nil {
		h.logger.Error("List project tasks failed", "error", err, "project_id", projectID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
	}

	return c.JSON(http.StatusOK, paginated(page))
}
