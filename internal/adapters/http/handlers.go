package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/pagination"
)

const dueDateLayout = "2006-01-02"

// domainFailure translates a failed DomainResult into an HTTP error.
// Not-found reasons map to 404, every other rule violation to 400.
func domainFailure(result entities.DomainResult) error {
	status := http.StatusBadRequest
	switch result.Reason {
	case entities.ReasonNoTaskWithGivenID, entities.ReasonNoProjectWithGivenID:
		status = http.StatusNotFound
	}
	return echo.NewHTTPError(status, result.Reason)
}

// pageRequest reads the page/size query parameters, falling back to the
// first page of the default size.
func pageRequest(c echo.Context) (pagination.Request, error) {
	req := pagination.Default()

	if pageStr := c.QueryParam("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			return req, echo.NewHTTPError(http.StatusBadRequest, "Invalid page parameter")
		}
		req.Page = page
	}

	if sizeStr := c.QueryParam("size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 {
			return req, echo.NewHTTPError(http.StatusBadRequest, "Invalid size parameter")
		}
		req.Size = size
	}

	return req, nil
}

func taskIDParam(c echo.Context, name string) (entities.TaskID, error) {
	id, err := entities.ParseTaskID(c.Param(name))
	if err != nil {
		return entities.TaskID{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}
	return id, nil
}

func projectIDParam(c echo.Context, name string) (entities.ProjectID, error) {
	id, err := entities.ParseProjectID(c.Param(name))
	if err != nil {
		return entities.ProjectID{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid project ID")
	}
	return id, nil
}

func parseDueDate(value string) (time.Time, error) {
	date, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid due date, expected YYYY-MM-DD")
	}
	return date, nil
}

// Request/Response types

type CreateTaskRequest struct {
	Name      string  `json:"name" validate:"required"`
	DueDate   *string `json:"due_date,omitempty"`
	ProjectID *string `json:"project_id,omitempty"`
}

type CreateProjectRequest struct {
	Name string `json:"name" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PaginatedResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

func paginated[T any](page pagination.Page[T]) PaginatedResponse[T] {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return PaginatedResponse[T]{
		Data:  items,
		Total: page.Total,
		Page:  page.Page,
		Size:  page.Size,
	}
}
