package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/studytracker/core/internal/application/services"
	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/domain/views"
	"github.com/studytracker/core/internal/infrastructure/logger"
	"github.com/studytracker/core/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns the user's tasks, filtered and sorted by query parameters
func (h *TaskHandler) ListTasks(c echo.Context) error {
	userID := getUserIDFromContext(c)

	tasks, err := h.taskService.List(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("List tasks failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
	}

	q := views.Query{
		Search:   c.QueryParam("search"),
		Subject:  c.QueryParam("subject"),
		Priority: c.QueryParam("priority"),
		Status:   c.QueryParam("status"),
		SortBy:   c.QueryParam("sortBy"),
	}

	return c.JSON(http.StatusOK, views.Apply(tasks, q))
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var form ports.TaskForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), userID, form)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidPriority) {
			return echo.NewHTTPError(http.StatusBadRequest, "Priority must be low, medium or high")
		}
		h.logger.Error("Create task failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask returns a single task by ID
func (h *TaskHandler) GetTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Error("Get task failed", "error", err, "user_id", userID, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve task")
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles editing a task's user-editable fields
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var form ports.TaskForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Update(c.Request().Context(), userID, id, form)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		if errors.Is(err, entities.ErrInvalidPriority) {
			return echo.NewHTTPError(http.StatusBadRequest, "Priority must be low, medium or high")
		}
		h.logger.Error("Update task failed", "error", err, "user_id", userID, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update task")
	}

	return c.JSON(http.StatusOK, task)
}

// ToggleTask flips a task's completion state
func (h *TaskHandler) ToggleTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleCompletion(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Error("Toggle task failed", "error", err, "user_id", userID, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle task")
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task. The confirm query parameter must be true.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	confirmed := c.QueryParam("confirm") == "true"

	if err := h.taskService.Delete(c.Request().Context(), userID, id, confirmed); err != nil {
		if errors.Is(err, entities.ErrNotConfirmed) {
			return echo.NewHTTPError(http.StatusConflict, "Deletion requires confirmation")
		}
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Error("Delete task failed", "error", err, "user_id", userID, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}
