package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studytracker/core/internal/application/services"
	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/infrastructure/logger"
)

// TimerHandler handles the study timer
type TimerHandler struct {
	timerService *services.TimerService
	logger       *logger.Logger
}

// NewTimerHandler creates a new timer handler
func NewTimerHandler(timerService *services.TimerService, logger *logger.Logger) *TimerHandler {
	return &TimerHandler{
		timerService: timerService,
		logger:       logger,
	}
}

type startTimerRequest struct {
	TaskID int64 `json:"taskId" validate:"required"`
}

// StartTimer starts a countdown for a task
func (h *TimerHandler) StartTimer(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req startTimerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.timerService.Start(c.Request().Context(), userID, req.TaskID)
	if err != nil {
		if errors.Is(err, entities.ErrTimerActive) {
			return echo.NewHTTPError(http.StatusConflict, "A timer is already running")
		}
		if errors.Is(err, entities.ErrTaskCompleted) {
			return echo.NewHTTPError(http.StatusConflict, "Task is already completed")
		}
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Error("Start timer failed", "error", err, "user_id", userID, "task_id", req.TaskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start timer")
	}

	return c.JSON(http.StatusOK, state)
}

// PauseTimer suspends the countdown
func (h *TimerHandler) PauseTimer(c echo.Context) error {
	return c.JSON(http.StatusOK, h.timerService.Pause(getUserIDFromContext(c)))
}

// ResumeTimer continues a paused countdown
func (h *TimerHandler) ResumeTimer(c echo.Context) error {
	return c.JSON(http.StatusOK, h.timerService.Resume(getUserIDFromContext(c)))
}

// StopTimer abandons the countdown without completing the task
func (h *TimerHandler) StopTimer(c echo.Context) error {
	return c.JSON(http.StatusOK, h.timerService.Stop(getUserIDFromContext(c)))
}

// TimerState reports the current countdown state
func (h *TimerHandler) TimerState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.timerService.State(getUserIDFromContext(c)))
}
