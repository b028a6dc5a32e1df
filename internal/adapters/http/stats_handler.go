package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studytracker/core/internal/application/services"
	"github.com/studytracker/core/internal/domain/views"
	"github.com/studytracker/core/internal/infrastructure/logger"
)

// StatsHandler serves the derived dashboard views
type StatsHandler struct {
	taskService    *services.TaskService
	subjectService *services.SubjectService
	logger         *logger.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(taskService *services.TaskService, subjectService *services.SubjectService, logger *logger.Logger) *StatsHandler {
	return &StatsHandler{
		taskService:    taskService,
		subjectService: subjectService,
		logger:         logger,
	}
}

// GetStats returns the headline task counters
func (h *StatsHandler) GetStats(c echo.Context) error {
	userID := getUserIDFromContext(c)

	tasks, err := h.taskService.List(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Compute stats failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute stats")
	}

	return c.JSON(http.StatusOK, views.Compute(tasks, time.Now()))
}

// GetSubjectStats returns per-subject completion progress
func (h *StatsHandler) GetSubjectStats(c echo.Context) error {
	userID := getUserIDFromContext(c)
	ctx := c.Request().Context()

	tasks, err := h.taskService.List(ctx, userID)
	if err != nil {
		h.logger.Error("Compute subject stats failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute subject stats")
	}

	subjects, err := h.subjectService.List(ctx, userID)
	if err != nil {
		h.logger.Error("Compute subject stats failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute subject stats")
	}

	return c.JSON(http.StatusOK, views.SubjectProgress(tasks, subjects))
}

// GetActivity returns the most recently completed tasks
func (h *StatsHandler) GetActivity(c echo.Context) error {
	userID := getUserIDFromContext(c)

	limit := 5
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
		}
		limit = n
	}

	tasks, err := h.taskService.List(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Compute activity failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute activity")
	}

	return c.JSON(http.StatusOK, views.RecentActivity(tasks, limit))
}

// GetInsights returns the study summary figures
func (h *StatsHandler) GetInsights(c echo.Context) error {
	userID := getUserIDFromContext(c)

	tasks, err := h.taskService.List(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Compute insights failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute insights")
	}

	return c.JSON(http.StatusOK, views.Insights(tasks, time.Now()))
}
