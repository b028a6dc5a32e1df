package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studytracker/core/internal/application/services"
	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/infrastructure/logger"
	"github.com/studytracker/core/internal/ports"
)

// SubjectHandler handles the user's subject list
type SubjectHandler struct {
	subjectService *services.SubjectService
	logger         *logger.Logger
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(subjectService *services.SubjectService, logger *logger.Logger) *SubjectHandler {
	return &SubjectHandler{
		subjectService: subjectService,
		logger:         logger,
	}
}

// ListSubjects returns the user's subjects
func (h *SubjectHandler) ListSubjects(c echo.Context) error {
	userID := getUserIDFromContext(c)

	subjects, err := h.subjectService.List(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("List subjects failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve subjects")
	}

	return c.JSON(http.StatusOK, subjects)
}

type addSubjectRequest struct {
	Label string `json:"label" validate:"required"`
}

// AddSubject appends a subject to the user's list
func (h *SubjectHandler) AddSubject(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req addSubjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subjects, err := h.subjectService.Add(c.Request().Context(), userID, req.Label)
	if err != nil {
		h.logger.Error("Add subject failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add subject")
	}

	return c.JSON(http.StatusCreated, subjects)
}

// RemoveSubject deletes a subject unless tasks still reference it
func (h *SubjectHandler) RemoveSubject(c echo.Context) error {
	userID := getUserIDFromContext(c)
	label := c.Param("label")

	subjects, err := h.subjectService.Remove(c.Request().Context(), userID, label)
	if err != nil {
		if errors.Is(err, entities.ErrSubjectInUse) {
			return echo.NewHTTPError(http.StatusConflict, "Subject is still referenced by tasks")
		}
		h.logger.Error("Remove subject failed", "error", err, "user_id", userID, "subject", label)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove subject")
	}

	return c.JSON(http.StatusOK, subjects)
}

// StudyAppHandler handles the user's study app shortcuts
type StudyAppHandler struct {
	appService *services.StudyAppService
	logger     *logger.Logger
}

// NewStudyAppHandler creates a new study app handler
func NewStudyAppHandler(appService *services.StudyAppService, logger *logger.Logger) *StudyAppHandler {
	return &StudyAppHandler{
		appService: appService,
		logger:     logger,
	}
}

// ListApps returns the user's study apps
func (h *StudyAppHandler) ListApps(c echo.Context) error {
	userID := getUserIDFromContext(c)

	apps, err := h.appService.List(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("List study apps failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve study apps")
	}

	return c.JSON(http.StatusOK, apps)
}

// AddApp registers a study app shortcut
func (h *StudyAppHandler) AddApp(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var form ports.StudyAppForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.appService.Add(c.Request().Context(), userID, form)
	if err != nil {
		h.logger.Error("Add study app failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add study app")
	}

	return c.JSON(http.StatusCreated, app)
}

// RemoveApp deletes a study app shortcut. The confirm query parameter must be true.
func (h *StudyAppHandler) RemoveApp(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	confirmed := c.QueryParam("confirm") == "true"

	if err := h.appService.Remove(c.Request().Context(), userID, id, confirmed); err != nil {
		if errors.Is(err, entities.ErrNotConfirmed) {
			return echo.NewHTTPError(http.StatusConflict, "Deletion requires confirmation")
		}
		if errors.Is(err, entities.ErrAppNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Study app not found")
		}
		h.logger.Error("Remove study app failed", "error", err, "user_id", userID, "app_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove study app")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Study app removed"})
}
