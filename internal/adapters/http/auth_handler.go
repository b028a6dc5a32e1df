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

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Signup handles account creation
func (h *AuthHandler) Signup(c echo.Context) error {
	var req ports.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Signup(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrPasswordMismatch) {
			return echo.NewHTTPError(http.StatusBadRequest, "Passwords do not match")
		}
		if errors.Is(err, entities.ErrUsernameTaken) {
			return echo.NewHTTPError(http.StatusConflict, "Username already taken")
		}
		h.logger.Error("Signup failed", "error", err, "username", req.Username)
		return echo.NewHTTPError(http.StatusInternalServerError, "Signup failed")
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			h.logger.LogSecurityEvent("invalid_credentials", req.Username, c.RealIP(), nil)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
		}
		h.logger.Error("Login failed", "error", err, "username", req.Username)
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed")
	}

	return c.JSON(http.StatusOK, response)
}

// Logout handles user logout
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		h.logger.Error("Logout failed", "error", err, "user_id", getUserIDFromContext(c))
		return echo.NewHTTPError(http.StatusInternalServerError, "Logout failed")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me returns the active user
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.CurrentUser(c.Request().Context())
	if err != nil {
		if errors.Is(err, entities.ErrNoActiveUser) {
			return echo.NewHTTPError(http.StatusUnauthorized, "No active session")
		}
		h.logger.Error("Get current user failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve user")
	}

	return c.JSON(http.StatusOK, user.Sanitized())
}
