package http

import (
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext extracts the authenticated user ID set by the auth middleware
func getUserIDFromContext(c echo.Context) int64 {
	user := c.Get("user")
	if user == nil {
		return 0
	}

	if id, ok := user.(int64); ok {
		return id
	}
	return 0
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
