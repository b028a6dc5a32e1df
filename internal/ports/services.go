package ports

import (
	"github.com/studytracker/core/internal/domain/entities"
)

// SignupRequest carries the signup form fields.
type SignupRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Password        string `json:"password" validate:"required,min=1"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful login or signup.
type AuthResponse struct {
	Token          string        `json:"token"`
	ExpiresIn      int64         `json:"expires_in"`
	User           entities.User `json:"user"`
	ShowOnboarding bool          `json:"show_onboarding"`
}

// Claims is the validated session token payload.
type Claims struct {
	UserID   int64
	Username string
}

// TaskForm carries the user-editable task fields for create and update.
// EstimatedTime zero means "left empty" and defaults on create; a given
// value must stay inside the editor range.
type TaskForm struct {
	Title         string            `json:"title" validate:"required"`
	Subject       string            `json:"subject" validate:"required"`
	Priority      entities.Priority `json:"priority" validate:"required,oneof=low medium high"`
	EstimatedTime int               `json:"estimatedTime" validate:"omitempty,min=5,max=480"`
	DueDate       string            `json:"dueDate"`
	Description   string            `json:"description"`
	Tags          []string          `json:"tags"`
	RelatedApp    string            `json:"relatedApp"`
}

// StudyAppForm carries the study app form fields.
type StudyAppForm struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
}

// TimerState is a snapshot of a user's study timer. CompletedTaskID holds
// the task finished by the most recent expiry until the next Start, so the
// presentation layer can surface the completion notification.
type TimerState struct {
	ActiveTaskID     int64 `json:"active_task_id"`
	MinutesRemaining int   `json:"minutes_remaining"`
	SecondsRemaining int   `json:"seconds_remaining"`
	Running          bool  `json:"running"`
	CompletedTaskID  int64 `json:"completed_task_id,omitempty"`
}
