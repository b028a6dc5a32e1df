package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAppNotFound        = errors.New("study app not found")
	ErrNoActiveUser       = errors.New("no active user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrSubjectInUse       = errors.New("cannot remove subject that has associated tasks")
	ErrNotConfirmed       = errors.New("destructive action not confirmed")
	ErrTimerActive        = errors.New("a study timer is already running")
	ErrTaskCompleted      = errors.New("task is already completed")
)

// Priority is the task priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultEstimatedMinutes is applied when the task form leaves the
// estimated time empty.
const DefaultEstimatedMinutes = 30

// User represents a local account. The password is stored as entered;
// the storage format keeps credentials plaintext.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sanitized returns a copy safe to hand to the presentation layer.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// Task represents a single study task. Field names mirror the persisted
// JSON blobs, so a stored collection round-trips unchanged.
type Task struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Subject       string     `json:"subject"`
	Priority      Priority   `json:"priority"`
	EstimatedTime int        `json:"estimatedTime"`
	DueDate       string     `json:"dueDate"`
	Description   string     `json:"description"`
	Tags          []string   `json:"tags"`
	RelatedApp    string     `json:"relatedApp"`
	Completed     bool       `json:"completed"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt"`
	TimeSpent     int        `json:"timeSpent"`
}

// StudyApp is an external study resource a task may link to.
type StudyApp struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// dueDateLayouts covers the formats the due-date field is entered and
// stored in: full RFC 3339, the datetime-local form value, and a bare date.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDueDate parses a stored due-date string. ok is false for an empty
// or unparseable value.
func ParseDueDate(s string) (t time.Time, ok bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// DueTime returns the parsed due date, if the task has a valid one.
func (t *Task) DueTime() (time.Time, bool) {
	return ParseDueDate(t.DueDate)
}

// IsOverdue reports whether the task is past due and still pending.
func (t *Task) IsOverdue(now time.Time) bool {
	due, ok := t.DueTime()
	if !ok {
		return false
	}
	return due.Before(now) && !t.Completed
}

// MarkCompleted forces the task into the completed state.
func (t *Task) MarkCompleted(now time.Time) {
	t.Completed = true
	t.CompletedAt = &now
}

// ToggleCompletion flips the completion state, keeping completedAt in
// sync: set on the pending-to-completed edge, cleared on the reverse.
func (t *Task) ToggleCompletion(now time.Time) {
	if t.Completed {
		t.Completed = false
		t.CompletedAt = nil
		return
	}
	t.MarkCompleted(now)
}

// StripBlankTags removes empty and whitespace-only tag entries, keeping
// order.
func (t *Task) StripBlankTags() {
	kept := t.Tags[:0]
	for _, tag := range t.Tags {
		if strings.TrimSpace(tag) != "" {
			kept = append(kept, tag)
		}
	}
	t.Tags = kept
	if len(t.Tags) == 0 {
		t.Tags = []string{}
	}
}

// Rank orders priorities for sorting: high > medium > low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
