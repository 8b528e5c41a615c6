package tasks

import (
	"errors"

	"agency-tracker-api/internal/models"
)

var (
	// ErrNotFound is returned when the requested task does not exist.
	ErrNotFound = errors.New("task not found")

	// ErrForbidden is returned when the caller may not act on the task.
	ErrForbidden = errors.New("no permission for this task")
)

// ValidationError reports invalid or missing input. Handlers map it to a 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// Caller identifies the authenticated user performing an operation.
type Caller struct {
	ID   string
	Role models.UserRole
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}
