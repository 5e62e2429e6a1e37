package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/ideaflow-api/internal/store"
)

// Common service errors. Services return these sentinels for expected
// conditions and wrap everything else in IdeaServiceError; the API layer maps
// them to HTTP status codes.
var (
	// ErrNotOwned indicates a resource belongs to another user.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrIdeaNotFound indicates the idea does not exist.
	ErrIdeaNotFound = errors.New("idea not found")

	// ErrQuotaExceeded indicates the user used up today's generations.
	// API layer should map this to HTTP 429 Too Many Requests.
	ErrQuotaExceeded = errors.New("daily generation quota exceeded")

	// ErrInvalidCredentials is returned by authentication for an unknown email
	// or a wrong password, without telling the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidDateRange indicates a calendar range whose end precedes its start
	// or that spans more than MaxCalendarRange.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// IdeaServiceError wraps errors from the idea service with context.
type IdeaServiceError struct {
	// Operation is the operation that failed (e.g., "generate_idea", "schedule_idea")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for IdeaServiceError.
func (e *IdeaServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("idea service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("idea service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *IdeaServiceError) Unwrap() error {
	return e.Err
}

// NewIdeaServiceError wraps err with operation context. Service sentinels are
// returned unwrapped, and store.ErrIdeaNotFound becomes ErrIdeaNotFound.
func NewIdeaServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrIdeaNotFound), errors.Is(err, store.ErrIdeaNotFound):
		return ErrIdeaNotFound
	case errors.Is(err, ErrNotOwned):
		return ErrNotOwned
	case errors.Is(err, ErrQuotaExceeded):
		return ErrQuotaExceeded
	}

	return &IdeaServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
