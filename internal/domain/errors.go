// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPlan is returned when a subscription plan is not recognised.
	ErrInvalidPlan = errors.New("invalid subscription plan")

	// ErrInvalidIdeaStatus is returned when an idea status is not valid.
	ErrInvalidIdeaStatus = errors.New("invalid idea status")

	// ErrInvalidIdeaSource is returned when an idea source is not valid.
	ErrInvalidIdeaSource = errors.New("invalid idea source")

	// ErrInvalidContentType is returned when a generation content type is not valid.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
