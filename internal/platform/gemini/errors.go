package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrMissingAPIKey is returned by NewClient when no API key is configured.
	ErrMissingAPIKey = errors.New("gemini API key cannot be empty")

	// ErrNoCandidates is returned when the API answers without any candidate.
	ErrNoCandidates = errors.New("gemini response contained no candidates")

	// ErrContentBlocked is returned when the prompt or the answer was blocked
	// by the API's safety filters.
	ErrContentBlocked = errors.New("gemini blocked the content")
)
