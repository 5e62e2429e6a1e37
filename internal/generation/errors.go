package generation

import "errors"

// Errors describing why a generation ended in the fallback. They never leave
// IdeaGenerator.Generate; they are reported through Outcome.FallbackReason.
var (
	// ErrNoCredential is reported when no completion client is configured.
	ErrNoCredential = errors.New("no completion credential configured")

	// ErrCompletionFailed wraps transport and service errors from the client.
	ErrCompletionFailed = errors.New("completion request failed")

	// ErrEmptyResponse is reported when the service answers without content.
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrInvalidResponse is reported when the answer is not a JSON object.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrIncompleteResponse is reported when the JSON object lacks a title or
	// an outline.
	ErrIncompleteResponse = errors.New("incomplete response from language model")
)

// Reason returns a short, stable label for a fallback reason, suitable for
// metric labels and logs. A nil error yields "".
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoCredential):
		return "no_credential"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, ErrIncompleteResponse):
		return "incomplete_response"
	default:
		return "completion_failed"
	}
}
