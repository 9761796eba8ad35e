package manager

import (
	"errors"
	"net/http"
)

// modelNotFoundError signals that the model artifact does not exist.
type modelNotFoundError struct{ path string }

func (e modelNotFoundError) Error() string { return "model not found: " + e.path }

// ErrModelNotFound returns an error for a missing model artifact.
func ErrModelNotFound(path string) error { return modelNotFoundError{path: path} }

// IsModelNotFound reports whether err indicates a missing model artifact.
func IsModelNotFound(err error) bool {
	var e modelNotFoundError
	return errors.As(err, &e)
}

// loadFailureError signals that the runtime rejected the artifact.
type loadFailureError struct {
	path string
	err  error
}

func (e loadFailureError) Error() string { return "load model " + e.path + ": " + e.err.Error() }
func (e loadFailureError) Unwrap() error { return e.err }

// ErrLoadFailure wraps cause as a model load failure for path.
func ErrLoadFailure(path string, cause error) error { return loadFailureError{path: path, err: cause} }

// IsLoadFailure reports whether err indicates the model could not be loaded.
func IsLoadFailure(err error) bool {
	var e loadFailureError
	return errors.As(err, &e)
}

type emptyConversationError struct{}

func (emptyConversationError) Error() string   { return "conversation cannot be empty" }
func (emptyConversationError) StatusCode() int { return http.StatusUnprocessableEntity }

// ErrEmptyConversation is returned by Stream for a conversation without messages.
func ErrEmptyConversation() error { return emptyConversationError{} }

// IsEmptyConversation reports whether err is an empty-conversation rejection.
func IsEmptyConversation(err error) bool {
	var e emptyConversationError
	return errors.As(err, &e)
}

// generationFailureError wraps an error raised by the runtime mid-stream.
type generationFailureError struct{ err error }

func (e generationFailureError) Error() string { return "generation failed: " + e.err.Error() }
func (e generationFailureError) Unwrap() error { return e.err }

// IsGenerationFailure reports whether err was raised during generation.
func IsGenerationFailure(err error) bool {
	var e generationFailureError
	return errors.As(err, &e)
}

// dependencyUnavailableError signals a missing external dependency (e.g., llama.cpp)
// so the HTTP layer can return 503 Service Unavailable instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string   { return e.msg }
func (e dependencyUnavailableError) StatusCode() int { return http.StatusServiceUnavailable }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}
