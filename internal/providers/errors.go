package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// FailureClass tags a completion call failure for retry decisions.
type FailureClass string

const (
	// FailureTransient marks failures expected to potentially succeed on
	// retry: connection errors, timeouts, temporary unavailability.
	FailureTransient FailureClass = "transient"

	// FailurePermanent marks failures that retrying will not fix: malformed
	// requests, unknown models, authentication failures.
	FailurePermanent FailureClass = "permanent"
)

// CallError is a classified failure from a completion client. Every error a
// client surfaces carries one, so callers can decide whether to retry without
// inspecting provider-specific details.
type CallError struct {
	Class      FailureClass
	StatusCode int // zero when the failure was not an HTTP response
	Err        error
}

func (e *CallError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s completion failure (status %d): %v", e.Class, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s completion failure: %v", e.Class, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Transient wraps err as a retryable call failure.
func Transient(err error) *CallError {
	return &CallError{Class: FailureTransient, Err: err}
}

// Permanent wraps err as a non-retryable call failure.
func Permanent(err error) *CallError {
	return &CallError{Class: FailurePermanent, Err: err}
}

// StatusError wraps an HTTP error response, classified by status code.
func StatusError(status int, err error) *CallError {
	return &CallError{Class: ClassifyStatus(status), StatusCode: status, Err: err}
}

// ClassifyStatus maps an HTTP status code to a failure class. Server errors,
// timeouts and rate limits are worth retrying; client errors are not.
func ClassifyStatus(status int) FailureClass {
	switch {
	case status == http.StatusRequestTimeout,
		status == http.StatusTooManyRequests,
		status >= http.StatusInternalServerError:
		return FailureTransient
	default:
		return FailurePermanent
	}
}

// IsTransient reports whether err is a classified transient call failure.
// Unclassified errors are treated as permanent so they are never retried
// blindly.
func IsTransient(err error) bool {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Class == FailureTransient
	}
	return false
}
