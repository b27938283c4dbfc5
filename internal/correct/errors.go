package correct

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the input sentence is empty or whitespace.
var ErrEmptyInput = errors.New("input text is empty")

// ConnectivityError reports that every attempt to reach the completion
// service failed with a transient error. The boundary layer maps it to a
// service-unavailable condition.
type ConnectivityError struct {
	Attempts uint
	Err      error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("completion service unreachable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ServiceError reports a permanent upstream failure (unknown model, rejected
// request). Never retried.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service error: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// DecodeError reports that the service replied but no JSON object could be
// located in the reply. Not retried: the failure is in the content, not in
// reachability.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("reply contained no decodable JSON object: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SchemaError reports that the reply parsed as JSON but did not match the
// correction schema. Not retried.
type SchemaError struct {
	Raw string
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("reply did not match correction schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
