package usecase

import "fmt"

type ErrorCode string

const (
	// ErrorStoreUnavailable means the primary store could not be reached.
	// The recorder falls back; read paths return empty results.
	ErrorStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// ErrorBackend means a store or inference service returned a structured error.
	ErrorBackend ErrorCode = "BACKEND_ERROR"
	// ErrorUnknown wraps any other failure with its description.
	ErrorUnknown ErrorCode = "UNKNOWN"
)

// Error is the component-boundary failure value. Operations catch every
// failure at their own boundary and render it into a result field; no error
// crosses a component boundary as a raised error.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
