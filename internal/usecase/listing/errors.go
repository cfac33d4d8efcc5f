package listing

import (
	"errors"
	"fmt"
)

// Sentinel errors for listing operations.
var (
	// ErrNoScope indicates an operation that needs a current scope was
	// called before any loadInitial.
	ErrNoScope = errors.New("no scope loaded")

	// ErrBusy indicates the scope already has an operation in flight.
	// Callers treat it as "ignore this tap", not a failure.
	ErrBusy = errors.New("operation already in progress")
)

// NetworkError indicates connectivity failure or timeout while fetching.
// Recoverable: safe to retry on the next user action.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError indicates the backend answered with a non-2xx status.
// Surfaced to the UI as a message, never auto-retried.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d", e.Status)
}

// DecodeError indicates the response body matched none of the known
// product-list shapes. Surfaced as "failed to load", never a crash.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode error: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// classify maps a fetch error onto its metrics label.
func classify(err error) string {
	var netErr *NetworkError
	var srvErr *ServerError
	switch {
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &srvErr):
		return "server"
	default:
		return "decode"
	}
}
