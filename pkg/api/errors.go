package api

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode indicates an event payload could not be decoded; the event is dropped
	ErrDecode = errors.New("malformed event payload")

	// ErrUnknownKind indicates an event of a kind this client does not know; the event is dropped silently
	ErrUnknownKind = errors.New("unknown event kind")

	// ErrUnknownScope indicates an event references a repository or build that is not present locally
	ErrUnknownScope = errors.New("event refers to unknown repository or build")

	// ErrTransport indicates the connection to the ci server failed
	ErrTransport = errors.New("transport error")

	// ErrSessionNotFound indicates a dashboard session does not exist or has expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions indicates the maximum number of dashboard sessions has been reached
	ErrTooManySessions = errors.New("too many sessions")

	// ErrNoViewOpen indicates an operation requires an open view
	ErrNoViewOpen = errors.New("no view open")
)

// ApplicationError is an error returned by the ci server for a query or mutation
type ApplicationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%v: %v", e.Code, e.Message)
}

// IsUserError returns true if the ci server blamed the request rather than itself
func (e *ApplicationError) IsUserError() bool {
	return e.Code == "userError" || e.Code == "user:error" || e.IsNotFound()
}

// IsNotFound returns true if the requested entity does not exist
func (e *ApplicationError) IsNotFound() bool {
	return e.Code == "notFound" || e.Code == "user:notFound"
}

// AsApplicationError returns the wrapped ApplicationError if err carries one
func AsApplicationError(err error) (*ApplicationError, bool) {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
