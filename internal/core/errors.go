package core

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map each kind to one HTTP status.
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// Error is a classified failure with a message meant for API clients.
type Error struct {
	Kind    error
	Message string
	// Details is attached to the response for diagnostics.
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func invalid(msg string) error {
	return &Error{Kind: ErrInvalidRequest, Message: msg}
}

func notFound(msg string, err error) error {
	return &Error{Kind: ErrNotFound, Message: msg, Err: err}
}

func forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Message: msg}
}

// storeFailure attaches err's text as details, the way clients used to see it.
func storeFailure(msg string, err error) error {
	return &Error{Kind: ErrStoreUnavailable, Message: msg, Details: err.Error(), Err: err}
}
