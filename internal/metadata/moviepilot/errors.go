package moviepilot

import (
	"errors"
	"fmt"
)

// Sentinel errors for MoviePilot API operations.
var (
	ErrNotFound     = errors.New("moviepilot: not found")
	ErrUnauthorized = errors.New("moviepilot: unauthorized")
	ErrServer       = errors.New("moviepilot: server error")
	ErrNotLoggedIn  = errors.New("moviepilot: not logged in")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op  string // Operation: "login", "subscriptions", "episodes", "movieInfo"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("moviepilot %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op string, err error) error {
	return &Error{Op: op, Err: err}
}
