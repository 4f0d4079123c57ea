package jellyfin

import (
	"errors"
	"fmt"
)

// Sentinel errors for Jellyfin API operations.
var (
	ErrNotFound     = errors.New("jellyfin: not found")
	ErrUnauthorized = errors.New("jellyfin: unauthorized")
	ErrServer       = errors.New("jellyfin: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op   string // Operation: "searchItem", "itemDetails", "primaryImage", "userName"
	Item string // Item or user identifier, if applicable
	Err  error
}

func (e *Error) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("jellyfin %s [%s]: %v", e.Op, e.Item, e.Err)
	}
	return fmt.Sprintf("jellyfin %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, item string, err error) error {
	return &Error{Op: op, Item: item, Err: err}
}
