package delivery

import "errors"

var (
	// ErrUnauthorized indicates a rejected token or push key.
	ErrUnauthorized = errors.New("delivery: unauthorized")

	// ErrServer indicates an upstream 5xx or malformed response.
	ErrServer = errors.New("delivery: server error")

	// ErrRejected indicates the upstream accepted the request but
	// refused the payload.
	ErrRejected = errors.New("delivery: request rejected")
)

// Error wraps a delivery failure with the operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "delivery: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op string, err error) error {
	return &Error{Op: op, Err: err}
}
