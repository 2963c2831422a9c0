package common

import "github.com/pkg/errors"

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrNoDB       = errors.New("db not initialized")
)

// Wrap attaches a human-readable message to one of the sentinel errors above.
// The message is what handlers return to the client.
func Wrap(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Message returns the client facing message of err if it carries one.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.msg, true
	}
	return "", false
}
