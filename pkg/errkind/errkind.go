// Package errkind classifies the errors returned by httpkit packages.
//
// Every package exposes precise sentinel errors. Each of them wraps exactly one
// of the kinds below so callers can match either the concrete failure or its
// category:
//
//	if errors.Is(err, cookie.ErrEmptyName) { ... }
//	if errors.Is(err, errkind.ErrInvalidArgument) { ... }
package errkind

import "errors"

var (
	// ErrInvalidArgument reports malformed input at construction or assignment time.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrLogic reports a lifecycle precondition violated by the caller.
	ErrLogic = errors.New("logic error")
	// ErrRuntime reports a precondition that is not met at the time of the call.
	ErrRuntime = errors.New("runtime error")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// New returns a sentinel error with the given message that matches kind via errors.Is.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Is reports whether err belongs to kind. It is a shorthand for errors.Is.
func Is(err, kind error) bool {
	return errors.Is(err, kind)
}
