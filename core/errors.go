package core

import "github.com/pkg/errors"

// FieldError addresses a failure to a single struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries field-addressed failures to the caller; an
// empty Fields slice means the error concerns the payload as a whole.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdownError marks a failure the process should not outlive, such as
// a store that can no longer persist. The API server's error handler
// drains and exits when one escapes a request.
type shutdownError struct {
	msg string
}

func NewShutdownError(msg string) error {
	return &shutdownError{msg: msg}
}

func (s shutdownError) Error() string { return s.msg }

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdownError)
	return ok
}
