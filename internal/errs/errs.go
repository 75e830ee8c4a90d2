package errs

import "errors"

type Code string

const (
	CodeInvalid      Code = "invalid"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
)

// Error is the single categorized failure every caller-facing operation
// returns. Store I/O errors are not wrapped into it; they propagate as-is.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func Invalid(msg string) error      { return &Error{Code: CodeInvalid, Message: msg} }
func Unauthorized(msg string) error { return &Error{Code: CodeUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &Error{Code: CodeForbidden, Message: msg} }
func NotFound(msg string) error     { return &Error{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) error     { return &Error{Code: CodeConflict, Message: msg} }

// As unwraps err into a coded *Error if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err is a coded error with the given code.
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
