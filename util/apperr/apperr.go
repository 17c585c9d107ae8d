// util/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies every failure the services can surface. Controllers map
// codes to HTTP statuses; services never return raw sql errors to callers.
type Code string

const (
	CodeNotFound        Code = "NOT_FOUND"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeConflict        Code = "CONFLICT"
)

type Error struct {
	code Code
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Code() Code    { return e.code }

func New(code Code, msg string) *Error { return &Error{code: code, msg: msg} }

func NotFound(format string, args ...any) error {
	return &Error{code: CodeNotFound, msg: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) error {
	return &Error{code: CodeInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return &Error{code: CodeUnauthorized, msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{code: CodeConflict, msg: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the code from err, or "" for untyped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}

// RequireActor is the single ownership check used by approve/reject and the
// review services: the requesting identity must equal the expected role
// holder, otherwise the operation fails Unauthorized with msg.
func RequireActor(expectedID, actualID int64, msg string) error {
	if expectedID != actualID {
		return Unauthorized("%s", msg)
	}
	return nil
}

// HTTPStatus maps an error to the boundary status class: NotFound and
// InvalidArgument are the bad-request class, Conflict is its own class.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
