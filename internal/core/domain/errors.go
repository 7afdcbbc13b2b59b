package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can decide how to report them.
type ErrorKind string

const (
	KindValidation         ErrorKind = "VALIDATION"
	KindNetwork            ErrorKind = "NETWORK"
	KindServer             ErrorKind = "SERVER"
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindUnauthorized       ErrorKind = "UNAUTHORIZED"
	KindForbidden          ErrorKind = "FORBIDDEN"
	KindConflict           ErrorKind = "CONFLICT"
	KindNotFound           ErrorKind = "NOT_FOUND"
)

// Error is the single error type crossing the core boundary.
// Status is only set for KindServer.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s(%d)", e.Kind, e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind, so errors.Is(err, ErrNetwork) works for any network failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Status == 0 || t.Status == e.Status
}

var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrNetwork            = &Error{Kind: KindNetwork}
	ErrServer             = &Error{Kind: KindServer}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "invalid credentials"}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Message: "no active session"}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrNotFound           = &Error{Kind: KindNotFound}
)

func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "request failed", Err: err}
}

func NewServerError(status int, message string) *Error {
	return &Error{Kind: KindServer, Status: status, Message: message}
}

func NewForbiddenError(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(kind Kind, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %q not found", kind, id)}
}

// KindOf returns the kind of err, or "" when err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
