// Package apperr defines the error taxonomy shared by the service layer and
// the HTTP edge. Every error carries a kind and a caller-facing message; the
// server handlers map kinds to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindValidation covers malformed input and violated business preconditions.
	KindValidation Kind = iota
	// KindNotFound covers unresolved entity ids and booking-rule failures that
	// the API reports as not found.
	KindNotFound
	// KindForbidden covers callers lacking rights over an entity.
	KindForbidden
	// KindUnsupportedState covers unrecognized booking-state filter strings.
	KindUnsupportedState
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func UnsupportedState(format string, args ...any) *Error {
	return &Error{Kind: KindUnsupportedState, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
