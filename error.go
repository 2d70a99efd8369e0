package novelctx

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EINTERNAL = "internal"

	// Fetch failures.
	ETIMEOUT   = "timeout"
	ETRANSPORT = "transport"

	// Extraction failures.
	ECONTAINER = "container_not_found"
	EMALFORMED = "malformed_structure"
)

// Error represents an application-specific error. Err holds the underlying
// cause, if any, so callers can log it without the code depending on it.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapErrorf is like Errorf but keeps err as the underlying cause.
func WrapErrorf(err error, code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// IsFetchError reports whether err is a timeout or transport failure.
func IsFetchError(err error) bool {
	switch ErrorCode(err) {
	case ETIMEOUT, ETRANSPORT:
		return true
	}
	return false
}

// IsExtractionError reports whether err is a missing container or a
// malformed page structure.
func IsExtractionError(err error) bool {
	switch ErrorCode(err) {
	case ECONTAINER, EMALFORMED:
		return true
	}
	return false
}
