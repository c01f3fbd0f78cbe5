package errors

import stderrors "errors"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the error message returned to callers.
	// E.g. "failed to fetch tickers: upstream responded with status 503".
	Message string

	// Code (required) is one of the ErrorCode values.
	Code string

	// Field (optional) is the related field or operation the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occured on, if any.
	Object interface{}

	// Err (optional) is the underlying cause.
	Err error
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message, code, field string, object interface{}) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
		Object:  object,
	}
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ErrorDetails) Unwrap() error {
	return e.Err
}

// Wrap sets err as the cause of e.
func (e *ErrorDetails) Wrap(err error) *ErrorDetails {
	e.Err = err
	return e
}

// ErrorCodeEquals checks whether a given `error`, or any error it wraps, has a specific code.
func ErrorCodeEquals(err error, code string) bool {
	var errDetails *ErrorDetails
	if !stderrors.As(err, &errDetails) {
		return false
	}

	return errDetails.Code == code
}

// CodeOf returns the code of the first ErrorDetails in err's chain, or an empty string.
func CodeOf(err error) string {
	var errDetails *ErrorDetails
	if !stderrors.As(err, &errDetails) {
		return ""
	}

	return errDetails.Code
}
