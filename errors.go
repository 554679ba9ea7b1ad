package srfax

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies every failure surfaced by the client.
type Code string

const (
	// CodeRequestFailed covers transport failures and explicit rejections
	// reported by the service.
	CodeRequestFailed Code = "REQUESTFAILED"
	// CodeInvalidResponse marks replies whose shape could not be understood.
	CodeInvalidResponse Code = "INVALIDRESPONSE"
	// CodeValidation marks malformed caller input, such as a bad fax number
	// or an unreadable file.
	CodeValidation Code = "VALIDATION"
	// CodeConfiguration marks missing credentials or required parameters;
	// such requests are rejected before anything is sent.
	CodeConfiguration Code = "CONFIGURATION"
)

// Error is the classified error returned by every client operation.
// Retryable is advisory only: it reports whether the same call may succeed
// if repeated, the client itself never retries.
type Error struct {
	Code      Code
	Message   string
	Cause     error
	Retryable bool
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// AsError unwraps err to the classified *Error carried in its chain.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsRetryable reports whether err carries the advisory retry hint.
func IsRetryable(err error) bool {
	fe, ok := AsError(err)
	return ok && fe.Retryable
}

// IsCode reports whether err is classified under code.
func IsCode(err error, code Code) bool {
	fe, ok := AsError(err)
	return ok && fe.Code == code
}

func configErr(format string, args ...any) *Error {
	return &Error{Code: CodeConfiguration, Message: fmt.Sprintf(format, args...)}
}

func validationErr(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func invalidResponse(message string, cause error) *Error {
	return &Error{Code: CodeInvalidResponse, Message: message, Cause: cause, Retryable: true}
}
