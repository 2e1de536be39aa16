package domain

import (
	"errors"
	"fmt"
)

// Predefined domain errors
var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput invalid input
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal internal error
	ErrInternal = errors.New("internal error")

	// ErrPrecondition required state is missing before an action
	ErrPrecondition = errors.New("precondition failed")
	// ErrTransport network failure or non-2xx without a readable error body
	ErrTransport = errors.New("transport error")
	// ErrServerReported non-2xx carrying an error message from the server
	ErrServerReported = errors.New("server reported error")
)

// DomainError carries a code, a user-facing message and the wrapped cause.
type DomainError struct {
	Code    string
	Message string
	Status  int // HTTP status when the error came from the backend, 0 otherwise
	Err     error
}

// Error implements the error interface (logs and internal propagation)
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the message shown to the user, without internal details.
func (e *DomainError) UserMessage() string {
	return e.Message
}

// Unwrap returns the wrapped error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(message string) error {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: message,
		Err:     ErrNotFound,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string) error {
	return &DomainError{
		Code:    "INVALID_INPUT",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// NewInternalError creates an internal error. The message keeps the cause
// text because the dev backend reports it the same way the real one does.
func NewInternalError(err error) error {
	return &DomainError{
		Code:    "INTERNAL_ERROR",
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %v", ErrInternal, err),
	}
}

// NewPreconditionError reports an action attempted without its required state.
func NewPreconditionError(message string) error {
	return &DomainError{
		Code:    "PRECONDITION",
		Message: message,
		Err:     ErrPrecondition,
	}
}

// NewTransportError wraps a network failure. fallback is what the user sees.
func NewTransportError(fallback string, cause error) error {
	err := ErrTransport
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrTransport, cause)
	}
	return &DomainError{
		Code:    "TRANSPORT",
		Message: fallback,
		Err:     err,
	}
}

// NewServerReportedError keeps the server's error text verbatim.
func NewServerReportedError(status int, message string) error {
	return &DomainError{
		Code:    "SERVER_ERROR",
		Message: message,
		Status:  status,
		Err:     ErrServerReported,
	}
}

// UserMessage extracts the user-facing message of err, or fallback when err
// is not a DomainError.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInternalError reports whether err is an internal error
func IsInternalError(err error) bool {
	return errors.Is(err, ErrInternal)
}

// IsPrecondition reports whether err is a precondition error
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

// IsTransport reports whether err is a transport error
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsServerReported reports whether err carries a server-provided message
func IsServerReported(err error) bool {
	return errors.Is(err, ErrServerReported)
}
