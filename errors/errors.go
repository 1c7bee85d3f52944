package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// NotFound reports a missing entry of the given kind.
func NotFound(resource, name string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s %q not found", resource, name)).
		WithDetail("resource", resource).
		WithDetail("name", name)
}

// AlreadyExists reports a name collision for the given kind.
func AlreadyExists(resource, name string) *AppError {
	return New(ErrCodeAlreadyExists, fmt.Sprintf("%s %q already exists", resource, name)).
		WithDetail("resource", resource).
		WithDetail("name", name)
}

// StorageError wraps a failed durable write or read.
func StorageError(op string, cause error) *AppError {
	return New(ErrCodeStorage, fmt.Sprintf("storage %s failed", op)).
		WithDetail("operation", op).
		WithCause(cause)
}

// NoProviders reports an empty provider pool.
func NoProviders() *AppError {
	return New(ErrCodeNoProviders, "no providers configured")
}

// AllProvidersFailed reports that every provider was tried and failed.
// cause usually joins the individual provider errors.
func AllProvidersFailed(attempts int, cause error) *AppError {
	return New(ErrCodeAllProvidersFailed, fmt.Sprintf("all %d providers failed", attempts)).
		WithDetail("attempts", attempts).
		WithCause(cause)
}

// Timeout reports an operation that exceeded its deadline.
func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, "operation timed out").WithDetail("operation", operation)
}

// ServiceUnavailable reports a dependency that cannot take requests right now.
func ServiceUnavailable(service string) *AppError {
	return New(ErrCodeServiceUnavailable, fmt.Sprintf("%s is temporarily unavailable", service)).
		WithDetail("service", service)
}

// ExternalServiceError wraps an error returned by a remote API.
func ExternalServiceError(service string, cause error) *AppError {
	return New(ErrCodeExternalService, fmt.Sprintf("%s returned an error", service)).
		WithDetail("service", service).
		WithCause(cause)
}

// InvalidInput reports a rejected argument.
func InvalidInput(field, reason string) *AppError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("invalid %s: %s", field, reason)).
		WithDetail("field", field)
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "unexpected error").WithCause(cause)
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err or any error it wraps is an AppError with code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
