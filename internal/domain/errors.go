package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeRemoteService = "REMOTE_SERVICE_ERROR"
	ErrCodeTimeout       = "TIMEOUT"
	ErrCodeStorage       = "STORAGE_ERROR"
)

// NewValidationError reports malformed or inconsistent input. The message is
// the single human-readable sentence surfaced to the caller.
func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

func NewNotFoundError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NewRemoteServiceError wraps a business failure or non-success HTTP status
// from the payment provider.
func NewRemoteServiceError(message string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeRemoteService,
		Message: message,
		Err:     err,
	}
}

// NewTimeoutError reports a remote call that exceeded its deadline. Kept
// distinct from RemoteServiceError so callers can tell the two apart.
func NewTimeoutError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeTimeout,
		Message: message,
	}
}

func NewStorageError(message string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeStorage,
		Message: message,
		Err:     err,
	}
}

func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
