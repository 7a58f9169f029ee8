package application

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeNoActiveSession = "NO_ACTIVE_SESSION"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// NewNoActiveSessionError is returned by operations that require an already
// open device session (transaction lookup and cancel). Surfaced as a remote
// failure, not a 404: the resource at fault is the provider session, not the
// transaction the caller asked about.
func NewNoActiveSessionError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNoActiveSession,
		Message:    "no active session found, open a device session first",
		HTTPStatus: http.StatusInternalServerError,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "an internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// ToHTTPStatus converts an error from any layer into the status the REST
// boundary should answer with.
func ToHTTPStatus(err error) int {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domain.ErrCodeValidation:
			return http.StatusBadRequest
		case domain.ErrCodeNotFound:
			return http.StatusNotFound
		case domain.ErrCodeTimeout:
			return http.StatusGatewayTimeout
		case domain.ErrCodeRemoteService, domain.ErrCodeStorage:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// ToErrorCode extracts the machine-readable code for logging.
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrCodeInternal
}
