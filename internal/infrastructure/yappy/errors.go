package yappy

import (
	"errors"
	"fmt"
)

// ProviderError carries the business status Yappy returned alongside the
// HTTP status of the call. A 2xx response can still produce one: the provider
// signals business success only through its status code.
type ProviderError struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("yappy error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

func IsProviderError(err error) (*ProviderError, bool) {
	var provErr *ProviderError
	ok := errors.As(err, &provErr)
	return provErr, ok
}
