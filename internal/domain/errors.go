package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal       ErrorCode = "INTERNAL_ERROR"
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrRateLimited    ErrorCode = "RATE_LIMITED"

	// Generation specific errors
	ErrProviderError ErrorCode = "PROVIDER_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrCacheError    ErrorCode = "CACHE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidRequestError(message string) *DomainError {
	return NewError(ErrInvalidRequest, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewRateLimitedError(message string) *DomainError {
	return NewError(ErrRateLimited, message, nil)
}

func NewProviderError(err error) *DomainError {
	return NewError(ErrProviderError, "Failed to obtain completion from text provider", err)
}

func NewDatabaseError(message string, err error) *DomainError {
	return NewError(ErrDatabaseError, message, err)
}

func NewCacheOperationError(message string, err error) *DomainError {
	return NewError(ErrCacheError, message, err)
}

func NewJobNotFoundError(jobID string) *DomainError {
	return NewError(ErrNotFound, fmt.Sprintf("Job not found with ID: %s", jobID), nil)
}

func NewBatchNotFoundError(batchID string) *DomainError {
	return NewError(ErrNotFound, fmt.Sprintf("Batch not found with ID: %s", batchID), nil)
}
