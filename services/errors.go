package services

import (
	"errors"
	"fmt"

	"github.com/upb/casting-agency/repositories"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeBadRequest ErrorType = "bad_request"
	ErrorTypeInternal   ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

var (
	ErrMovieNotFound = NewDomainError(ErrorTypeNotFound, "movie not found", nil)
	ErrActorNotFound = NewDomainError(ErrorTypeNotFound, "actor not found", nil)

	ErrInvalidInput       = NewDomainError(ErrorTypeValidation, "invalid input", nil)
	ErrInvalidReleaseDate = NewDomainError(ErrorTypeValidation, "invalid release date", nil)
	ErrEmptyUpdate        = NewDomainError(ErrorTypeValidation, "no fields to update", nil)

	ErrMalformedBody = NewDomainError(ErrorTypeBadRequest, "request body is not valid JSON", nil)

	ErrInternal      = NewDomainError(ErrorTypeInternal, "internal server error", nil)
	ErrDatabaseError = NewDomainError(ErrorTypeInternal, "database error", nil)
)

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return GetErrorType(err) == ErrorTypeNotFound
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return GetErrorType(err) == ErrorTypeValidation
}

// IsBadRequestError checks if an error is a bad request error
func IsBadRequestError(err error) bool {
	return GetErrorType(err) == ErrorTypeBadRequest
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return GetErrorType(err) == ErrorTypeInternal
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}

// wrapRepositoryError turns a repository failure into a domain error,
// using notFound when the row is missing.
func wrapRepositoryError(err error, notFound *DomainError) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return NewDomainError(notFound.Type, notFound.Message, err)
	}
	return NewDomainError(ErrorTypeInternal, ErrDatabaseError.Message, err)
}
