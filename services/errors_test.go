package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/upb/casting-agency/repositories"
)

func TestNewDomainError(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeNotFound, "movie not found", baseErr)

	assert.Equal(t, ErrorTypeNotFound, domainErr.Type)
	assert.Equal(t, "movie not found", domainErr.Message)
	assert.Equal(t, baseErr, domainErr.Err)
	assert.NotNil(t, domainErr.Details)
}

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *DomainError
		wantMsg string
	}{
		{
			name:    "error with wrapped error",
			err:     &DomainError{Type: ErrorTypeNotFound, Message: "actor not found", Err: errors.New("db error")},
			wantMsg: "not_found: actor not found (db error)",
		},
		{
			name:    "error without wrapped error",
			err:     &DomainError{Type: ErrorTypeValidation, Message: "invalid input"},
			wantMsg: "validation: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err := NewDomainError(ErrorTypeNotFound, "movie not found", nil)

	assert.True(t, errors.Is(err, ErrMovieNotFound))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrMovieNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, errors.New("movie not found")))
}

func TestErrorTypeHelpers(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrActorNotFound))
	assert.True(t, IsValidationError(ErrInvalidReleaseDate))
	assert.True(t, IsValidationError(ErrEmptyUpdate))
	assert.True(t, IsBadRequestError(ErrMalformedBody))
	assert.True(t, IsInternalError(WrapInternal("boom", errors.New("x"))))
	assert.False(t, IsNotFoundError(errors.New("plain")))
	assert.Equal(t, ErrorType(""), GetErrorType(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := (&DomainError{Type: ErrorTypeValidation}).WithDetail("title", "title is required")
	assert.Equal(t, "title is required", GetErrorDetails(err)["title"])
	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}

func TestWrapRepositoryError(t *testing.T) {
	notFound := wrapRepositoryError(fmt.Errorf("movie 3: %w", repositories.ErrNotFound), ErrMovieNotFound)
	assert.True(t, IsNotFoundError(notFound))
	assert.True(t, errors.Is(notFound, repositories.ErrNotFound))

	internal := wrapRepositoryError(errors.New("connection reset"), ErrMovieNotFound)
	assert.True(t, IsInternalError(internal))
}
