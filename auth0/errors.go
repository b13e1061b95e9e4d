package auth0

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine-readable classification of an authorization failure.
type ErrorCode string

const (
	CodeMissingHeader           ErrorCode = "authorization_header_missing"
	CodeMalformedHeader         ErrorCode = "malformed_header"
	CodeInvalidScheme           ErrorCode = "invalid_scheme"
	CodeMalformedToken          ErrorCode = "malformed_token"
	CodeUnsupportedAlgorithm    ErrorCode = "unsupported_algorithm"
	CodeUnknownSigningKey       ErrorCode = "unknown_signing_key"
	CodeInvalidSignature        ErrorCode = "invalid_signature"
	CodeClaimValidationFailed   ErrorCode = "invalid_claims"
	CodePermissionsClaimMissing ErrorCode = "permissions_claim_missing"
	CodePermissionDenied        ErrorCode = "permission_denied"
)

// AuthError is raised by every stage of the guard. Code, Description and
// Claim are diagnostics for logs; only Status reaches the client.
type AuthError struct {
	Code        ErrorCode
	Description string
	Status      int
	// Claim names the registered claim that failed validation (exp, nbf, iss, aud).
	Claim string
	Err   error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Description)
	if e.Claim != "" {
		msg = fmt.Sprintf("%s [claim=%s]", msg, e.Claim)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	return msg
}

// Unwrap implements errors.Unwrap
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is matches any AuthError carrying the same code.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newAuthError(code ErrorCode, status int, description string) *AuthError {
	return &AuthError{Code: code, Status: status, Description: description}
}

// Sentinels for errors.Is comparisons. Never returned directly: every
// failure gets its own instance so callers cannot mutate shared state.
var (
	ErrMissingHeader           = newAuthError(CodeMissingHeader, http.StatusUnauthorized, "authorization header is expected")
	ErrMalformedHeader         = newAuthError(CodeMalformedHeader, http.StatusUnauthorized, "authorization header must be bearer token")
	ErrInvalidScheme           = newAuthError(CodeInvalidScheme, http.StatusUnauthorized, "authorization header must start with \"Bearer\"")
	ErrMalformedToken          = newAuthError(CodeMalformedToken, http.StatusUnauthorized, "unable to parse authentication token")
	ErrUnsupportedAlgorithm    = newAuthError(CodeUnsupportedAlgorithm, http.StatusUnauthorized, "token signing algorithm is not accepted")
	ErrUnknownSigningKey       = newAuthError(CodeUnknownSigningKey, http.StatusUnauthorized, "unable to find the appropriate signing key")
	ErrInvalidSignature        = newAuthError(CodeInvalidSignature, http.StatusUnauthorized, "token signature is invalid")
	ErrClaimValidationFailed   = newAuthError(CodeClaimValidationFailed, http.StatusUnauthorized, "incorrect claims, please check the audience and issuer")
	ErrPermissionsClaimMissing = newAuthError(CodePermissionsClaimMissing, http.StatusBadRequest, "permissions not included in token")
	ErrPermissionDenied        = newAuthError(CodePermissionDenied, http.StatusForbidden, "permission not found")
)

// fail returns a fresh copy of sentinel with the given cause attached.
func fail(sentinel *AuthError, err error) *AuthError {
	return &AuthError{
		Code:        sentinel.Code,
		Description: sentinel.Description,
		Status:      sentinel.Status,
		Err:         err,
	}
}

// claimFailure builds a ClaimValidationFailed error naming the offending claim.
func claimFailure(claim string, err error) *AuthError {
	e := fail(ErrClaimValidationFailed, err)
	e.Claim = claim
	return e
}

// AsAuthError extracts the AuthError from an error chain.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err; anything that is not an
// AuthError is treated as an authentication failure.
func StatusOf(err error) int {
	if authErr, ok := AsAuthError(err); ok {
		return authErr.Status
	}
	return http.StatusUnauthorized
}
