// Package auth0 verifies bearer access tokens issued by an Auth0-style
// identity provider and enforces per-operation permissions.
//
// The guard is a pipeline of three stages, each of which can stop the
// request with a classified *AuthError:
//
//	ParseAuthorizationHeader -> Verifier.Verify -> CheckPermission
//
// Signing keys come from the provider's JWKS endpoint and are cached in a
// KeySet shared by all requests.
package auth0

import "context"

// TokenVerifier turns a raw credential into verified claims
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*Claims, error)
}

// Guard composes extraction, verification and permission enforcement.
type Guard struct {
	verifier TokenVerifier
}

// NewGuard creates a guard around verifier
func NewGuard(verifier TokenVerifier) *Guard {
	return &Guard{verifier: verifier}
}

// Authorize runs the full pipeline for one request. header is the raw
// Authorization header value ("" when absent). The protected operation may
// run only when the returned error is nil.
func (g *Guard) Authorize(ctx context.Context, header, required string) (*Claims, error) {
	credential, err := ParseAuthorizationHeader(header)
	if err != nil {
		return nil, err
	}

	claims, err := g.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}

	if err := CheckPermission(claims, required); err != nil {
		return nil, err
	}

	return claims, nil
}
