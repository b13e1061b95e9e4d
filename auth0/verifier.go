package auth0

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAlgorithm is the only algorithm accepted unless configured otherwise
const DefaultAlgorithm = "RS256"

// KeyProvider resolves a key identifier to the issuer's public key.
type KeyProvider interface {
	Key(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// VerifierConfig holds configuration for Verifier
type VerifierConfig struct {
	Issuer    string
	Audience  string
	Algorithm string
	// Leeway tolerates clock skew on exp and nbf.
	Leeway time.Duration
}

// Verifier validates RSA-signed access tokens issued by the identity provider.
type Verifier struct {
	keys     KeyProvider
	issuer   string
	audience string
	method   *jwt.SigningMethodRSA
	leeway   time.Duration
	now      func() time.Time
}

// NewVerifier creates a verifier. Only RSA PKCS#1 v1.5 algorithms can be
// configured; symmetric and "none" algorithms are refused up front.
func NewVerifier(keys KeyProvider, cfg VerifierConfig) (*Verifier, error) {
	if keys == nil {
		return nil, errors.New("key provider is required")
	}
	if cfg.Issuer == "" {
		return nil, errors.New("expected issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("expected audience is required")
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithm
	}

	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodRSA)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}

	return &Verifier{
		keys:     keys,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		method:   method,
		leeway:   cfg.Leeway,
		now:      time.Now,
	}, nil
}

// Algorithm returns the accepted signing algorithm
func (v *Verifier) Algorithm() string {
	return v.method.Alg()
}

// Verify checks the credential's header, signature and registered claims
// and returns the decoded claims. Every failure is an *AuthError.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	// Read alg and kid before trusting anything in the token. MapClaims
	// accepts any payload object, so claim types cannot mask a bad alg.
	unverified, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, fail(ErrMalformedToken, err)
	}

	alg, _ := unverified.Header["alg"].(string)
	if alg != v.method.Alg() {
		return nil, fail(ErrUnsupportedAlgorithm, fmt.Errorf("expected %s, got %q", v.method.Alg(), alg))
	}

	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, fail(ErrUnknownSigningKey, errors.New("kid header not found"))
	}

	publicKey, err := v.keys.Key(ctx, kid)
	if err != nil {
		return nil, fail(ErrUnknownSigningKey, err)
	}

	// Signature only; registered claims are checked below so each failure
	// can name the claim that caused it.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{v.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	claims := &tokenClaims{}
	_, err = parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, fail(ErrMalformedToken, err)
		}
		return nil, fail(ErrInvalidSignature, err)
	}

	if err := v.validateClaims(claims); err != nil {
		return nil, err
	}

	return claims.toClaims(), nil
}

func (v *Verifier) validateClaims(claims *tokenClaims) error {
	now := v.now()

	if claims.ExpiresAt == nil {
		return claimFailure("exp", fmt.Errorf("%w: exp", jwt.ErrTokenRequiredClaimMissing))
	}
	if !now.Before(claims.ExpiresAt.Add(v.leeway)) {
		return claimFailure("exp", jwt.ErrTokenExpired)
	}

	if claims.NotBefore != nil && now.Before(claims.NotBefore.Add(-v.leeway)) {
		return claimFailure("nbf", jwt.ErrTokenNotValidYet)
	}

	if claims.Issuer != v.issuer {
		return claimFailure("iss", fmt.Errorf("%w: got %q", jwt.ErrTokenInvalidIssuer, claims.Issuer))
	}

	if !slices.Contains(claims.Audience, v.audience) {
		return claimFailure("aud", jwt.ErrTokenInvalidAudience)
	}

	return nil
}
