package auth0

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the wire shape of an access token payload
type tokenClaims struct {
	jwt.RegisteredClaims
	Scope       string          `json:"scope,omitempty"`
	Permissions json.RawMessage `json:"permissions,omitempty"`
}

// Claims is the verified payload of a credential.
type Claims struct {
	Issuer    string
	Subject   string
	Audience  []string
	ExpiresAt time.Time
	NotBefore time.Time // zero when the token carries no nbf
	IssuedAt  time.Time // zero when the token carries no iat
	Scope     string

	// Permissions is the granted permission set. PermissionsPresent tells an
	// absent permissions claim apart from an empty one.
	Permissions        []string
	PermissionsPresent bool
}

// HasPermission reports whether permission was granted.
func (c *Claims) HasPermission(permission string) bool {
	return slices.Contains(c.Permissions, permission)
}

// toClaims converts verified wire claims. Each call allocates new slices so
// that callers never share state across verifications.
func (t *tokenClaims) toClaims() *Claims {
	claims := &Claims{
		Issuer:   t.Issuer,
		Subject:  t.Subject,
		Audience: slices.Clone([]string(t.Audience)),
		Scope:    t.Scope,
	}
	if t.ExpiresAt != nil {
		claims.ExpiresAt = t.ExpiresAt.Time
	}
	if t.NotBefore != nil {
		claims.NotBefore = t.NotBefore.Time
	}
	if t.IssuedAt != nil {
		claims.IssuedAt = t.IssuedAt.Time
	}

	claims.Permissions, claims.PermissionsPresent = decodePermissions(t.Permissions)
	if claims.Permissions == nil {
		claims.Permissions = []string{}
	}
	return claims
}

// decodePermissions treats null and non string-array values as an absent claim.
func decodePermissions(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	var permissions []string
	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, false
	}
	return permissions, true
}
