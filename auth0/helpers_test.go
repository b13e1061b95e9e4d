package auth0

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://casting.eu.auth0.com/"
	testAudience = "casting-agency"
)

// Test helper to generate RSA key pair
func generateTestKeyPair(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return privateKey
}

func toJWK(kid string, publicKey *rsa.PublicKey) JWK {
	return JWK{
		Kid: kid,
		Kty: "RSA",
		Alg: "RS256",
		Use: "sig",
		N:   base64.RawURLEncoding.EncodeToString(publicKey.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(publicKey.E)).Bytes()),
	}
}

// jwksServer serves a mutable key set and counts requests
type jwksServer struct {
	*httptest.Server
	mu    sync.Mutex
	keys  []JWK
	hits  atomic.Int64
	delay time.Duration
	code  int
}

func newJWKSServer(t *testing.T, keys ...JWK) *jwksServer {
	t.Helper()
	s := &jwksServer{keys: keys, code: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.mu.Lock()
		keys, delay, code := append([]JWK(nil), s.keys...), s.delay, s.code
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if code != http.StatusOK {
			w.WriteHeader(code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(JWKS{Keys: keys})
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *jwksServer) setKeys(keys ...JWK) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = keys
}

func (s *jwksServer) setDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *jwksServer) setStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = code
}

// testClaims builds a valid payload; tweak the returned map before signing
func testClaims(permissions ...string) jwt.MapClaims {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": testIssuer,
		"sub": "auth0|casting-director",
		"aud": []string{testAudience, "https://casting.eu.auth0.com/userinfo"},
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	if permissions != nil {
		claims["permissions"] = permissions
	}
	return claims
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}
