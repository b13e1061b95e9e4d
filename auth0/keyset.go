package auth0

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrJWKSFetchFailed is returned when the key set endpoint cannot be read
	ErrJWKSFetchFailed = errors.New("failed to fetch JWKS")

	// ErrKeyNotFound is returned when no published key matches a key identifier
	ErrKeyNotFound = errors.New("signing key not found")
)

const (
	defaultCacheTTL           = 1 * time.Hour
	defaultFetchTimeout       = 5 * time.Second
	defaultMinRefreshInterval = 30 * time.Second
	maxJWKSBodyBytes          = 1 << 20
	refreshKey                = "jwks"
)

// JWKS represents the JSON Web Key Set
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a JSON Web Key
type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// keySnapshot is immutable once published.
type keySnapshot struct {
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// KeySetConfig holds configuration for KeySet
type KeySetConfig struct {
	JWKSURL            string
	CacheTTL           time.Duration
	FetchTimeout       time.Duration
	MinRefreshInterval time.Duration // unknown kids cannot refetch a snapshot younger than this
	HTTPClient         *http.Client
}

// KeySet caches the identity provider's signing keys. Readers load an
// immutable snapshot; refreshes build a new snapshot outside any lock and
// publish it with an atomic swap, so no reader sees a partial key set.
type KeySet struct {
	jwksURL    string
	httpClient *http.Client
	ttl        time.Duration
	timeout    time.Duration
	minRefresh time.Duration
	logger     *zap.Logger
	now        func() time.Time

	current   atomic.Pointer[keySnapshot]
	refreshes singleflight.Group
	fetches   atomic.Int64
}

// NewKeySet creates a key set backed by the JWKS endpoint in cfg.
func NewKeySet(cfg KeySetConfig, logger *zap.Logger) *KeySet {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.MinRefreshInterval == 0 {
		cfg.MinRefreshInterval = defaultMinRefreshInterval
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.FetchTimeout}
	}

	return &KeySet{
		jwksURL:    cfg.JWKSURL,
		httpClient: client,
		ttl:        cfg.CacheTTL,
		timeout:    cfg.FetchTimeout,
		minRefresh: cfg.MinRefreshInterval,
		logger:     logger,
		now:        time.Now,
	}
}

// Key returns the public key published under kid. An empty or expired
// cache triggers one refresh. A miss triggers one refresh only when the
// current snapshot is older than the minimum refresh interval.
func (s *KeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	snap := s.current.Load()
	if snap != nil && !s.expired(snap) {
		if key, ok := snap.keys[kid]; ok {
			return key, nil
		}
		if s.now().Sub(snap.fetchedAt) < s.minRefresh {
			s.logger.Debug("unknown kid within minimum refresh interval",
				zap.String("kid", kid))
			return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
		}
	}

	fresh, err := s.refresh(ctx)
	if err != nil {
		// A stale snapshot is still better than failing every request
		// while the provider is unreachable.
		if snap != nil {
			if key, ok := snap.keys[kid]; ok {
				s.logger.Warn("serving signing key from stale cache",
					zap.String("kid", kid),
					zap.Error(err))
				return key, nil
			}
		}
		return nil, err
	}

	if key, ok := fresh.keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
}

// Refresh fetches the key set now. Useful to warm the cache at startup.
func (s *KeySet) Refresh(ctx context.Context) error {
	_, err := s.refresh(ctx)
	return err
}

// CachedKeys returns the number of keys in the current snapshot
func (s *KeySet) CachedKeys() int {
	if snap := s.current.Load(); snap != nil {
		return len(snap.keys)
	}
	return 0
}

// LastRefresh returns when the current snapshot was fetched (zero if never)
func (s *KeySet) LastRefresh() time.Time {
	if snap := s.current.Load(); snap != nil {
		return snap.fetchedAt
	}
	return time.Time{}
}

func (s *KeySet) expired(snap *keySnapshot) bool {
	return s.now().Sub(snap.fetchedAt) >= s.ttl
}

// refresh coalesces concurrent callers into one outbound fetch. The fetch
// runs detached from any single caller's cancellation but is bounded by the
// fetch timeout; each caller still stops waiting when its own ctx ends.
func (s *KeySet) refresh(ctx context.Context) (*keySnapshot, error) {
	resultCh := s.refreshes.DoChan(refreshKey, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		jwks, err := s.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		snap := &keySnapshot{
			keys:      s.parseKeys(jwks),
			fetchedAt: s.now(),
		}
		s.current.Store(snap)

		s.logger.Info("signing key set refreshed",
			zap.Int("keys", len(snap.keys)),
			zap.Int64("fetches", s.fetches.Load()),
			zap.String("jwks_url", s.jwksURL))
		return snap, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultCh:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*keySnapshot), nil
	}
}

// fetch downloads and decodes the JWKS document
func (s *KeySet) fetch(ctx context.Context) (*JWKS, error) {
	s.fetches.Add(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJWKSFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrJWKSFetchFailed, resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJWKSBodyBytes)).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("%w: failed to decode JWKS: %v", ErrJWKSFetchFailed, err)
	}

	return &jwks, nil
}

// parseKeys keeps RSA signature keys and skips anything it cannot use
func (s *KeySet) parseKeys(jwks *JWKS) map[string]*rsa.PublicKey {
	keys := make(map[string]*rsa.PublicKey, len(jwks.Keys))
	for i := range jwks.Keys {
		jwk := &jwks.Keys[i]
		if jwk.Kid == "" || jwk.Kty != "RSA" || (jwk.Use != "" && jwk.Use != "sig") {
			continue
		}

		publicKey, err := jwkToRSAPublicKey(jwk)
		if err != nil {
			s.logger.Warn("skipping unusable signing key",
				zap.String("kid", jwk.Kid),
				zap.Error(err))
			continue
		}
		keys[jwk.Kid] = publicKey
	}
	return keys
}

// jwkToRSAPublicKey converts a JWK to an RSA public key
func jwkToRSAPublicKey(jwk *JWK) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}
	if len(nBytes) == 0 || len(eBytes) == 0 || len(eBytes) > 4 {
		return nil, errors.New("invalid key parameters")
	}

	var e int
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	if e < 3 {
		return nil, fmt.Errorf("invalid exponent %d", e)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
