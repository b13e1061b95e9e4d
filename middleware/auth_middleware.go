package middleware

import (
	"context"
	"net/http"

	"github.com/upb/casting-agency/auth0"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// Authorizer runs the bearer-token guard for one request
type Authorizer interface {
	Authorize(ctx context.Context, header, required string) (*auth0.Claims, error)
}

// AuthMiddleware protects routes with per-route permissions
type AuthMiddleware struct {
	guard  Authorizer
	logger *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(guard Authorizer, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		guard:  guard,
		logger: logger,
	}
}

// RequirePermission lets a request through only when its bearer token is
// valid and grants permission. Rejected requests never reach next.
func (m *AuthMiddleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			claims, err := m.guard.Authorize(ctx, r.Header.Get("Authorization"), permission)
			if err != nil {
				m.logRejection(requestID, permission, err)
				_ = utils.WriteAuthError(w, auth0.StatusOf(err))
				return
			}

			m.logger.Debug("request authorized",
				zap.String("request_id", requestID),
				zap.String("sub", claims.Subject),
				zap.String("permission", permission))

			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

func (m *AuthMiddleware) logRejection(requestID, permission string, err error) {
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("permission", permission),
	}

	authErr, ok := auth0.AsAuthError(err)
	if !ok {
		m.logger.Error("authorization failed", append(fields, zap.Error(err))...)
		return
	}

	fields = append(fields,
		zap.String("code", string(authErr.Code)),
		zap.String("description", authErr.Description),
		zap.Int("status", authErr.Status))
	if authErr.Claim != "" {
		fields = append(fields, zap.String("claim", authErr.Claim))
	}
	if authErr.Err != nil {
		fields = append(fields, zap.NamedError("cause", authErr.Err))
	}
	m.logger.Warn("authorization rejected", fields...)
}
