package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// SecureHeaders sets the standard browser hardening headers. sslRedirect
// is enabled in production behind a TLS-terminating proxy.
func SecureHeaders(sslRedirect bool, logger *zap.Logger) func(http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLRedirect:           sslRedirect,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sm.Process(w, r); err != nil {
				logger.Warn("secure headers blocked request",
					zap.String("request_id", GetRequestIDFromContext(r.Context())),
					zap.Error(err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit limits each client IP to requests per window. A non-positive
// limit disables limiting.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			_ = utils.WriteTooManyRequests(w)
		}),
	)
}
