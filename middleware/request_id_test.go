package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestIDFromContext(r.Context())
	}))

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, incoming)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, incoming, seen)
		assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces a garbage incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.NotEqual(t, "<script>", seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}
