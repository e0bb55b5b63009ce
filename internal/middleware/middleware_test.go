package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Run("generates an id when none is present", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

		require.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("keeps an id set upstream", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set(RequestIDHeader, "lb-assigned-id")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "lb-assigned-id", seen)
		assert.Equal(t, "lb-assigned-id", rec.Header().Get(RequestIDHeader))
	})
}

func TestWithRequestLogger(t *testing.T) {
	base := slog.New(slog.NewTextHandler(&nopWriter{}, nil))
	var got *slog.Logger
	h := WithRequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetLogger(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	require.NotNil(t, got)
	assert.NotEqual(t, slog.Default(), got)
}

func TestGetLoggerFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	fallback := slog.New(slog.NewTextHandler(&nopWriter{}, nil))
	assert.Equal(t, fallback, GetLogger(req.Context(), fallback))
	assert.Equal(t, slog.Default(), GetLogger(req.Context()))
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/products", "/api/products"},
		{"/api/products/42", "/api/products/:id"},
		{"/api/cart", "/api/cart"},
		{"/api/cart/items/abc-123", "/api/cart/items/:id"},
		{"/api/cart/items/abc-123/wishlist", "/api/cart/items/:id/wishlist"},
		{"/api/checkout", "/api/checkout"},
		{"/health", "/health"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePath(tt.path), tt.path)
	}
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) { return len(p), nil }
