package middleware_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/SscSPs/opahours_backend/internal/middleware"
	"github.com/SscSPs/opahours_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.GET("/ping", handlers...)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	var seen string
	r := newRouter(func(c *gin.Context) {
		seen = middleware.GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "req-123", seen)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
}

func TestAuthMiddleware(t *testing.T) {
	var gotUser string
	r := newRouter(middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		gotUser, _ = middleware.GetUserIDFromContext(c)
		c.Status(http.StatusOK)
	})

	access, err := utils.GenerateJWT("user-1", testSecret, time.Minute, "opahours")
	require.NoError(t, err)
	refresh, err := utils.GenerateRefreshJWT("user-1", "tid", testSecret, time.Now().Add(time.Hour), "opahours")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantErr  string
	}{
		{name: "missing header", wantCode: http.StatusUnauthorized, wantErr: "AUTH_MISSING_ACCESS_TOKEN"},
		{name: "not bearer", header: "Basic abc", wantCode: http.StatusUnauthorized, wantErr: "AUTH_MISSING_ACCESS_TOKEN"},
		{name: "garbage token", header: "Bearer abc", wantCode: http.StatusUnauthorized, wantErr: "AUTH_INVALID_ACCESS_TOKEN"},
		{name: "refresh token as access", header: "Bearer " + refresh, wantCode: http.StatusUnauthorized, wantErr: "AUTH_INVALID_ACCESS_TOKEN"},
		{name: "valid", header: "Bearer " + access, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				body := decodeError(t, w)
				assert.Equal(t, tt.wantErr, body.Code)
				assert.NotEmpty(t, body.RequestID)
				return
			}
			assert.Equal(t, "user-1", gotUser)
		})
	}
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewIPRateLimiter("2-M")
	require.NoError(t, err)
	r := newRouter(middleware.RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, w).Code)

	_, err = middleware.NewIPRateLimiter("lots")
	assert.Error(t, err)
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewHTTPMetrics(reg)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(metrics.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	count, err := testutil.GatherAndCount(reg, "opahours_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per route/status pair")
}
