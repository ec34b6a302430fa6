package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/andybalholm/brotli"
	"github.com/examdesk/examdesk-backend/internal/access"
	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/examdesk/examdesk-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth struct {
	users map[string]*model.User
}

func (s stubAuth) Authenticate(_ context.Context, token string) (*model.User, *service.Claims, error) {
	u, ok := s.users[token]
	if !ok {
		return nil, nil, access.ErrAuthenticationRequired
	}
	return u, &service.Claims{UserID: u.ID}, nil
}

func perform(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Token abc", "abc"},
		{"Basic abc", ""},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractToken(tt.header), tt.header)
	}
}

func TestRequireAuthAndAccess(t *testing.T) {
	auth := stubAuth{users: map[string]*model.User{
		"admin":    {ID: 1, Role: model.RoleAdmin, IsActive: true},
		"examinee": {ID: 2, Role: model.RoleExaminee, IsActive: true},
	}}

	r := gin.New()
	r.GET("/admin", RequireAuth(auth, zerolog.Nop()), RequireAccess(access.IsAdminUser), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", GetUser(c).ID)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer examinee", http.StatusForbidden},
		{"admin", "Token admin", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodGet, "/admin", map[string]string{"Authorization": tt.header})
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rl := NewRateLimiter(rdb, "token", 2, time.Minute, zerolog.Nop())
	r := gin.New()
	r.POST("/token", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/token", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/token", nil).Code)

	w := perform(r, http.MethodPost, "/token", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	rl := NewRateLimiter(rdb, "token", 1, time.Minute, zerolog.Nop())
	r := gin.New()
	r.POST("/token", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/token", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/token", nil).Code)
}

func TestBrotli(t *testing.T) {
	long := strings.Repeat("question ", 400)
	r := gin.New()
	r.Use(BrotliWithConfig(BrotliConfig{MinLength: 64}))
	r.GET("/long", func(c *gin.Context) { c.String(http.StatusOK, long) })
	r.GET("/short", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	t.Run("compresses long bodies", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/long", map[string]string{"Accept-Encoding": "gzip, br;q=0.9"})
		require.Equal(t, "br", w.Header().Get("Content-Encoding"))

		body, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
		require.NoError(t, err)
		assert.Equal(t, long, string(body))
	})

	t.Run("passes short bodies", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/short", map[string]string{"Accept-Encoding": "br"})
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("respects accept encoding", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/long", map[string]string{"Accept-Encoding": "gzip"})
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, long, w.Body.String())
	})
}

func TestNoStore(t *testing.T) {
	r := gin.New()
	r.GET("/me", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/me", nil)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
