package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")
	t.Setenv("ALLOW_SELF_ROLE_CHANGE", "")
	t.Setenv("CLEAR_CHOICES_WHEN_ABSENT", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.True(t, cfg.AllowSelfRoleChange)
	assert.False(t, cfg.ClearChoicesWhenAbsent)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("ALLOW_SELF_ROLE_CHANGE", "false")
	t.Setenv("CLEAR_CHOICES_WHEN_ABSENT", "true")
	t.Setenv("TOKEN_RATE_LIMIT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.False(t, cfg.AllowSelfRoleChange)
	assert.True(t, cfg.ClearChoicesWhenAbsent)
	assert.Equal(t, 30, cfg.TokenRateLimit)
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, parseOrigins(" http://a.test , ,http://b.test"))
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "session:abc", CacheKey.SessionKey("abc"))
	assert.Equal(t, "ratelimit:token:10.0.0.1:42", CacheKey.RateLimitKey("token", "10.0.0.1", 42))
}
