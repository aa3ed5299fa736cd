package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "SQLITE_PATH", "LOGIN_MAX_ATTEMPTS", "SESSION_COOKIE_SECURE", "RESET_DB", "TRUST_PROXY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "portfolio.db", cfg.SQLitePath)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.False(t, cfg.SessionCookieSecure)
	assert.False(t, cfg.ResetDB)
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "not-a-number")
	t.Setenv("TRUST_PROXY", "1")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.SessionCookieSecure)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 5, cfg.LoginMaxAttempts, "unparsable values fall back to the default")
}
