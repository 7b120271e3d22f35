package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PASSWORD_HASHER", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	cfg := Load()
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "bcrypt", cfg.PasswordHasher)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, "8080", cfg.Port)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_USER", "hb")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "rentals")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test, ,http://b.test ")

	cfg := Load()
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, "postgres://hb:pw@db:6543/rentals?sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	require.NoError(t, cfg.Validate())
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("JWT_ACCESS_TTL", "soon")
	cfg := Load()
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.StorageDriver = "sqlite"
	cfg.PasswordHasher = "md5"
	cfg.JWTAccessSecret = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
	assert.Contains(t, err.Error(), "PASSWORD_HASHER")
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")

	cfg = Load()
	cfg.StorageDriver = StoragePostgres
	cfg.DBName = ""
	assert.ErrorContains(t, cfg.Validate(), "DB_NAME")
}
