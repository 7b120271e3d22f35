package container

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hbnb/config"
	"github.com/oksasatya/go-hbnb/internal/infrastructure/memory"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func memoryConfig() *config.Config {
	return &config.Config{
		AppName:         "hbnb-test",
		StorageDriver:   config.StorageMemory,
		PasswordHasher:  "bcrypt",
		BcryptCost:      4,
		JWTAccessSecret: "secret",
		AccessTTL:       time.Hour,
		RateLimitLogin:  10,
		RateLimitWrites: 100,
	}
}

func TestNewMemoryContainer(t *testing.T) {
	c, err := New(context.Background(), memoryConfig(), quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.IsType(t, &memory.Store{}, c.Store)
	assert.NotNil(t, c.Facade)
	assert.Nil(t, c.Redis)
	assert.Equal(t, "hbnb-test", c.JWT.Issuer)

	deps := c.RouterDeps()
	assert.Empty(t, deps.Health)
	assert.Equal(t, 10, deps.Limits.LoginPerMinute)
	assert.Same(t, c.Facade, deps.Facade)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.PasswordHasher = "md5"
	_, err := New(context.Background(), cfg, quietLogger())
	assert.Error(t, err)

	cfg = memoryConfig()
	cfg.BcryptCost = 99
	_, err = New(context.Background(), cfg, quietLogger())
	assert.Error(t, err)
}
