package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "hbnb")
	tok, exp, err := m.GenerateAccessToken("u1", true)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "hbnb", claims.Issuer)
}

func TestParseAccessTokenRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "hbnb")
	other := NewJWTManager("other", time.Hour, "hbnb")
	tok, _, err := other.GenerateAccessToken("u1", false)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err, "wrong secret")

	expired := NewJWTManager("secret", -time.Minute, "hbnb")
	tok, _, err = expired.GenerateAccessToken("u1", false)
	require.NoError(t, err)
	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noUID := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	s, err := noUID.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.ParseAccessToken(s)
	assert.Error(t, err)

	_, err = m.ParseAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashers(t *testing.T) {
	for _, kind := range []string{HasherBcrypt, HasherArgon2id} {
		t.Run(kind, func(t *testing.T) {
			h, err := NewPasswordHasher(kind, bcrypt.MinCost)
			require.NoError(t, err)

			hash, err := h.Hash("s3cret-pass")
			require.NoError(t, err)
			assert.NotEqual(t, "s3cret-pass", hash)
			assert.True(t, h.Verify("s3cret-pass", hash))
			assert.False(t, h.Verify("wrong", hash))
			assert.False(t, h.Verify("s3cret-pass", "garbage"))
		})
	}
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("", 0)
	require.NoError(t, err)
	assert.Equal(t, BcryptHasher{Cost: bcrypt.DefaultCost}, h)

	_, err = NewPasswordHasher(HasherBcrypt, 99)
	assert.Error(t, err)

	_, err = NewPasswordHasher("md5", 0)
	assert.Error(t, err)
}
