package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "secret"
	hash, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "secret"
	hash, _ := HashPassword(password)

	assert.True(t, CheckPasswordHash(password, hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateJWT_NoSecret(t *testing.T) {
	_, err := GenerateJWT("", "sid", "", "retail", "", time.Now())
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestParseJWT(t *testing.T) {
	tokenStr, err := GenerateJWT("testsecret", "sid-1", "u1", "admin", "test@example.com", time.Now())
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		claims, err := ParseJWT("testsecret", tokenStr)
		require.NoError(t, err)
		assert.Equal(t, "sid-1", claims.SessionID)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "test@example.com", claims.Email)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		_, err := ParseJWT("testsecret", "invalid-token-string")
		assert.Error(t, err)
	})

	t.Run("NoSecret", func(t *testing.T) {
		_, err := ParseJWT("", tokenStr)
		assert.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		_, err := ParseJWT("secret2", tokenStr)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "signature is invalid")
	})

	t.Run("Expired", func(t *testing.T) {
		old, err := GenerateJWT("testsecret", "sid-1", "", "retail", "", time.Now().Add(-2*sessionTTL))
		require.NoError(t, err)

		_, err = ParseJWT("testsecret", old)
		assert.Error(t, err)
	})
}
