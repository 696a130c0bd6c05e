package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mms/backend/internal/infrastructure/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:          "test-secret-key-that-is-long-enough",
		ExpirationHours: 1,
		Issuer:          "mms-backend-test",
	}
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := NewJWTService(testJWTConfig())

	token, err := service.GenerateToken("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.False(t, token.ExpiresAt.IsZero())
}

func TestJWTService_ValidateToken(t *testing.T) {
	service := NewJWTService(testJWTConfig())

	t.Run("round trips claims", func(t *testing.T) {
		token, err := service.GenerateToken("admin")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "mms-backend-test", claims.Issuer)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:          "a-completely-different-secret-key",
			ExpirationHours: 1,
			Issuer:          "mms-backend-test",
		})
		token, err := other.GenerateToken("admin")
		require.NoError(t, err)

		_, err = service.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
