package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/infrastructure/auth"
	"github.com/mms/backend/internal/infrastructure/config"
)

func setupAuthService(t *testing.T, password string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-that-is-long-enough",
		ExpirationHours: 1,
		Issuer:          "mms-backend-test",
	})
	return NewAuthService(jwtService, config.AdminConfig{
		Username:     "admin",
		PasswordHash: string(hash),
	}, nil)
}

func TestAuthService_Login(t *testing.T) {
	service := setupAuthService(t, "correct horse battery staple")
	ctx := context.Background()

	t.Run("valid credentials yield a token", func(t *testing.T) {
		token, err := service.Login(ctx, LoginRequest{
			Username: "admin",
			Password: "correct horse battery staple",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token.AccessToken)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := service.Login(ctx, LoginRequest{Username: "admin", Password: "wrong"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("wrong username is unauthorized", func(t *testing.T) {
		_, err := service.Login(ctx, LoginRequest{
			Username: "root",
			Password: "correct horse battery staple",
		})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}
