package identity

import (
	"context"
	"crypto/subtle"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/infrastructure/auth"
	"github.com/mms/backend/internal/infrastructure/config"
)

// AuthService authenticates the configured admin account and issues
// tokens. The deployment is single-administrator; credentials live in
// configuration, not the database.
type AuthService struct {
	jwtService *auth.JWTService
	adminCfg   config.AdminConfig
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(jwtService *auth.JWTService, adminCfg config.AdminConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		jwtService: jwtService,
		adminCfg:   adminCfg,
		logger:     logger,
	}
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the admin credentials and returns a signed token.
// Failures are reported uniformly so the response does not reveal
// whether the username or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*auth.Token, error) {
	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.adminCfg.Username)) == 1

	err := bcrypt.CompareHashAndPassword([]byte(s.adminCfg.PasswordHash), []byte(req.Password))
	if !usernameMatch || err != nil {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, shared.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(req.Username)
	if err != nil {
		return nil, err
	}
	s.logger.Info("admin logged in", zap.String("username", req.Username))
	return token, nil
}
