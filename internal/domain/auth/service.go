package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"milkledger/internal/core/apperror"
	"milkledger/pkg/logger"
)

// Config holds the single operator's credentials: a login name and the
// bcrypt hash of the password.
type Config struct {
	Operator     string
	PasswordHash string
}

// Service authenticates the operator and issues tokens.
type Service struct {
	config Config
	jwt    *JWTService
}

// NewService creates an auth service.
func NewService(config Config, jwt *JWTService) *Service {
	return &Service{config: config, jwt: jwt}
}

// Login checks the credentials and returns an access token.
func (s *Service) Login(ctx context.Context, operator, password string) (string, time.Time, error) {
	if operator != s.config.Operator {
		logger.Warn(ctx, "login rejected", "operator", operator)
		return "", time.Time{}, apperror.NewUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.PasswordHash), []byte(password)); err != nil {
		logger.Warn(ctx, "login rejected", "operator", operator)
		return "", time.Time{}, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(operator)
	if err != nil {
		return "", time.Time{}, apperror.NewInternal(err)
	}
	logger.Info(ctx, "operator logged in", "operator", operator)
	return token, expiresAt, nil
}

// Validate checks a token and returns the operator it names.
func (s *Service) Validate(tokenString string) (string, error) {
	operator, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return "", apperror.NewUnauthorized("invalid or expired token").WithCause(err)
	}
	return operator, nil
}

// HashPassword produces a bcrypt hash for configuration bootstrap.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
