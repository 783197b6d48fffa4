package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milkledger/internal/core/apperror"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	return NewService(
		Config{Operator: "admin", PasswordHash: hash},
		NewJWTService(DefaultJWTConfig("test-secret")),
	)
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newTestService(t)

	token, expiresAt, err := svc.Login(context.Background(), "admin", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	operator, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", operator)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)

	_, _, err = svc.Login(context.Background(), "intruder", "correct-horse")
	require.Error(t, err)
}

func TestValidateRejectsGarbageToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Validate("not-a-token")
	require.Error(t, err)
	assert.True(t, apperror.IsAppError(err))
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	svc := newTestService(t)
	other := NewJWTService(DefaultJWTConfig("other-secret"))

	token, _, err := other.GenerateAccessToken("admin")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
}
