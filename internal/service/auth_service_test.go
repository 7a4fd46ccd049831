package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quizcraft/quizcraft-backend/internal/config"
	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestConfig(expiry time.Duration) *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  expiry,
		BcryptCost: 4, // Minimum cost keeps the test fast.
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := NewAuthService(authTestConfig(time.Hour))

	hash, err := svc.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, svc.CheckPassword(hash, "hunter22"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(authTestConfig(time.Hour))
	user := &model.User{ID: uuid.New(), Role: model.RoleTeacher}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleTeacher, claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewAuthService(authTestConfig(-time.Minute))

	token, err := svc.GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleStudent})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := NewAuthService(authTestConfig(time.Hour))

	token, err := svc.GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleStudent})
	require.NoError(t, err)

	other := NewAuthService(&config.Config{JWTSecret: "different-secret", JWTExpiry: time.Hour, BcryptCost: 4})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
