package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("jane@example.com", "password123", "Jane", "Doe")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.NotZero(t, userID)

	loginToken, err := svc.Login("jane@example.com", "password123")
	require.NoError(t, err)

	loginUserID, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, userID, loginUserID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("jane@example.com", "password123", "Jane", "Doe")
	require.NoError(t, err)

	_, err = svc.Register("jane@example.com", "different456", "Janet", "Doe")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("jane@example.com", "password123", "Jane", "Doe")
	require.NoError(t, err)

	_, err = svc.Login("jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	other := NewAuthService(db, "other-secret")
	token, err := other.GenerateToken(7)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err, "a token signed with a different secret must not validate")
}
