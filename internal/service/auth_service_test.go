package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	svc := NewAuthService("test-secret")

	resp, err := svc.Login("admin", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.AdminID)

	claims, err := svc.ValidateAdminToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.AdminID, claims.AdminID)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := NewAuthService("test-secret")

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionToken_RoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret")

	token, err := svc.GenerateSessionToken("s_abc123", "user-1")
	require.NoError(t, err)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "s_abc123", claims.SessionID)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := NewAuthService("secret-a").GenerateSessionToken("s_abc123", "user-1")
	require.NoError(t, err)

	_, err = NewAuthService("secret-b").ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
