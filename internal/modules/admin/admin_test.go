package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	svc := NewService("root", "hunter2", "test-secret")

	token, err := svc.Login("root", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NoError(t, svc.VerifyToken(token))
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc := NewService("root", "hunter2", "test-secret")

	_, err := svc.Login("root", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("admin", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_NotConfigured(t *testing.T) {
	svc := NewService("", "", "test-secret")

	_, err := svc.Login("root", "hunter2")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := NewService("root", "hunter2", "test-secret")
	assert.ErrorIs(t, svc.VerifyToken("not-a-jwt"), ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := NewService("root", "hunter2", "secret-a")
	verifier := NewService("root", "hunter2", "secret-b")

	token, err := issuer.Login("root", "hunter2")
	require.NoError(t, err)
	assert.ErrorIs(t, verifier.VerifyToken(token), ErrInvalidToken)
}
