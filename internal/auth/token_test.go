package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbhotel/facilities-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("w-m1", domain.RoleMaintenance)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "w-m1", claims.WorkerID)
	assert.Equal(t, domain.RoleMaintenance, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken("w-m1", domain.RoleMaintenance)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hashed)

	assert.NoError(t, ComparePassword(hashed, "hunter2"))
	assert.Error(t, ComparePassword(hashed, "wrong"))
}
