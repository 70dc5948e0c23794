package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souschef/domain"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, issuedAt, err := svc.GenerateTokenUser("user-1", domain.RoleUser, 3)
	require.NoError(t, err)
	assert.False(t, issuedAt.IsZero())

	claims, err := svc.GetClaimsByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, 3, claims.Version)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret", time.Hour).GenerateTokenUser("user-1", domain.RoleUser, 0)
	require.NoError(t, err)

	_, err = NewJWTService("other", time.Hour).GetClaimsByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = NewJWTService("secret", time.Hour).GetClaimsByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("secret", time.Hour).(*jwtService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateTokenUser("user-1", domain.RoleUser, 0)
	require.NoError(t, err)

	_, err = svc.GetClaimsByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestJWTService_MissingSecret(t *testing.T) {
	_, _, err := NewJWTService("", 0).GenerateTokenUser("user-1", domain.RoleUser, 0)
	assert.Error(t, err)
}
