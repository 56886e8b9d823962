package jwt

import (
	"testing"

	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func TestGenerateAccessTokenClaims(t *testing.T) {
	svc := newTestService()

	employeeID := "emp-1"
	companyID := "comp-1"
	tokenStr, expiresAt, err := svc.GenerateAccessToken("user-1", "a@b.com", &employeeID, &companyID, user.RoleAdmin)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(tokenStr)
	require.NoError(t, err)

	userID, _ := decoded.Get("user_id")
	assert.Equal(t, "user-1", userID)

	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "access", tokenType)

	role, _ := decoded.Get("role")
	assert.Equal(t, string(user.RoleAdmin), role)

	gotCompany, _ := decoded.Get("company_id")
	assert.Equal(t, "comp-1", gotCompany)
}

func TestMalformedExpirationFallsBack(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "not-a-duration", "")

	tokenStr, expiresAt, err := svc.GenerateAccessToken("user-1", "a@b.com", nil, nil, user.RoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenStr)
	assert.Greater(t, expiresAt, int64(0))
}

func TestGenerateRefreshTokenType(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(tokenStr)
	require.NoError(t, err)

	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "refresh", tokenType)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(tokenStr))
	svc.RevokeToken(tokenStr)
	assert.True(t, svc.IsTokenRevoked(tokenStr))
}

func TestSSETokenRoundTrip(t *testing.T) {
	svc := newTestService()

	tokenStr, expiresIn, err := svc.GenerateSSEToken("user-1")
	require.NoError(t, err)
	assert.Greater(t, expiresIn, 0)

	userID, err := svc.ValidateSSEToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateSSETokenRejectsOtherTypes(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(tokenStr)
	assert.Error(t, err)
}

func TestValidateSSETokenRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateSSEToken("not-a-token")
	assert.Error(t, err)
}
