// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTManager(accessExpiry time.Duration) *JWTManager {
	cfg := &config.Config{}
	cfg.App.Name = "boffo-baby-api"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiry = accessExpiry
	cfg.JWT.RefreshTokenExpiry = 7 * 24 * time.Hour
	return NewJWTManager(cfg)
}

var subject = TokenSubject{
	UserID:      42,
	Name:        "Jane Reseller",
	Email:       "jane@example.com",
	PhoneNumber: "+254711000111",
	Role:        "staff",
}

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr := newJWTManager(time.Hour)

	token, err := mgr.GenerateAccessToken(subject)
	require.NoError(t, err)

	claims, err := mgr.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenOmitsRole(t *testing.T) {
	mgr := newJWTManager(time.Hour)

	token, err := mgr.GenerateRefreshToken(subject)
	require.NoError(t, err)

	claims, err := mgr.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Empty(t, claims.Role, "refresh tokens never vouch for a role")
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypesDoNotCross(t *testing.T) {
	mgr := newJWTManager(time.Hour)

	access, err := mgr.GenerateAccessToken(subject)
	require.NoError(t, err)
	refresh, err := mgr.GenerateRefreshToken(subject)
	require.NoError(t, err)

	_, err = mgr.ValidateRefreshToken(access)
	require.Error(t, err)
	_, err = mgr.ValidateAccessToken(refresh)
	require.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	mgr := newJWTManager(-time.Minute)

	token, err := mgr.GenerateAccessToken(subject)
	require.NoError(t, err)

	_, err = mgr.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	mgr := newJWTManager(time.Hour)
	token, err := mgr.GenerateAccessToken(subject)
	require.NoError(t, err)

	other := newJWTManager(time.Hour)
	other.config.JWT.Secret = "different-secret"
	_, err = other.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader("abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Bearer "))
}
