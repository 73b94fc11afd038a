package auth

import (
	"testing"
	"time"

	"pfm/config"
	"pfm/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret

	return cfg
}

func TestJWTService_IssueAndVerifyPair(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	userID := uuid.New()

	pair, err := jwtService.IssuePair(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	// Verify access token
	accessClaims, err := jwtService.VerifyToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, service.TokenTypeAccess, accessClaims.Type)

	// Verify refresh token
	refreshClaims, err := jwtService.VerifyToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, service.TokenTypeRefresh, refreshClaims.Type)
}

func TestJWTService_MalformedToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	claims, err := jwtService.VerifyToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "Invalid or expired token")
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("issuer_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestConfig("another_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	claims, err := verifier.VerifyToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	// A bad signature reads exactly like an expired token.
	assert.Contains(t, err.Error(), "Invalid or expired token")
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := newTestConfig("test_secret_key_very_long_for_testing")
	cfg.JWT.AccessTTL = time.Nanosecond

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := jwtService.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	claims, err := jwtService.VerifyToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "Invalid or expired token")
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_DefaultDurations(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, jwtService.AccessTokenDuration())
	assert.Equal(t, 7*24*time.Hour, jwtService.RefreshTokenDuration())
}

func TestJWTService_ConfiguredDurations(t *testing.T) {
	cfg := newTestConfig("test_secret_key_very_long_for_testing")
	cfg.JWT.AccessTTL = 5 * time.Minute
	cfg.JWT.RefreshTTL = 24 * time.Hour

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, jwtService.AccessTokenDuration())
	assert.Equal(t, 24*time.Hour, jwtService.RefreshTokenDuration())
}
