package auth

import (
	"testing"
	"time"

	"djibtrade/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "djibtrade-test",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := jwtConfig()
	token, err := GenerateAccessToken(cfg, 42, "contact@etsomar.dj", "moderator")
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "contact@etsomar.dj", claims.Email)
	assert.Equal(t, "moderator", claims.Role)
	assert.NotEmpty(t, claims.ID, "jti is needed for the logout blacklist")
}

func TestAccessTokenWrongSecret(t *testing.T) {
	cfg := jwtConfig()
	token, err := GenerateAccessToken(cfg, 1, "a@b.dj", "user")
	require.NoError(t, err)

	other := jwtConfig()
	other.AccessSecret = "someone-else"
	_, err = ParseAccessToken(other, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenExpired(t *testing.T) {
	cfg := jwtConfig()
	cfg.AccessExpiry = -time.Minute
	token, err := GenerateAccessToken(cfg, 1, "a@b.dj", "user")
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := jwtConfig()
	token, err := GenerateRefreshToken(cfg, 42)
	require.NoError(t, err)

	id, err := ParseRefreshToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	cfg := jwtConfig()
	access, err := GenerateAccessToken(cfg, 1, "a@b.dj", "user")
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken(cfg, 1)
	require.NoError(t, err)

	_, err = ParseRefreshToken(cfg, access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = ParseAccessToken(cfg, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
