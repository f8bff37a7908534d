package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Hour, TokenIssuer)
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, TokenIssuer, claims.Issuer)
}

func TestParseAndValidateJWT_Failures(t *testing.T) {
	valid, err := GenerateJWT("user-1", "secret", time.Hour, TokenIssuer)
	require.NoError(t, err)
	expired, err := GenerateJWT("user-1", "secret", -time.Minute, TokenIssuer)
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(valid, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAndValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	_, err := GenerateJWT("user-1", "", time.Hour, TokenIssuer)
	assert.Error(t, err)
}
