package jwtutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobertoSuarez97/almacenBackend/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})

	token, err := GenerateToken("admin", 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, uint(3), claims.UserID)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})

	token, err := GenerateToken("admin", 3)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestValidateToken_WrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "first-secret", ExpirationHours: 1})
	token, err := GenerateToken("admin", 3)
	require.NoError(t, err)

	Initialize(&config.JWTConfig{SigningKey: "other-secret", ExpirationHours: 1})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}
